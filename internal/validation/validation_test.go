package validation

import (
	"errors"
	"testing"

	"github.com/bcnelson/squares/internal/domain"
)

func TestNormalizeGroupName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already normal", "office-pool", "office-pool"},
		{"mixed case", "Office-Pool", "office-pool"},
		{"surrounding space", "  office pool\t", "office pool"},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeGroupName(tt.in); got != tt.want {
				t.Errorf("NormalizeGroupName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateCell(t *testing.T) {
	tests := []struct {
		name      string
		row, col  int
		wantErr   bool
		wantField string
	}{
		{"origin", 0, 0, false, ""},
		{"far corner", 9, 9, false, ""},
		{"row too large", 10, 0, true, "row"},
		{"negative col", 3, -1, true, "col"},
		{"negative row", -1, 5, true, "row"},
		{"col too large", 5, 10, true, "col"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCell(tt.row, tt.col)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateCell(%d, %d) error = %v, wantErr %v", tt.row, tt.col, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, verr.Field)
			}
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Error("expected error to match domain.ErrInvalidInput")
			}
		})
	}
}

func TestValidatePlayerAndUser(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) error
		value   string
		wantErr bool
	}{
		{"player name", ValidatePlayerName, "Alice", false},
		{"blank player name", ValidatePlayerName, "  ", true},
		{"empty player name", ValidatePlayerName, "", true},
		{"user id", ValidateUserID, "AliceToken", false},
		{"blank user id", ValidateUserID, "\t", true},
		{"group name", ValidateGroupName, "office-pool", false},
		{"empty group name", ValidateGroupName, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestOptionalLabel(t *testing.T) {
	blank := "   "
	padded := "  lucky  "

	if got := OptionalLabel(nil); got != nil {
		t.Errorf("expected nil for nil label, got %q", *got)
	}
	if got := OptionalLabel(&blank); got != nil {
		t.Errorf("expected nil for blank label, got %q", *got)
	}
	got := OptionalLabel(&padded)
	if got == nil || *got != "lucky" {
		t.Errorf("expected trimmed label 'lucky', got %v", got)
	}
}
