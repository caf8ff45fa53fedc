package main

import "testing"

func TestSqliteDir(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"data/squares.db?_foreign_keys=on", "data"},
		{"file:/var/lib/squares/squares.db", "/var/lib/squares"},
		{"squares.db", ""},
		{":memory:", ""},
		{"file::memory:?cache=shared", ""},
	}

	for _, tt := range tests {
		if got := sqliteDir(tt.dsn); got != tt.want {
			t.Errorf("sqliteDir(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd()

	if f := cmd.PersistentFlags().Lookup("env-file"); f == nil || f.DefValue != ".env" {
		t.Fatalf("expected --env-file flag defaulting to .env")
	}

	found := false
	for _, sub := range cmd.Commands() {
		if sub.Name() == "migrate" {
			found = true
		}
	}
	if !found {
		t.Error("expected a migrate subcommand")
	}
}
