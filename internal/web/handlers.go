package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bcnelson/squares/internal/api/param"
	"github.com/bcnelson/squares/internal/domain"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const siteTitle = "Super Bowl Squares"

// previewSanitizer strips characters that could break out of the meta tags.
var previewSanitizer = strings.NewReplacer(`"`, "", "<", "", ">", "", "&", "")

// SanitizePreviewName prepares a group name for use in social preview metadata.
func SanitizePreviewName(name string) string {
	return previewSanitizer.Replace(name)
}

// handleHome renders the create-a-group page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "home", PageData{Title: siteTitle})
}

// GroupPageData holds data for the group page.
type GroupPageData struct {
	Name       string
	PathName   string
	RevealTime string
	View       *domain.GroupView
	ColHeaders []string
	Rows       []GridRow
}

// GridRow is one rendered row of the grid.
type GridRow struct {
	Header string
	Cells  []GridCell
}

// GridCell is one rendered cell of the grid.
type GridCell struct {
	Row    int
	Col    int
	Square *domain.Square
}

// Claimed returns how many cells are taken.
func (d GroupPageData) Claimed() int {
	if d.View == nil {
		return 0
	}
	return len(d.View.Squares)
}

// handleGroupPage renders a group's grid with per-group preview metadata.
// The metadata is derived from the requested name whether or not the group exists.
func (s *Server) handleGroupPage(w http.ResponseWriter, r *http.Request) {
	name, err := param.GroupName(r)
	if err != nil {
		http.Error(w, "invalid group name", http.StatusBadRequest)
		return
	}
	safe := SanitizePreviewName(name)

	data := PageData{
		Title:       "Join group " + safe + " | " + siteTitle,
		Description: "Claim your squares in the " + safe + " " + siteTitle + " pool!",
	}

	view, err := s.groups.GetGroupView(r.Context(), name)
	if err != nil {
		status := http.StatusNotFound
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("loading group page", zap.String("name", name), zap.Error(err))
			status = http.StatusInternalServerError
		}
		data.Content = GroupPageData{Name: safe}
		s.render(w, status, "group", data)
		return
	}

	data.Content = buildGroupPage(view)
	s.render(w, http.StatusOK, "group", data)
}

// buildGroupPage lays the view out as a 10x10 grid. Headers show "?" until reveal.
func buildGroupPage(view *domain.GroupView) GroupPageData {
	header := func(digits domain.Digits, i int) string {
		if !view.Revealed || len(digits) != domain.GridSize {
			return "?"
		}
		return string(rune('0' + digits[i]))
	}

	page := GroupPageData{
		Name:       view.Name,
		PathName:   url.PathEscape(view.Name),
		RevealTime: view.RevealTime.UTC().Format(time.RFC3339),
		View:       view,
		ColHeaders: make([]string, domain.GridSize),
		Rows:       make([]GridRow, domain.GridSize),
	}
	for c := 0; c < domain.GridSize; c++ {
		page.ColHeaders[c] = header(view.ColNumbers, c)
	}
	for r := 0; r < domain.GridSize; r++ {
		row := GridRow{Header: header(view.RowNumbers, r), Cells: make([]GridCell, domain.GridSize)}
		for c := 0; c < domain.GridSize; c++ {
			row.Cells[c] = GridCell{Row: r, Col: c, Square: view.Claimed(r, c)}
		}
		page.Rows[r] = row
	}
	return page
}

// handleGroupQR serves a PNG QR code linking to the group page.
func (s *Server) handleGroupQR(w http.ResponseWriter, r *http.Request) {
	name, err := param.GroupName(r)
	if err != nil {
		http.Error(w, "invalid group name", http.StatusBadRequest)
		return
	}

	group, err := s.groups.Resolve(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("loading group for QR code", zap.String("name", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	link := s.baseURL(r) + "/groups/" + url.PathEscape(group.Name)
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		s.logger.Error("encoding QR code", zap.String("link", link), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// baseURL returns the configured public URL or one derived from the request.
func (s *Server) baseURL(r *http.Request) string {
	if s.publicURL != "" {
		return s.publicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
