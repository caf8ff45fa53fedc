package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/bcnelson/squares/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/* static/*
var content embed.FS

// Server holds dependencies for web handlers.
type Server struct {
	groups    *service.GroupService
	logger    *zap.Logger
	publicURL string
	templates map[string]*template.Template
}

// NewRouter creates a new web router with all routes configured.
// publicURL is the base for share links; when empty it is derived from each request.
func NewRouter(groups *service.GroupService, logger *zap.Logger, publicURL string) http.Handler {
	s := &Server{
		groups:    groups,
		logger:    logger,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}

	// Parse all templates
	s.templates = s.parseTemplates()

	r := chi.NewRouter()
	r.Use(securityHeaders)

	// Static files
	staticFS, _ := fs.Sub(content, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Get("/", s.handleHome)
	r.Get("/groups/{name}", s.handleGroupPage)
	r.Get("/groups/{name}/qr.png", s.handleGroupQR)

	return r
}

// parseTemplates parses each page template together with the base layout.
func (s *Server) parseTemplates() map[string]*template.Template {
	templates := make(map[string]*template.Template)

	baseContent, _ := content.ReadFile("templates/base.html")

	pageFiles, _ := fs.Glob(content, "templates/pages/*.html")
	for _, pagePath := range pageFiles {
		pageName := strings.TrimSuffix(filepath.Base(pagePath), ".html")

		pageContent, _ := content.ReadFile(pagePath)

		tmpl, err := template.New(pageName).Parse(string(baseContent) + string(pageContent))
		if err != nil {
			panic("failed to parse template " + pageName + ": " + err.Error())
		}

		templates[pageName] = tmpl
	}

	return templates
}

// render executes a page template into the base layout.
func (s *Server) render(w http.ResponseWriter, status int, page string, data PageData) {
	tmpl, ok := s.templates[page]
	if !ok {
		s.logger.Error("template not found", zap.String("page", page))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		s.logger.Error("rendering template", zap.String("page", page), zap.Error(err))
	}
}

// securityHeaders sets the response headers shared by every page.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// PageData holds common data passed to all page templates.
type PageData struct {
	Title       string
	Description string
	Content     any
}
