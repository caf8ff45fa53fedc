package api

import (
	"net/http"

	"github.com/bcnelson/squares/internal/api/handler"
	"github.com/bcnelson/squares/internal/api/middleware"
	"github.com/bcnelson/squares/internal/service"
	"github.com/bcnelson/squares/internal/storage"
	"github.com/bcnelson/squares/internal/web"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter creates a new HTTP router with all routes configured.
func NewRouter(
	groups *service.GroupService,
	claims *service.ClaimService,
	store storage.Storage,
	logger *zap.Logger,
	publicURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := store.Ping(r.Context()); err != nil {
			logger.Error("health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount web UI (no Content-Type middleware - serves HTML)
	r.Mount("/", web.NewRouter(groups, logger, publicURL))

	// API routes (JSON Content-Type)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.ContentType)

		groupHandler := handler.NewGroupHandler(groups, logger)
		r.Post("/groups", groupHandler.Create)
		r.Get("/groups/{name}", groupHandler.Get)

		squareHandler := handler.NewSquareHandler(claims, logger)
		r.Post("/groups/{name}/squares", squareHandler.Claim)
		r.Delete("/groups/{name}/squares/{row}/{col}", squareHandler.Unclaim)
	})

	return r
}
