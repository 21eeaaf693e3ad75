package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"nodework/internal/observability"
)

// RouterConfig carries everything the router wires together
type RouterConfig struct {
	Editor         *EditorHandler
	Events         http.Handler
	Metrics        *observability.Collector
	Logger         *zap.Logger
	AllowedOrigins []string
}

// NewRouter configures all routes and middleware
func NewRouter(cfg RouterConfig) http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(Logger(cfg.Logger))
	router.Use(Metrics(cfg.Metrics))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", cfg.Editor.Health)

	router.Route("/api", func(r chi.Router) {
		r.Post("/actions", cfg.Editor.Dispatch)
		r.Get("/model", cfg.Editor.GetModel)
		r.Get("/library", cfg.Editor.GetLibrary)

		r.Post("/save", cfg.Editor.Save)
		r.Post("/load", cfg.Editor.Load)

		r.Get("/export/yaml", cfg.Editor.ExportYAML)
		r.Get("/export/json", cfg.Editor.ExportJSON)
		r.Post("/import/yaml", cfg.Editor.ImportYAML)
	})

	router.Method(http.MethodGet, "/events", cfg.Events)
	router.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())

	return router
}
