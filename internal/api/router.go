// Package api exposes the dataset over read-only JSON endpoints.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterConfig struct {
	ForceHTTPS         bool
	CORSAllowedOrigins []string
	EnableMetrics      bool

	// Cache is optional; nil disables response caching.
	Cache    ResponseCache
	CacheTTL time.Duration
}

// NewRouter wires every route onto a chi router.
func NewRouter(handler *Handler, cfg RouterConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         86400,
	}))

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/healthz", handler.Health)
	if cfg.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(PrometheusMetrics)
		if cfg.Cache != nil {
			r.Use(CacheResponses(cfg.Cache, cfg.CacheTTL, cfg.ForceHTTPS, logger))
		}

		r.Get("/", handler.Root)

		r.Route("/characters", func(r chi.Router) {
			r.Get("/", handler.ListCharacters)
			r.Get("/{id}", handler.GetCharacter)
		})

		r.Route("/episodes", func(r chi.Router) {
			r.Get("/", handler.ListEpisodes)
			r.Get("/{id}", handler.GetEpisode)
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", handler.ListQuotes)
			r.Get("/character/{characterId}", handler.QuotesByCharacter)
			r.Get("/episode/{episodeId}", handler.QuotesByEpisode)
		})
	})

	return r
}
