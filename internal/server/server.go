// Package server is the remote document store the sync coordinator pushes
// to and pulls from.
package server

import (
	"net/http"

	"github.com/brk3/lifemanager/internal/cloudsync"
	"github.com/brk3/lifemanager/internal/config"
	"github.com/brk3/lifemanager/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// maxDocumentBytes caps the size of a pushed document.
const maxDocumentBytes = 10 << 20

type Server struct {
	cfg     *config.Config
	docs    storage.DocumentStore
	remote  *cloudsync.StoreRemote
	limiter *rate.Limiter
}

func New(cfg *config.Config, docs storage.DocumentStore) *Server {
	limit := rate.Inf
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
	}
	burst := cfg.RateLimit.Burst
	if burst < 1 {
		burst = 1
	}
	return &Server{
		cfg:     cfg,
		docs:    docs,
		remote:  cloudsync.NewStoreRemote(docs),
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (s *Server) collection(r *http.Request) string {
	if c := r.URL.Query().Get("collection"); c != "" {
		return c
	}
	if s.cfg.SyncCollection != "" {
		return s.cfg.SyncCollection
	}
	return cloudsync.DefaultCollection
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(metricsMiddleware)

	r.Get("/version", s.getVersionInfo)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/sync", func(r chi.Router) {
		r.Get("/{code}", s.getSyncDocument)
		r.With(s.rateLimitMiddleware).Put("/{code}", s.putSyncDocument)
	})
	return r
}
