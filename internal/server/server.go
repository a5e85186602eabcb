// Package server exposes the proof checker over HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/gnolang/fitch/check"
)

const (
	// DefaultCacheSize is the number of results kept when none is configured.
	DefaultCacheSize = 1024

	maxBodyBytes  = 4 << 20
	maxBatchItems = 10000
)

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	engine check.Engine
	cache  *lru.Cache[string, check.OutputRecord]
	log    *zap.Logger
}

// New creates and configures the HTTP server. Results of identical
// problems are served from an LRU cache of cacheSize entries.
func New(engine check.Engine, log *zap.Logger, cacheSize int) (*Server, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, check.OutputRecord](cacheSize)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		engine: engine,
		cache:  cache,
		log:    log,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/rules", s.handleRules)
		r.Post("/check", s.handleCheck)
		r.Post("/check/batch", s.handleBatch)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
