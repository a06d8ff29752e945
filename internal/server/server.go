package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/hongminglow/varadhi-be/internal/config"
	"github.com/hongminglow/varadhi-be/internal/http/handlers"
	"github.com/hongminglow/varadhi-be/internal/middleware"
	"github.com/hongminglow/varadhi-be/internal/service"
	"github.com/hongminglow/varadhi-be/internal/storage"
	"github.com/hongminglow/varadhi-be/web"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, log *zap.Logger) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewHandler(cfg, store, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// NewHandler builds the full handler chain: recover, logging, CORS, router.
func NewHandler(cfg config.Config, store storage.Store, log *zap.Logger) http.Handler {
	r := mux.NewRouter().UseEncodedPath()

	var pool handlers.PoolStats
	if ps, ok := store.(handlers.PoolStats); ok {
		pool = ps
	}
	handlers.NewHealthHandler(time.Now(), pool).Register(r)
	handlers.NewCatalogHandler(service.NewCatalog(store, log)).Register(r)
	handlers.NewAuthHandler(service.NewAccounts(store, log)).Register(r)

	r.Handle("/web", http.RedirectHandler("/web/", http.StatusMovedPermanently))
	r.PathPrefix("/web/").Handler(http.StripPrefix("/web/", http.FileServer(http.FS(web.Static()))))

	return middleware.Recover(log, middleware.Logging(log, middleware.CORS(cfg.CORSOrigins, r)))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
