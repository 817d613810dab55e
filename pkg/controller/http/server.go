package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/gleaner/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr          string
	authenticator *Authenticator
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithAuthenticator protects the harvest endpoints with token verification.
// Without it, the endpoints are open.
func WithAuthenticator(authenticator *Authenticator) Option {
	return func(c *config) {
		c.authenticator = authenticator
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	harvestUC interfaces.HarvestUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8080",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	// Harvest endpoints, optionally token-protected
	harvestHandler := NewHarvestHandler(harvestUC)
	router.Group(func(r chi.Router) {
		if cfg.authenticator != nil {
			r.Use(cfg.authenticator.Middleware)
		}
		r.Post("/harvest", harvestHandler.Handle)
		r.Get("/harvest/runs/{runID}", harvestHandler.GetRun)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
