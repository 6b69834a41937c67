package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/primelabs/primed"
	apimiddleware "github.com/primelabs/primed/infrastructure/api/middleware"
	v1 "github.com/primelabs/primed/infrastructure/api/v1"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIServer provides an HTTP API backed by a primed Client.
type APIServer struct {
	client  *primed.Client
	server  *Server
	logger  *slog.Logger
	version string
}

// NewAPIServer creates a new APIServer wired to the given primed Client.
// When the client carries API keys, every /api/v1 endpoint requires a valid
// X-API-KEY header. Health and metrics endpoints remain open.
func NewAPIServer(client *primed.Client) *APIServer {
	return &APIServer{
		client:  client,
		logger:  client.Logger(),
		version: "dev",
	}
}

// WithVersion sets the version reported by the root endpoint.
func (a *APIServer) WithVersion(version string) *APIServer {
	if version != "" {
		a.version = version
	}
	return a
}

// mountRoutes wires up all routes on the given router.
func (a *APIServer) mountRoutes(router chi.Router) {
	primesRouter := v1.NewPrimesRouter(a.client)
	auth := apimiddleware.NewAuthConfigWithKeys(a.client.Config().APIKeys())

	router.Use(apimiddleware.CorrelationID())
	router.Use(apimiddleware.Logging(a.logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))
		r.Use(apimiddleware.RequireKey(auth))

		r.Mount("/primes", primesRouter.Routes())
	})

	healthHandler := func(w http.ResponseWriter, _ *http.Request) {
		apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
	router.Get("/health", healthHandler)
	router.Get("/healthz", healthHandler)
	router.Handle("/metrics", promhttp.Handler())

	router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{
			"name":    "primed",
			"version": a.version,
		})
	})
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.server = &server

	a.mountRoutes(server.Router())

	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the full route tree as an http.Handler for use with
// custom servers and tests.
func (a *APIServer) Handler() http.Handler {
	router := chi.NewRouter()
	a.mountRoutes(router)
	return router
}
