// Package v1 implements the v1 HTTP API routes.
package v1

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/primelabs/primed"
	"github.com/primelabs/primed/application/service"
	"github.com/primelabs/primed/domain/sieve"
	"github.com/primelabs/primed/infrastructure/api/middleware"
	"github.com/primelabs/primed/infrastructure/api/v1/dto"
)

// PrimesRouter handles prime enumeration endpoints.
type PrimesRouter struct {
	client *primed.Client
	logger *slog.Logger
}

// NewPrimesRouter creates a new PrimesRouter.
func NewPrimesRouter(client *primed.Client) *PrimesRouter {
	return &PrimesRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for prime endpoints.
func (r *PrimesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.Range)
	router.Get("/upto/{max}", r.Upto)

	return router
}

// Range handles GET /api/v1/primes?min_prime=&max_prime=.
func (r *PrimesRouter) Range(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	minPrime, err := queryInt(req, "min_prime")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	maxPrime, err := queryInt(req, "max_prime")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	segment, err := r.client.Sieve.Range(ctx, minPrime, maxPrime)
	if err != nil {
		middleware.WriteError(w, req, mapSieveError(err), r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewSegmentResponse(segment))
}

// Upto handles GET /api/v1/primes/upto/{max}.
func (r *PrimesRouter) Upto(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	maxPrime, err := strconv.Atoi(chi.URLParam(req, "max"))
	if err != nil {
		middleware.WriteError(w, req,
			middleware.NewAPIError(http.StatusBadRequest, "max must be an integer", err), r.logger)
		return
	}

	segment, err := r.client.Sieve.Upto(ctx, maxPrime)
	if err != nil {
		middleware.WriteError(w, req, mapSieveError(err), r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewSegmentResponse(segment))
}

// queryInt parses a required integer query parameter.
func queryInt(req *http.Request, name string) (int, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return 0, middleware.NewAPIError(http.StatusBadRequest, name+" is required", nil)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, middleware.NewAPIError(http.StatusBadRequest, name+" must be an integer", err)
	}
	return value, nil
}

// mapSieveError translates domain errors into API errors with the right
// status codes.
func mapSieveError(err error) error {
	switch {
	case errors.Is(err, sieve.ErrInvalidRange):
		return middleware.NewAPIError(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, service.ErrSpanTooLarge):
		return middleware.NewAPIError(http.StatusBadRequest, err.Error(), err)
	default:
		return err
	}
}
