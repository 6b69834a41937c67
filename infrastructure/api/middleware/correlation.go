package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/primelabs/primed/internal/log"
)

// CorrelationIDHeader carries the request correlation ID.
const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationID returns a middleware that ensures every request carries a
// correlation ID. Client-supplied IDs are honoured; otherwise one is
// generated. The ID is stored in the request context and echoed in the
// response headers.
func CorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(CorrelationIDHeader)
			if id == "" {
				id = uuid.NewString()
			}

			ctx := log.WithCorrelationID(r.Context(), id)
			w.Header().Set(CorrelationIDHeader, id)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
