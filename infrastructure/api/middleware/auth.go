package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyHeader is the header carrying the client's API key.
const APIKeyHeader = "X-API-KEY"

// AuthConfig holds the accepted API keys. An empty key set disables
// authentication entirely.
type AuthConfig struct {
	keys []string
}

// NewAuthConfigWithKeys creates an AuthConfig accepting the given keys.
func NewAuthConfigWithKeys(keys []string) AuthConfig {
	return AuthConfig{keys: keys}
}

// Enabled reports whether authentication is enforced.
func (c AuthConfig) Enabled() bool {
	return len(c.keys) > 0
}

// Validate reports whether the presented key is accepted.
// Comparison is constant time per key.
func (c AuthConfig) Validate(key string) bool {
	if key == "" {
		return false
	}
	for _, accepted := range c.keys {
		if subtle.ConstantTimeCompare([]byte(accepted), []byte(key)) == 1 {
			return true
		}
	}
	return false
}

// RequireKey returns a middleware that rejects requests without a valid
// API key. With no keys configured, all requests pass.
func RequireKey(config AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			if !config.Validate(r.Header.Get(APIKeyHeader)) {
				WriteError(w, r, NewAuthenticationError("invalid or missing API key"), nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
