package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/primelabs/primed"
	"github.com/primelabs/primed/infrastructure/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...primed.Option) http.Handler {
	t.Helper()

	client, err := primed.New(append([]primed.Option{primed.WithoutPersistence()}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return api.NewAPIServer(client).Handler()
}

type segmentBody struct {
	MinPrime int   `json:"min_prime"`
	MaxPrime int   `json:"max_prime"`
	Count    int   `json:"count"`
	Sum      int64 `json:"sum"`
	Primes   []int `json:"primes"`
}

func doGet(handler http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestAPI_Range(t *testing.T) {
	handler := newTestHandler(t)

	w := doGet(handler, "/api/v1/primes?min_prime=0&max_prime=150")
	require.Equal(t, http.StatusOK, w.Code)

	var body segmentBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, 0, body.MinPrime)
	assert.Equal(t, 150, body.MaxPrime)
	assert.Equal(t, 35, body.Count)
	assert.Equal(t, int64(2276), body.Sum)
	assert.Len(t, body.Primes, 35)
	assert.Equal(t, 2, body.Primes[0])
	assert.Equal(t, 149, body.Primes[34])
}

func TestAPI_Range_EmptySegment(t *testing.T) {
	handler := newTestHandler(t)

	w := doGet(handler, "/api/v1/primes?min_prime=8&max_prime=10")
	require.Equal(t, http.StatusOK, w.Code)

	var body segmentBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Zero(t, body.Count)
	assert.NotNil(t, body.Primes)
	assert.Empty(t, body.Primes)
}

func TestAPI_Range_InvalidBounds(t *testing.T) {
	handler := newTestHandler(t)

	w := doGet(handler, "/api/v1/primes?min_prime=1&max_prime=0")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_Range_MissingParams(t *testing.T) {
	handler := newTestHandler(t)

	for _, target := range []string{
		"/api/v1/primes",
		"/api/v1/primes?min_prime=0",
		"/api/v1/primes?max_prime=100",
		"/api/v1/primes?min_prime=abc&max_prime=100",
	} {
		w := doGet(handler, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, "target %s", target)
	}
}

func TestAPI_Range_SpanTooLarge(t *testing.T) {
	handler := newTestHandler(t, primed.WithMaxSpan(100))

	w := doGet(handler, "/api/v1/primes?min_prime=0&max_prime=1000")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_Upto(t *testing.T) {
	handler := newTestHandler(t)

	w := doGet(handler, "/api/v1/primes/upto/5")
	require.Equal(t, http.StatusOK, w.Code)

	var body segmentBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []int{2, 3, 5}, body.Primes)
}

func TestAPI_Upto_NonInteger(t *testing.T) {
	handler := newTestHandler(t)

	w := doGet(handler, "/api/v1/primes/upto/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_Auth(t *testing.T) {
	handler := newTestHandler(t, primed.WithAPIKeys("secret"))

	// No key
	w := doGet(handler, "/api/v1/primes/upto/10")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong key
	req := httptest.NewRequest(http.MethodGet, "/api/v1/primes/upto/10", nil)
	req.Header.Set("X-API-KEY", "wrong")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid key
	req = httptest.NewRequest(http.MethodGet, "/api/v1/primes/upto/10", nil)
	req.Header.Set("X-API-KEY", "secret")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Health stays open
	w = doGet(handler, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPI_Health(t *testing.T) {
	handler := newTestHandler(t)

	w := doGet(handler, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestAPI_Metrics(t *testing.T) {
	handler := newTestHandler(t)

	w := doGet(handler, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPI_CorrelationIDEchoed(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/primes/upto/10", nil)
	req.Header.Set("X-Correlation-ID", "test-id-42")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "test-id-42", w.Header().Get("X-Correlation-ID"))
}
