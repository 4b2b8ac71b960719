package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/sf-experiences/backend/internal/middleware"
)

func send(h http.Handler, method, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/favorites/sfmoma", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_RejectsAfterBurst(t *testing.T) {
	h := middleware.NewRateLimiter(0.001, 2).Handler(trivialHandler)

	assert.Equal(t, http.StatusOK, send(h, http.MethodPut, "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, send(h, http.MethodPut, "10.0.0.1:5001").Code)

	rec := send(h, http.MethodPut, "10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate_limited")
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	h := middleware.NewRateLimiter(0.001, 1).Handler(trivialHandler)

	assert.Equal(t, http.StatusOK, send(h, http.MethodDelete, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(h, http.MethodDelete, "10.0.0.1:2").Code)
	assert.Equal(t, http.StatusOK, send(h, http.MethodDelete, "10.0.0.2:1").Code)
}

func TestRateLimiter_ReadsAreNeverLimited(t *testing.T) {
	h := middleware.NewRateLimiter(0.001, 1).Handler(trivialHandler)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, send(h, http.MethodGet, "10.0.0.1:1").Code)
	}
}
