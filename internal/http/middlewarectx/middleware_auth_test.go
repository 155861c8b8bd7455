package middlewarectx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/sole-app/sole-backend/internal/lib/jwt"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		id, ok := UserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, 7, id)
		assert.Equal(t, "testuser", r.Context().Value(User))
		w.WriteHeader(http.StatusOK)
	})

	handler := JWTMiddleware(maker, newNoopLogger())(next)

	t.Run("valid access token", func(t *testing.T) {
		token, err := maker.GenerateToken(7, "testuser", jwt.PurposeAccess, 0)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		nextCalled = false
		handler.ServeHTTP(w, req)

		assert.True(t, nextCalled)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		nextCalled = false
		handler.ServeHTTP(w, req)

		assert.False(t, nextCalled)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()

		nextCalled = false
		handler.ServeHTTP(w, req)

		assert.False(t, nextCalled)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token with wrong purpose", func(t *testing.T) {
		token, err := maker.GenerateToken(7, "testuser", jwt.PurposeVerifyEmail, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		nextCalled = false
		handler.ServeHTTP(w, req)

		assert.False(t, nextCalled)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0), 2)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimitMiddleware(newNoopLogger(), limiter)(next)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
