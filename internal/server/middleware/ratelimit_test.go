package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/models"
)

func TestRateLimiter_AllowBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3, RateKeyIP)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow("a"), "request %d", i)
	}
	require.False(t, rl.Allow("a"))
	// другой ключ считается отдельно
	require.True(t, rl.Allow("b"))

	now = now.Add(time.Second)
	require.True(t, rl.Allow("a"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1, RateKeyIP)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(11 * time.Minute)
	rl.Allow("fresh")

	require.Equal(t, 1, rl.Cleanup())
	require.Len(t, rl.clients, 1)
	require.Contains(t, rl.clients, "fresh")
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, RateKeyIP)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// тот же ip с другого порта
	req.RemoteAddr = "10.0.0.1:6666"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.JSONEq(t, `{"status":"error","message":"Too many requests, please try again later"}`, rec.Body.String())
}

func TestRateLimiter_KeyByUser(t *testing.T) {
	rl := NewRateLimiter(1, 1, RateKeyUser)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	require.Equal(t, "ip:10.0.0.1", rl.key(req))

	req = req.WithContext(WithUser(req.Context(), models.User{ID: id}))
	require.Equal(t, "user:"+id.String(), rl.key(req))
}
