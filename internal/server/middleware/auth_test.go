package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-todolist/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-todolist/internal/shared/logger"
)

// authFunc позволяет подставить функцию вместо AuthService
type authFunc func(ctx context.Context, token string) (models.User, error)

func (f authFunc) Authenticate(ctx context.Context, token string) (models.User, error) {
	return f(ctx, token)
}

func TestAuth_OK(t *testing.T) {
	user := models.User{ID: uuid.New(), Email: "ann@example.com"}
	auth := authFunc(func(_ context.Context, token string) (models.User, error) {
		require.Equal(t, "good-token", token)
		return user, nil
	})

	called := false
	h := middleware.Auth(auth, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		u, ok := middleware.UserFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, user.Email, u.Email)

		id, ok := middleware.UserIDFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, user.ID, id)
	}))

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		authErr error
		wantMsg string
	}{
		{name: "no header", header: "", wantMsg: "No token provided"},
		{name: "wrong scheme", header: "Basic abc", wantMsg: "No token provided"},
		{name: "bad token", header: "Bearer bad", authErr: fmt.Errorf("%w: sig", serr.ErrInvalidToken), wantMsg: "Invalid or expired token"},
		{name: "user gone", header: "Bearer ok", authErr: fmt.Errorf("%w: id", serr.ErrUserNotFound), wantMsg: "Authentication failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := authFunc(func(context.Context, string) (models.User, error) {
				return models.User{}, tt.authErr
			})
			h := middleware.Auth(auth, logger.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatal("next handler must not be called")
			}))

			req := httptest.NewRequest(http.MethodGet, "/todos", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.JSONEq(t, fmt.Sprintf(`{"status":"error","message":%q}`, tt.wantMsg), rec.Body.String())
		})
	}
}

func TestExtractBearer(t *testing.T) {
	require.Equal(t, "abc", middleware.ExtractBearer("Bearer abc"))
	require.Equal(t, "abc", middleware.ExtractBearer("  bearer   abc "))
	require.Equal(t, "", middleware.ExtractBearer("Bearer"))
	require.Equal(t, "", middleware.ExtractBearer("Token abc"))
	require.Equal(t, "", middleware.ExtractBearer(""))
}

func TestUserFromContext_Empty(t *testing.T) {
	_, ok := middleware.UserFromContext(context.Background())
	require.False(t, ok)
	id, ok := middleware.UserIDFromContext(context.Background())
	require.False(t, ok)
	require.Equal(t, uuid.Nil, id)
}
