// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/models"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/response"
	serr "github.com/IvanChernomyrdin/go-todolist/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-todolist/internal/shared/logger"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// userKey: ключ контекста, под которым хранится аутентифицированный пользователь.
const userKey ctxKey = "user"

// Authenticator проверяет токен и возвращает его владельца.
// Реализуется service.AuthService.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

// Auth возвращает middleware проверки Bearer-токена.
//
// Middleware:
//   - ожидает заголовок Authorization: Bearer <token>
//   - проверяет токен и загружает пользователя через Authenticator
//   - кладёт пользователя в context.Context
//
// Все отказы отдаются как 401 в конверте ошибки.
func Auth(auth Authenticator, log *logger.HTTPLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractBearer(r.Header.Get("Authorization"))
			if token == "" {
				response.Error(w, http.StatusUnauthorized, response.MsgNoToken)
				return
			}

			u, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, serr.ErrInvalidToken):
					response.Error(w, http.StatusUnauthorized, response.MsgInvalidToken)
				case errors.Is(err, serr.ErrUserNotFound):
					// наружу не уточняем, в лог пишем
					log.Warn("token owner not found", zap.Error(err), zap.String("uri", r.RequestURI))
					response.Error(w, http.StatusUnauthorized, response.MsgAuthFailed)
				default:
					log.Error("authenticate failed", zap.Error(err), zap.String("uri", r.RequestURI))
					response.Error(w, http.StatusUnauthorized, response.MsgAuthFailed)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// WithUser кладёт пользователя в контекст.
func WithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext извлекает аутентифицированного пользователя из контекста.
//
// Возвращает:
//   - пользователя
//   - false, если пользователь не аутентифицирован
func UserFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey).(models.User)
	return u, ok
}

// UserIDFromContext: сокращение для UserFromContext, когда нужен только id.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	u, ok := UserFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return u.ID, true
}

// ExtractBearer извлекает JWT из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
