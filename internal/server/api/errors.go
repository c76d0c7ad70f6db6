package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/response"
	serr "github.com/IvanChernomyrdin/go-todolist/internal/shared/errors"
)

// Сообщения доменных ошибок.
const (
	msgEmailTaken         = "Email already registered"
	msgInvalidCredentials = "Invalid email or password"
	msgTodoNotFound       = "Todo not found"
)

// writeServiceError: единственное место, где ошибки сервисного слоя
// превращаются в HTTP-ответ.
//
// Известные ошибки отдаются со своим статусом и сообщением. Всё остальное
// пишется в лог с контекстом запроса (метод, url, параметры маршрута, query,
// тело без секретов, стек) и отдаётся как 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, body any) {
	switch {
	case errors.Is(err, serr.ErrEmailTaken):
		response.Error(w, http.StatusBadRequest, msgEmailTaken)
	case errors.Is(err, serr.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, serr.ErrTodoNotFound):
		response.Error(w, http.StatusNotFound, msgTodoNotFound)
	case errors.Is(err, serr.ErrInvalidToken):
		response.Error(w, http.StatusUnauthorized, response.MsgInvalidToken)
	case errors.Is(err, serr.ErrUserNotFound), errors.Is(err, serr.ErrUnauthorized):
		response.Error(w, http.StatusUnauthorized, response.MsgAuthFailed)
	case errors.Is(err, context.DeadlineExceeded):
		h.Log.Warn("request timed out",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()),
			zap.String("request_id", chimw.GetReqID(r.Context())),
		)
		response.Error(w, http.StatusServiceUnavailable, response.MsgTimeout)
	default:
		h.Log.Error("unexpected error",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()),
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.Any("params", routeParams(r)),
			zap.Any("query", r.URL.Query()),
			zap.Any("body", h.redactBody(body)),
			zap.Stack("stack"),
		)
		response.Error(w, http.StatusInternalServerError, response.MsgInternal)
	}
}

func (h *Handler) redactBody(body any) any {
	if m, ok := body.(map[string]any); ok {
		return h.Log.Redact(m)
	}
	return body
}

func routeParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}
	out := make(map[string]string, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		if k == "*" {
			continue
		}
		out[k] = rctx.URLParams.Values[i]
	}
	return out
}
