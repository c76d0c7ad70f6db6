package middleware

import (
	"fmt"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/response"
	"github.com/IvanChernomyrdin/go-todolist/internal/shared/logger"
)

// Recoverer перехватывает панику хендлера, пишет её в лог со стеком и отвечает 500.
func Recoverer(log *logger.HTTPLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// http.ErrAbortHandler штатно обрывает соединение
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered",
					zap.String("method", r.Method),
					zap.String("uri", r.RequestURI),
					zap.String("request_id", chimw.GetReqID(r.Context())),
					zap.String("panic", fmt.Sprint(rec)),
					zap.Stack("stack"),
				)
				response.Error(w, http.StatusInternalServerError, response.MsgInternal)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
