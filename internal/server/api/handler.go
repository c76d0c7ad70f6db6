// Package api реализует HTTP-слой сервера.
//
// Пакет отвечает за:
//   - разбор и проверку входящих запросов (validation);
//   - вызов сервисного слоя;
//   - маппинг доменных ошибок в HTTP-коды и сообщения (writeServiceError);
//   - формирование ответов в конверте {status, message, data}.
package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/response"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/service"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/validation"
	"github.com/IvanChernomyrdin/go-todolist/internal/shared/logger"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи ошибок с контекстом запроса.
type Handler struct {
	Svc *service.Services
	Log *logger.HTTPLogger
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.HTTPLogger) *Handler {
	return &Handler{
		Svc: svc,
		Log: log,
	}
}

// decodeBody читает JSON-тело. При битом JSON сам отвечает 400, при слишком
// большом теле 413, и возвращает false.
func decodeBody(w http.ResponseWriter, r *http.Request) (any, bool) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, response.MsgBodyTooLarge)
			return nil, false
		}
		response.Validation(w, &validation.Errors{FormErrors: []string{validation.MsgInvalidJSON}})
		return nil, false
	}

	body, errs := validation.DecodeJSON(bytes.NewReader(raw))
	if errs != nil {
		response.Validation(w, errs)
		return nil, false
	}
	return body, true
}
