// Package response пишет JSON-конверты ответов сервера.
// Используется и хендлерами api, и middleware, чтобы формат ошибок был один.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/validation"
	"github.com/IvanChernomyrdin/go-todolist/internal/shared/models"
)

const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Сообщения ошибок, которые отдаются наружу как есть.
const (
	MsgInternal        = "Internal server error"
	MsgNotFound        = "Resource not found"
	MsgMethodNotAllow  = "Method not allowed"
	MsgTooManyRequests = "Too many requests, please try again later"
	MsgNoToken         = "No token provided"
	MsgInvalidToken    = "Invalid or expired token"
	MsgAuthFailed      = "Authentication failed"
	MsgBodyTooLarge    = "Request body too large"
	MsgTimeout         = "Request timeout"
)

// JSON пишет v как тело ответа с заданным статусом.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Success пишет {"status":"success","message":...,"data":...}. data == nil опускается.
func Success(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, models.SuccessResponse{
		Status:  models.StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// Error пишет {"status":"error","message":...}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, models.ErrorResponse{
		Status:  models.StatusError,
		Message: message,
	})
}

// Validation пишет 400 с ошибками по полям.
func Validation(w http.ResponseWriter, errs *validation.Errors) {
	body := models.ValidationErrors{
		FieldErrors: map[string][]string{},
		FormErrors:  []string{},
	}
	if errs != nil {
		for k, v := range errs.FieldErrors {
			body.FieldErrors[k] = v
		}
		body.FormErrors = append(body.FormErrors, errs.FormErrors...)
	}
	JSON(w, http.StatusBadRequest, models.ValidationErrorResponse{Error: body})
}
