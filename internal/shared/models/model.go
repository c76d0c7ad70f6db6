// Package models содержит модели, которые ходят по HTTP между сервером и клиентом.
//
// Даты везде передаются строкой ISO-8601 в UTC с миллисекундами (TimeLayout),
// идентификаторы строкой UUID. Хэш пароля в этих моделях отсутствует.
package models

import "time"

// TimeLayout формат дат в API, пример: 2026-01-16T11:57:16.000Z.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Значения поля status в конверте ответа.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// FormatTime приводит время к формату API.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// SuccessResponse: конверт успешного ответа.
//
// Data опускается для ответов, состоящих только из сообщения.
type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse: конверт ошибки.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ValidationErrors содержит ошибки схемы по полям и общие для всего тела.
type ValidationErrors struct {
	FieldErrors map[string][]string `json:"fieldErrors"`
	FormErrors  []string            `json:"formErrors"`
}

// ValidationErrorResponse: ответ 400 при ошибке валидации.
type ValidationErrorResponse struct {
	Error ValidationErrors `json:"error"`
}

// RegisterRequest тело POST /auth/register.
type RegisterRequest struct {
	FirstName string `json:"firstName" example:"Ivan"`
	LastName  string `json:"lastName" example:"Petrov"`
	Email     string `json:"email" example:"ivan@example.com"`
	Password  string `json:"password" example:"StrongPass123"`
}

// LoginRequest тело POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" example:"ivan@example.com"`
	Password string `json:"password" example:"StrongPass123"`
}

// User: публичные поля пользователя.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginData: data успешного логина.
type LoginData struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// CreateTodoRequest тело POST /todos.
type CreateTodoRequest struct {
	Name        string `json:"name" example:"Buy milk"`
	Description string `json:"description" example:"2 liters"`
	DueDate     string `json:"dueDate" example:"2026-01-20T10:00:00.000Z"`
}

// UpdateTodoRequest тело PATCH /todos/{id}. Все поля опциональны.
type UpdateTodoRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	IsDone      *bool   `json:"isDone,omitempty"`
}

// Todo: задача в ответах API.
type Todo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DueDate     string  `json:"dueDate"`
	IsDone      bool    `json:"isDone"`
	CompletedAt *string `json:"completedAt"`
	UserID      string  `json:"userId"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// Pagination: метаданные страницы списка.
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// TodoList: data ответа GET /todos.
type TodoList struct {
	Todos      []Todo     `json:"todos"`
	Pagination Pagination `json:"pagination"`
}

// Health: data ответа GET /health.
type Health struct {
	Service     string  `json:"service"`
	Version     string  `json:"version"`
	Environment string  `json:"environment"`
	Uptime      float64 `json:"uptime"` // секунды
	Timestamp   string  `json:"timestamp"`
	Database    string  `json:"database"` // up|down
}
