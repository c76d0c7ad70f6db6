// Package errors содержит общие доменные ошибки приложения.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы и сообщения в api слое (см. api.writeServiceError).
package errors

import "errors"

var (
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Ресурс уже существует (нарушение уникального индекса в бд)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
)

// auth
var (
	// email уже зарегистрирован
	ErrEmailTaken = errors.New("email already registered")
	// Неверный email или пароль, наружу не различаем
	ErrInvalidCredentials = errors.New("invalid credentials")
	// подпись, срок жизни или формат токена не прошли проверку
	ErrInvalidToken = errors.New("invalid or expired token")
	// токен валиден, но пользователя уже нет
	ErrUserNotFound = errors.New("user not found")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
)

// todos
var (
	// задача не найдена или принадлежит другому пользователю
	ErrTodoNotFound = errors.New("todo not found")
)

// только для клиента
var (
	// в локальном конфиге нет токена
	ErrNotLoggedIn = errors.New("not logged in")
	// нет такой страницы в локальном состоянии
	ErrNoNextPage     = errors.New("already on the last page")
	ErrNoPreviousPage = errors.New("already on the first page")
)
