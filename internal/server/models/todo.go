package models

import (
	"time"

	"github.com/google/uuid"
)

// Todo: задача пользователя. CompletedAt заполнен тогда и только тогда, когда IsDone.
type Todo struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	DueDate     time.Time
	IsDone      bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoListFilter: условия выборки для репозитория.
//
// DueFrom != nil ограничивает выборку задачами со сроком не раньше DueFrom.
type TodoListFilter struct {
	IsDone  *bool
	DueFrom *time.Time
	Limit   int
	Offset  int
}
