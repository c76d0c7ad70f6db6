// Серверные модели, в которых хранятся записи бд
package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string // всегда в нижнем регистре
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
