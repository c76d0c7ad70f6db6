// Package service содержит бизнес-логику приложения.
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/config"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/models"
)

// Repositories: набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users  UsersRepo
	Todos  TodosRepo
	Health HealthRepo
}

// Services: агрегатор всех сервисов приложения.
type Services struct {
	Auth   *AuthService
	Todos  *TodoService
	Health *HealthService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (хэшер паролей, параметры JWT) и HealthService (имя сервиса, окружение).
func NewServices(repos Repositories, cfg *config.Config, version string) (*Services, error) {
	hasher, err := crypto.NewPasswordHasher(cfg.Password.Hasher, cfg.Password.Bcrypt.Cost, crypto.Argon2Params{
		Time:      cfg.Password.Argon2.Time,
		MemoryKiB: cfg.Password.Argon2.MemoryKiB,
		Threads:   cfg.Password.Argon2.Threads,
		KeyLen:    cfg.Password.Argon2.KeyLen,
		SaltLen:   cfg.Password.Argon2.SaltLen,
	})
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}

	return &Services{
		Auth:   NewAuthService(repos.Users, hasher, cfg),
		Todos:  NewTodoService(repos.Todos),
		Health: NewHealthService(repos.Health, cfg.ServiceName, version, cfg.Env),
	}, nil
}

// HealthRepo: минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo: репозиторий пользователей (нужен для register/login и проверки токена).
type UsersRepo interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

// TodosRepo: репозиторий задач. Все методы ограничены владельцем.
type TodosRepo interface {
	Create(ctx context.Context, t models.Todo) (models.Todo, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (models.Todo, error)
	Update(ctx context.Context, t models.Todo) (models.Todo, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, f models.TodoListFilter) ([]models.Todo, int, error)
}

// clock подменяется в тестах
type clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }
