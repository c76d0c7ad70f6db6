// Package repository содержит реализацию хранилища поверх PostgreSQL (database/sql + pgx).
//
// Ошибки бд переводятся в доменные:
//   - sql.ErrNoRows -> serr.ErrNotFound
//   - unique_violation (23505) -> serr.ErrAlreadyExists
//   - прочее -> serr.ErrInternal, исходная причина тоже доступна через errors.Is
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-todolist/internal/shared/errors"
)

// pgUniqueViolation код ошибки postgres для нарушения уникального индекса
const pgUniqueViolation = "23505"

type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Create сохраняет пользователя. Email должен быть уже приведён к нижнему регистру.
// Заполняет ID, CreatedAt, UpdatedAt из бд.
func (r *UsersRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (first_name, last_name, email, password_hash)
		 VALUES ($1,$2,$3,$4)
		 RETURNING id, created_at, updated_at`,
		u.FirstName, u.LastName, u.Email, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, serr.ErrAlreadyExists
		}
		return models.User{}, internal("insert user", err)
	}

	return u, nil
}

// GetByEmail ищет пользователя по email без учёта регистра.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getOne(ctx,
		`SELECT id, first_name, last_name, email, password_hash, created_at, updated_at
		 FROM users WHERE lower(email)=lower($1)`,
		email,
	)
}

// GetByID ищет пользователя по id.
func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return r.getOne(ctx,
		`SELECT id, first_name, last_name, email, password_hash, created_at, updated_at
		 FROM users WHERE id=$1`,
		id,
	)
}

func (r *UsersRepository) getOne(ctx context.Context, query string, arg any) (models.User, error) {
	var u models.User

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, internal("select user", err)
	}

	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", serr.ErrInternal, op, err)
}
