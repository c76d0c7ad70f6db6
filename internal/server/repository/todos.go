package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-todolist/internal/shared/errors"
)

const todoColumns = `id, user_id, name, description, due_date, is_done, completed_at, created_at, updated_at`

// TodosRepository хранит задачи. Каждый запрос фильтруется по user_id владельца.
type TodosRepository struct {
	db *sql.DB
}

func NewTodosRepository(db *sql.DB) *TodosRepository {
	return &TodosRepository{db: db}
}

// Create сохраняет новую задачу и возвращает её с полями, проставленными бд.
func (r *TodosRepository) Create(ctx context.Context, t models.Todo) (models.Todo, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO todos (user_id, name, description, due_date)
		 VALUES ($1,$2,$3,$4)
		 RETURNING `+todoColumns,
		t.UserID, t.Name, t.Description, t.DueDate,
	)

	created, err := scanTodo(row)
	if err != nil {
		return models.Todo{}, internal("insert todo", err)
	}
	return created, nil
}

// GetByID возвращает задачу владельца. Чужая задача неотличима от отсутствующей.
func (r *TodosRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (models.Todo, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id=$1 AND user_id=$2`,
		id, userID,
	)

	t, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, serr.ErrNotFound
		}
		return models.Todo{}, internal("select todo", err)
	}
	return t, nil
}

// Update перезаписывает изменяемые поля задачи владельца.
func (r *TodosRepository) Update(ctx context.Context, t models.Todo) (models.Todo, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE todos
		 SET name=$3, description=$4, due_date=$5, is_done=$6, completed_at=$7, updated_at=now()
		 WHERE id=$1 AND user_id=$2
		 RETURNING `+todoColumns,
		t.ID, t.UserID, t.Name, t.Description, t.DueDate, t.IsDone, nullTime(t),
	)

	updated, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, serr.ErrNotFound
		}
		return models.Todo{}, internal("update todo", err)
	}
	return updated, nil
}

// Delete удаляет задачу владельца. Если ничего не удалено: ErrNotFound.
func (r *TodosRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM todos WHERE id=$1 AND user_id=$2`,
		id, userID,
	)
	if err != nil {
		return internal("delete todo", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return internal("delete todo rows affected", err)
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}

// List возвращает страницу задач владельца по возрастанию срока
// и общее количество подходящих задач без учёта пагинации.
func (r *TodosRepository) List(ctx context.Context, userID uuid.UUID, f models.TodoListFilter) ([]models.Todo, int, error) {
	where := []string{"user_id=$1"}
	args := []any{userID}

	if f.IsDone != nil {
		args = append(args, *f.IsDone)
		where = append(where, fmt.Sprintf("is_done=$%d", len(args)))
	}
	if f.DueFrom != nil {
		args = append(args, *f.DueFrom)
		where = append(where, fmt.Sprintf("due_date>=$%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM todos WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, internal("count todos", err)
	}

	pageArgs := append(args, f.Limit, f.Offset)
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM todos WHERE %s ORDER BY due_date ASC, id ASC LIMIT $%d OFFSET $%d`,
			todoColumns, cond, len(pageArgs)-1, len(pageArgs)),
		pageArgs...,
	)
	if err != nil {
		return nil, 0, internal("select todos", err)
	}
	defer rows.Close()

	todos := make([]models.Todo, 0, f.Limit)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, 0, internal("scan todo", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, internal("iterate todos", err)
	}

	return todos, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(s rowScanner) (models.Todo, error) {
	var (
		t         models.Todo
		completed sql.NullTime
	)
	err := s.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.DueDate, &t.IsDone, &completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return models.Todo{}, err
	}
	if completed.Valid {
		ct := completed.Time
		t.CompletedAt = &ct
	}
	return t, nil
}

func nullTime(t models.Todo) sql.NullTime {
	if t.CompletedAt == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t.CompletedAt, Valid: true}
}
