package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/models"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/validation"
	serr "github.com/IvanChernomyrdin/go-todolist/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-todolist/internal/shared/utils"
)

// TodoService реализует CRUD задач и постраничный список.
// Все операции принимают id вызывающего пользователя и работают только с его задачами.
type TodoService struct {
	repo TodosRepo
	now  clock
}

// TodoPage: страница списка задач с метаданными пагинации.
type TodoPage struct {
	Todos       []models.Todo
	TotalItems  int
	TotalPages  int
	Page        int
	Limit       int
	HasNext     bool
	HasPrevious bool
}

func NewTodoService(repo TodosRepo) *TodoService {
	return &TodoService{repo: repo, now: systemClock}
}

// Create создаёт задачу. Новая задача не выполнена, CompletedAt пустой.
func (s *TodoService) Create(ctx context.Context, ownerID uuid.UUID, in validation.CreateTodoInput) (models.Todo, error) {
	t, err := s.repo.Create(ctx, models.Todo{
		UserID:      ownerID,
		Name:        in.Name,
		Description: in.Description,
		DueDate:     in.DueDate,
	})
	if err != nil {
		return models.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	return t, nil
}

// GetByID возвращает задачу владельца или ErrTodoNotFound.
func (s *TodoService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (models.Todo, error) {
	t, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return models.Todo{}, notFound(err, "get todo")
	}
	return t, nil
}

// Update применяет частичное обновление.
//
// isDone false->true проставляет CompletedAt = now, isDone=false очищает CompletedAt,
// повторный isDone=true CompletedAt не трогает.
func (s *TodoService) Update(ctx context.Context, ownerID, id uuid.UUID, patch validation.UpdateTodoInput) (models.Todo, error) {
	t, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return models.Todo{}, notFound(err, "get todo")
	}

	if patch.IsDone != nil {
		switch {
		case *patch.IsDone && !t.IsDone:
			now := s.now()
			t.CompletedAt = &now
		case !*patch.IsDone:
			t.CompletedAt = nil
		}
		t.IsDone = *patch.IsDone
	}
	t.Name = utils.Deref(patch.Name, t.Name)
	t.Description = utils.Deref(patch.Description, t.Description)
	t.DueDate = utils.Deref(patch.DueDate, t.DueDate)

	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return models.Todo{}, notFound(err, "update todo")
	}
	return updated, nil
}

// Delete удаляет задачу владельца или возвращает ErrTodoNotFound.
func (s *TodoService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return notFound(err, "delete todo")
	}
	return nil
}

// List возвращает страницу задач владельца, отсортированных по сроку.
//
// upcoming=true: только невыполненные со сроком не раньше текущего момента
// (isDone при этом игнорируется); иначе фильтр по isDone, если он передан.
func (s *TodoService) List(ctx context.Context, ownerID uuid.UUID, f validation.TodoFilter) (TodoPage, error) {
	q := models.TodoListFilter{Limit: f.Limit, Offset: f.Offset()}

	switch {
	case f.Upcoming:
		now := s.now()
		q.DueFrom = &now
		q.IsDone = utils.Ptr(false)
	case f.IsDone != nil:
		q.IsDone = f.IsDone
	}

	todos, total, err := s.repo.List(ctx, ownerID, q)
	if err != nil {
		return TodoPage{}, fmt.Errorf("list todos: %w", err)
	}

	totalPages := utils.CeilDiv(total, f.Limit)
	return TodoPage{
		Todos:       todos,
		TotalItems:  total,
		TotalPages:  totalPages,
		Page:        f.Page,
		Limit:       f.Limit,
		HasNext:     f.Page < totalPages,
		HasPrevious: f.Page > 1,
	}, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, serr.ErrNotFound) {
		return serr.ErrTodoNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
