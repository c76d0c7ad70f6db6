package api

import (
	srvmodels "github.com/IvanChernomyrdin/go-todolist/internal/server/models"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/service"
	"github.com/IvanChernomyrdin/go-todolist/internal/shared/models"
)

// Маппинг записей хранилища в модели ответа. Хэш пароля наружу не попадает.

func toUserDTO(u srvmodels.User) models.User {
	return models.User{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func toTodoDTO(t srvmodels.Todo) models.Todo {
	out := models.Todo{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		DueDate:     models.FormatTime(t.DueDate),
		IsDone:      t.IsDone,
		UserID:      t.UserID.String(),
		CreatedAt:   models.FormatTime(t.CreatedAt),
		UpdatedAt:   models.FormatTime(t.UpdatedAt),
	}
	if t.CompletedAt != nil {
		s := models.FormatTime(*t.CompletedAt)
		out.CompletedAt = &s
	}
	return out
}

func toTodoListDTO(p service.TodoPage) models.TodoList {
	todos := make([]models.Todo, 0, len(p.Todos))
	for _, t := range p.Todos {
		todos = append(todos, toTodoDTO(t))
	}
	return models.TodoList{
		Todos: todos,
		Pagination: models.Pagination{
			CurrentPage:     p.Page,
			TotalPages:      p.TotalPages,
			TotalItems:      p.TotalItems,
			ItemsPerPage:    p.Limit,
			HasNextPage:     p.HasNext,
			HasPreviousPage: p.HasPrevious,
		},
	}
}

func toHealthDTO(st service.HealthStatus) models.Health {
	db := "down"
	if st.DatabaseUp {
		db = "up"
	}
	return models.Health{
		Service:     st.Service,
		Version:     st.Version,
		Environment: st.Environment,
		Uptime:      st.Uptime.Seconds(),
		Timestamp:   models.FormatTime(st.Timestamp),
		Database:    db,
	}
}
