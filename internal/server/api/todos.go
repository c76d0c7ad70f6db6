package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/response"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/validation"
	serr "github.com/IvanChernomyrdin/go-todolist/internal/shared/errors"
)

// owner достаёт id пользователя, положенный auth middleware.
// Без него маршрут не должен был вызваться, поэтому это ошибка сервера.
func (h *Handler) owner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.writeServiceError(w, r, serr.ErrUnauthorized, nil)
		return uuid.Nil, false
	}
	return id, true
}

// todoID разбирает {id} из пути. Кривой id неотличим от чужой задачи: 404.
func todoID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, msgTodoNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// CreateTodo создаёт задачу текущего пользователя.
//
// @Summary      Create todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.CreateTodoRequest true "Create todo request"
// @Success      201 {object} models.SuccessResponse{data=models.Todo}
// @Failure      400 {object} models.ValidationErrorResponse "Validation failed"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /todos [post]
func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	in := validation.ParseCreateTodo(body)
	if !in.OK() {
		response.Validation(w, in.Errors)
		return
	}

	t, err := h.Svc.Todos.Create(r.Context(), ownerID, in.Value)
	if err != nil {
		h.writeServiceError(w, r, err, body)
		return
	}
	response.Success(w, http.StatusCreated, "Todo created successfully", toTodoDTO(t))
}

// ListTodos возвращает страницу задач текущего пользователя.
//
// @Summary      List todos
// @Description  Returns the caller's todos sorted by due date, paginated.
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        isDone   query string false "Filter by completion" Enums(true, false)
// @Param        upcoming query string false "Only pending todos due from now on" Enums(true, false)
// @Param        page     query int    false "Page number (1-based)" default(1)
// @Param        limit    query int    false "Items per page" default(10)
// @Success      200 {object} models.SuccessResponse{data=models.TodoList}
// @Failure      400 {object} models.ValidationErrorResponse "Validation failed"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /todos [get]
func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	f := validation.ParseTodoFilter(r.URL.Query())
	if !f.OK() {
		response.Validation(w, f.Errors)
		return
	}

	page, err := h.Svc.Todos.List(r.Context(), ownerID, f.Value)
	if err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}
	response.Success(w, http.StatusOK, "Todos retrieved successfully", toTodoListDTO(page))
}

// GetTodo возвращает одну задачу текущего пользователя.
//
// @Summary      Get todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Todo ID"
// @Success      200 {object} models.SuccessResponse{data=models.Todo}
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "Todo not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /todos/{id} [get]
func (h *Handler) GetTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	t, err := h.Svc.Todos.GetByID(r.Context(), ownerID, id)
	if err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}
	response.Success(w, http.StatusOK, "Todo retrieved successfully", toTodoDTO(t))
}

// UpdateTodo частично обновляет задачу.
//
// @Summary      Update todo
// @Description  Partial update. Setting isDone=true stamps completedAt, isDone=false clears it.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                   true "Todo ID"
// @Param        request body models.UpdateTodoRequest true "Fields to change"
// @Success      200 {object} models.SuccessResponse{data=models.Todo}
// @Failure      400 {object} models.ValidationErrorResponse "Validation failed"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "Todo not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /todos/{id} [patch]
func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	in := validation.ParseUpdateTodo(body)
	if !in.OK() {
		response.Validation(w, in.Errors)
		return
	}

	t, err := h.Svc.Todos.Update(r.Context(), ownerID, id, in.Value)
	if err != nil {
		h.writeServiceError(w, r, err, body)
		return
	}
	response.Success(w, http.StatusOK, "Todo updated successfully", toTodoDTO(t))
}

// DeleteTodo удаляет задачу.
//
// @Summary      Delete todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Todo ID"
// @Success      200 {object} models.SuccessResponse "Todo deleted successfully"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "Todo not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /todos/{id} [delete]
func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Todos.Delete(r.Context(), ownerID, id); err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}
	response.Success(w, http.StatusOK, "Todo deleted successfully", nil)
}
