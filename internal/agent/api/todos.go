package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/IvanChernomyrdin/go-todolist/internal/shared/models"
)

// ListParams: query-параметры GET /todos. Нулевые значения не отправляются.
type ListParams struct {
	IsDone   *bool
	Upcoming bool
	Page     int
	Limit    int
}

// Query кодирует параметры в query-строку.
func (p ListParams) Query() string {
	q := url.Values{}
	if p.IsDone != nil {
		q.Set("isDone", strconv.FormatBool(*p.IsDone))
	}
	if p.Upcoming {
		q.Set("upcoming", "true")
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q.Encode()
}

// CreateTodo создаёт задачу.
func (c *Client) CreateTodo(ctx context.Context, token string, req models.CreateTodoRequest) (models.Todo, error) {
	var t models.Todo
	_, err := c.PostJSON(ctx, "/todos", req, &t, token)
	return t, err
}

// ListTodos возвращает страницу задач.
func (c *Client) ListTodos(ctx context.Context, token string, p ListParams) (models.TodoList, error) {
	path := "/todos"
	if q := p.Query(); q != "" {
		path += "?" + q
	}
	var list models.TodoList
	_, err := c.GetJSON(ctx, path, &list, token)
	return list, err
}

// GetTodo возвращает задачу по id.
func (c *Client) GetTodo(ctx context.Context, token, id string) (models.Todo, error) {
	var t models.Todo
	_, err := c.GetJSON(ctx, "/todos/"+url.PathEscape(id), &t, token)
	return t, err
}

// UpdateTodo частично обновляет задачу.
func (c *Client) UpdateTodo(ctx context.Context, token, id string, req models.UpdateTodoRequest) (models.Todo, error) {
	var t models.Todo
	_, err := c.PatchJSON(ctx, "/todos/"+url.PathEscape(id), req, &t, token)
	return t, err
}

// DeleteTodo удаляет задачу.
func (c *Client) DeleteTodo(ctx context.Context, token, id string) error {
	_, err := c.DeleteJSON(ctx, "/todos/"+url.PathEscape(id), nil, token)
	return err
}
