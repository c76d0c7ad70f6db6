package validation

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"
)

// Ограничения фильтра списка задач.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// CreateTodoInput: проверенное тело создания задачи.
type CreateTodoInput struct {
	Name        string
	Description string
	DueDate     time.Time
}

// UpdateTodoInput: проверенное тело частичного обновления.
// nil означает "поле не передано". Пустой патч допустим.
type UpdateTodoInput struct {
	Name        *string
	Description *string
	DueDate     *time.Time
	IsDone      *bool
}

// Empty сообщает, что в патче нет ни одного поля.
func (u UpdateTodoInput) Empty() bool {
	return u.Name == nil && u.Description == nil && u.DueDate == nil && u.IsDone == nil
}

// TodoFilter: проверенные query-параметры GET /todos.
type TodoFilter struct {
	IsDone   *bool
	Upcoming bool
	Page     int
	Limit    int
}

// Offset: сколько записей пропустить. Не бывает отрицательным.
func (f TodoFilter) Offset() int {
	if f.Page <= 1 || f.Limit <= 0 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.Limit {
		return math.MaxInt
	}
	return (f.Page - 1) * f.Limit
}

var (
	todoShape = shape{
		{name: "name", rules: []rule{
			{"min=1", "Name is required"},
			{"max=100", "Name is too long"},
		}},
		{name: "description", rules: []rule{
			{"min=1", "Description is required"},
			{"max=500", "Description is too long"},
		}},
		{name: "dueDate", rules: []rule{
			{"iso8601", "Invalid date format"},
		}},
	}

	updateTodoShape = append(todoShape.partial(), field{name: "isDone", kind: kindBool, optional: true})
)

// ParseCreateTodo проверяет тело POST /todos.
func ParseCreateTodo(input any) Result[CreateTodoInput] {
	v, errs := todoShape.check(input)
	if errs != nil {
		return fail[CreateTodoInput](errs)
	}
	due, _ := parseDateTime(v["dueDate"].(string)) // формат уже проверен правилом iso8601
	return Result[CreateTodoInput]{Value: CreateTodoInput{
		Name:        v["name"].(string),
		Description: v["description"].(string),
		DueDate:     due.UTC(),
	}}
}

// ParseUpdateTodo проверяет тело PATCH /todos/{id}.
func ParseUpdateTodo(input any) Result[UpdateTodoInput] {
	v, errs := updateTodoShape.check(input)
	if errs != nil {
		return fail[UpdateTodoInput](errs)
	}

	var out UpdateTodoInput
	if s, ok := v["name"].(string); ok {
		out.Name = &s
	}
	if s, ok := v["description"].(string); ok {
		out.Description = &s
	}
	if s, ok := v["dueDate"].(string); ok {
		due, _ := parseDateTime(s)
		due = due.UTC()
		out.DueDate = &due
	}
	if b, ok := v["isDone"].(bool); ok {
		out.IsDone = &b
	}
	return Result[UpdateTodoInput]{Value: out}
}

// ParseTodoFilter проверяет query-параметры GET /todos.
//
// isDone: не передан | "true" | "false"; upcoming: "true" | "false", по умолчанию false;
// page: целое >= 1, по умолчанию 1; limit: целое 1..100, по умолчанию 10.
// Пустое значение параметра считается отсутствующим.
func ParseTodoFilter(q url.Values) Result[TodoFilter] {
	errs := &Errors{}
	out := TodoFilter{Page: DefaultPage, Limit: DefaultLimit}

	if raw := q.Get("isDone"); raw != "" {
		if b, ok := parseBoolEnum(raw); ok {
			out.IsDone = &b
		} else {
			errs.addField("isDone", enumMessage(raw))
		}
	}

	if raw := q.Get("upcoming"); raw != "" {
		if b, ok := parseBoolEnum(raw); ok {
			out.Upcoming = b
		} else {
			errs.addField("upcoming", enumMessage(raw))
		}
	}

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			errs.addField("page", "Page must be a positive integer")
		} else {
			out.Page = n
		}
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxLimit {
			errs.addField("limit", fmt.Sprintf("Limit must be an integer between 1 and %d", MaxLimit))
		} else {
			out.Limit = n
		}
	}

	if !errs.empty() {
		return fail[TodoFilter](errs)
	}
	// (page-1)*limit уходит в OFFSET и не должен переполняться
	if out.Page-1 > math.MaxInt/out.Limit {
		errs.addField("page", "Page is too large")
		return fail[TodoFilter](errs)
	}
	return Result[TodoFilter]{Value: out}
}

func parseBoolEnum(s string) (bool, bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

func enumMessage(got string) string {
	return fmt.Sprintf("Invalid enum value. Expected 'true' | 'false', received '%s'", got)
}
