// Package memory хранит состояние списка задач между запусками CLI:
// текущий фильтр, страницу, размер страницы и последнюю полученную страницу.
package memory

import (
	"strings"
	"sync"

	serr "github.com/IvanChernomyrdin/go-todolist/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-todolist/internal/shared/models"
)

// Значения по умолчанию для списка.
const (
	DefaultPage  = 1
	DefaultLimit = 6
)

// Filter: фильтр списка задач. Нулевое значение означает "все задачи".
type Filter struct {
	IsDone   *bool `json:"isDone,omitempty"`
	Upcoming bool  `json:"upcoming,omitempty"`
}

// Display: человекочитаемое название фильтра.
func (f Filter) Display() string {
	switch {
	case f.Upcoming:
		return "Upcoming"
	case f.IsDone != nil && *f.IsDone:
		return "Completed"
	case f.IsDone != nil:
		return "Pending"
	default:
		return "All Todos"
	}
}

// TodosStore: потокобезопасное состояние списка задач.
//
// Используется CLI для:
//   - хранения фильтра и пагинации между вызовами list
//   - перехода по страницам (NextPage/PrevPage) с учётом последнего ответа
//   - поиска задачи по префиксу id на последней странице (FindByPrefix)
type TodosStore struct {
	mu     sync.RWMutex
	filter Filter
	page   int
	limit  int
	last   *models.TodoList
}

// NewTodos создаёт состояние с фильтром по умолчанию.
func NewTodos() *TodosStore {
	return &TodosStore{page: DefaultPage, limit: DefaultLimit}
}

// Filter возвращает текущий фильтр.
func (s *TodosStore) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Page возвращает текущую страницу.
func (s *TodosStore) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// Limit возвращает размер страницы.
func (s *TodosStore) Limit() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.limit
}

// SetFilter заменяет фильтр целиком и сбрасывает пагинацию.
func (s *TodosStore) SetFilter(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	s.page = DefaultPage
	s.limit = DefaultLimit
	s.last = nil
}

// ClearFilter возвращает состояние к "все задачи, первая страница".
func (s *TodosStore) ClearFilter() {
	s.SetFilter(Filter{})
}

// SetPage переходит на страницу n. Значения меньше 1 приводятся к 1.
func (s *TodosStore) SetPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = max(n, 1)
}

// SetLimit меняет размер страницы и возвращает на первую страницу.
func (s *TodosStore) SetLimit(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		n = DefaultLimit
	}
	s.limit = n
	s.page = DefaultPage
}

// NextPage переходит на следующую страницу.
//
// Если последний ответ сказал, что следующей страницы нет, возвращает ErrNoNextPage.
func (s *TodosStore) NextPage() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last != nil && !s.last.Pagination.HasNextPage {
		return serr.ErrNoNextPage
	}
	s.page++
	return nil
}

// PrevPage переходит на предыдущую страницу или возвращает ErrNoPreviousPage.
func (s *TodosStore) PrevPage() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page <= 1 {
		return serr.ErrNoPreviousPage
	}
	s.page--
	return nil
}

// SetLast запоминает последнюю полученную страницу.
func (s *TodosStore) SetLast(list models.TodoList) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &list
	if list.Pagination.CurrentPage > 0 {
		s.page = list.Pagination.CurrentPage
	}
}

// Last возвращает последнюю полученную страницу, если она есть.
func (s *TodosStore) Last() (models.TodoList, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return models.TodoList{}, false
	}
	return *s.last, true
}

// FindByPrefix ищет задачу на последней странице по началу id.
//
// Возвращает false, если совпадений нет или их больше одного.
func (s *TodosStore) FindByPrefix(prefix string) (models.Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil || prefix == "" {
		return models.Todo{}, false
	}

	var found []models.Todo
	for _, t := range s.last.Todos {
		if strings.HasPrefix(t.ID, prefix) {
			found = append(found, t)
		}
	}
	if len(found) != 1 {
		return models.Todo{}, false
	}
	return found[0], true
}
