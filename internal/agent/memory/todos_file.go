package memory

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/IvanChernomyrdin/go-todolist/internal/shared/models"
)

// TodosDump: формат файла состояния списка.
//
// Файл содержит объект вида:
//
//	{ "filter": {...}, "page": 1, "limit": 6, "last": {...} }
type TodosDump struct {
	Filter Filter           `json:"filter"`
	Page   int              `json:"page"`
	Limit  int              `json:"limit"`
	Last   *models.TodoList `json:"last,omitempty"`
}

// DefaultStatePath возвращает путь по умолчанию для файла состояния.
//
// Путь формируется как:
//
//	$HOME/.todolist/state.json
func DefaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".todolist", "state.json"), nil
}

// SaveToFile сохраняет состояние в файл path (директория 0700, файл 0600).
func SaveToFile(path string, store *TodosStore) error {
	store.mu.RLock()
	out := TodosDump{
		Filter: store.filter,
		Page:   store.page,
		Limit:  store.limit,
		Last:   store.last,
	}
	b, err := json.MarshalIndent(out, "", "  ")
	store.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// LoadFromFile загружает состояние из файла.
//
// Поведение:
//   - если файл не существует, store не меняется и возвращается nil (первый запуск);
//   - если JSON некорректный, возвращает ошибку Unmarshal;
//   - некорректные page/limit заменяются значениями по умолчанию.
func LoadFromFile(path string, store *TodosStore) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var dump TodosDump
	if err := json.Unmarshal(b, &dump); err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	store.filter = dump.Filter
	store.page = dump.Page
	if store.page < 1 {
		store.page = DefaultPage
	}
	store.limit = dump.Limit
	if store.limit < 1 {
		store.limit = DefaultLimit
	}
	store.last = dump.Last
	return nil
}
