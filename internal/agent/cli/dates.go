package cli

import (
	"fmt"
	"time"

	"github.com/IvanChernomyrdin/go-todolist/internal/shared/models"
)

// форматы --due; без зоны время считается локальным
var dueLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDue приводит введённую дату к формату API (UTC, миллисекунды).
func parseDue(s string) (string, error) {
	for _, layout := range dueLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return models.FormatTime(t), nil
		}
	}
	return "", fmt.Errorf("invalid --due %q: use YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC3339", s)
}

// displayTime печатает дату API в локальной зоне пользователя.
func displayTime(s string) string {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	return t.Local().Format("2006-01-02 15:04")
}
