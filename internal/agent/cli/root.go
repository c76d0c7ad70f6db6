// Package cli реализует командный интерфейс (CLI) клиента todo-листа.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку локальных учётных данных и состояния списка;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета: функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-todolist/internal/agent/api"
	"github.com/IvanChernomyrdin/go-todolist/internal/agent/config"
	"github.com/IvanChernomyrdin/go-todolist/internal/agent/memory"
	serr "github.com/IvanChernomyrdin/go-todolist/internal/shared/errors"
)

// DefaultServerURL: адрес API по умолчанию, можно переопределить TODOLIST_SERVER.
const DefaultServerURL = "http://127.0.0.1:8080/api/v1"

// App содержит состояние CLI-приложения, разделяемое между командами.
//
// В структуре хранятся параметры подключения к серверу, учётные данные
// и состояние списка задач. Экземпляр App создаётся при построении root-команды
// и передаётся в подкоманды.
type App struct {
	// ServerURL: базовый URL API (например, "http://127.0.0.1:8080/api/v1").
	ServerURL string
	// Insecure: не проверять TLS-сертификат сервера.
	Insecure bool

	// CredsPath: путь к файлу с сохранёнными учётными данными.
	CredsPath string
	// Creds: загруженные учётные данные.
	Creds *config.Credentials

	// StatePath: путь к файлу состояния списка.
	StatePath string
	// Todos: фильтр, пагинация и последняя страница.
	Todos *memory.TodosStore
}

// client создаёт API-клиент под текущие настройки.
func (a *App) client() *api.Client {
	return NewAPIClient(a.ServerURL, a.Insecure)
}

// token возвращает сохранённый токен или ErrNotLoggedIn.
func (a *App) token() (string, error) {
	if !a.Creds.LoggedIn() {
		return "", fmt.Errorf("%w: run `todoctl login` first", serr.ErrNotLoggedIn)
	}
	return a.Creds.Token, nil
}

// authFailed обрабатывает ошибку запроса с токеном.
// На 401 сохранённые учётные данные стираются: токен протух или пользователя больше нет.
func (a *App) authFailed(err error) error {
	if !api.IsUnauthorized(err) {
		return err
	}
	a.Creds.Clear()
	if saveErr := SaveCredentials(a.CredsPath, a.Creds); saveErr != nil {
		return fmt.Errorf("%w (also failed to clear credentials: %v)", err, saveErr)
	}
	return fmt.Errorf("%w: session expired, please log in again", err)
}

// saveTodos сохраняет состояние списка.
func (a *App) saveTodos() error {
	return SaveTodosState(a.StatePath, a.Todos)
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
// В PersistentPreRunE определяются пути к файлам и загружается сохранённое состояние.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	serverURL := os.Getenv("TODOLIST_SERVER")
	if serverURL == "" {
		serverURL = DefaultServerURL
	}

	cmd := &cobra.Command{
		Use:   "todoctl",
		Short: "todoctl: консольный клиент todo-листа",
		Long: `todoctl: консольный клиент todo-листа.

Примеры:

Регистрация и вход:
  todoctl register --first-name Ivan --last-name Petrov --email ivan@example.com
  todoctl login --email ivan@example.com

Задачи:
  todoctl add --name "Buy milk" --description "2 liters" --due 2026-01-20
  todoctl list --pending
  todoctl list --next
  todoctl done 3f2a
  todoctl rm 3f2a
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.CredsPath == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				app.CredsPath = p
			}
			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return err
			}
			app.Creds = creds

			if app.StatePath == "" {
				p, err := memory.DefaultStatePath()
				if err != nil {
					return err
				}
				app.StatePath = p
			}
			app.Todos = memory.NewTodos()
			return memory.LoadFromFile(app.StatePath, app.Todos)
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", serverURL, "server API base URL")
	cmd.PersistentFlags().BoolVar(&app.Insecure, "insecure", false, "skip TLS certificate verification (dev only)")
	cmd.PersistentFlags().StringVar(&app.CredsPath, "credentials", "", "credentials file (default ~/.todolist/credentials.json)")
	cmd.PersistentFlags().StringVar(&app.StatePath, "state", "", "list state file (default ~/.todolist/state.json)")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewWhoamiCmd(app))
	cmd.AddCommand(NewAddCmd(app))
	cmd.AddCommand(NewListCmd(app))
	cmd.AddCommand(NewShowCmd(app))
	cmd.AddCommand(NewEditCmd(app))
	cmd.AddCommand(NewDoneCmd(app, true))
	cmd.AddCommand(NewDoneCmd(app, false))
	cmd.AddCommand(NewRemoveCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
