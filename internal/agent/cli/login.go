package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLoginCmd создаёт CLI-команду для входа пользователя в систему.
//
// Команда получает токен и данные пользователя и сохраняет их
// в локальный файл учётных данных.
//
// Пример использования:
//
//	todoctl login --email ivan@example.com --password StrongPass123
func NewLoginCmd(app *App) *cobra.Command {
	var email, password string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Вход пользователя (токен сохраняется локально)",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(cmd, password, passwordStdin)
			if err != nil {
				return err
			}

			data, err := app.client().Login(cmd.Context(), email, pw)
			if err != nil {
				return err
			}

			app.Creds.Token = data.Token
			user := data.User
			app.Creds.User = &user
			if err := SaveCredentials(app.CredsPath, app.Creds); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted if omitted)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("email")

	return cmd
}

// NewLogoutCmd забывает сохранённый токен. Сервер не вызывается: токен живёт до истечения срока.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Выход (удалить сохранённый токен)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Creds.Clear()
			if err := SaveCredentials(app.CredsPath, app.Creds); err != nil {
				return err
			}
			app.Todos.ClearFilter()
			if err := app.saveTodos(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

// NewWhoamiCmd печатает пользователя, под которым выполнен вход.
func NewWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Показать текущего пользователя",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.token(); err != nil {
				return err
			}
			u := app.Creds.User
			if u == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s <%s>\nid: %s\n", u.FirstName, u.LastName, u.Email, u.ID)
			return nil
		},
	}
}
