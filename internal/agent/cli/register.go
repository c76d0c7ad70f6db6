package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-todolist/internal/shared/models"
)

// NewRegisterCmd создаёт CLI-команду для регистрации нового пользователя.
//
// Пароль можно передать флагом --password, через --password-stdin
// или ввести интерактивно.
//
// Пример использования:
//
//	todoctl register --first-name Ivan --last-name Petrov --email ivan@example.com
func NewRegisterCmd(app *App) *cobra.Command {
	var req models.RegisterRequest
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(cmd, req.Password, passwordStdin)
			if err != nil {
				return err
			}
			req.Password = pw

			msg, err := app.client().Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			fmt.Fprintln(cmd.OutOrStdout(), "now run: todoctl login --email", req.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email for registration")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (prompted if omitted)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")
	cmd.MarkFlagRequired("email")

	return cmd
}
