package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-todolist/internal/agent/api"
	"github.com/IvanChernomyrdin/go-todolist/internal/agent/memory"
	"github.com/IvanChernomyrdin/go-todolist/internal/shared/models"
)

// shortIDLen: сколько символов id показывать в списке.
const shortIDLen = 8

// resolveID принимает полный UUID или префикс id с последней показанной страницы.
func (a *App) resolveID(arg string) (string, error) {
	if _, err := uuid.Parse(arg); err == nil {
		return arg, nil
	}
	if t, ok := a.Todos.FindByPrefix(arg); ok {
		return t.ID, nil
	}
	return "", fmt.Errorf("unknown todo id %q: pass the full id or run `todoctl list` first", arg)
}

// NewAddCmd создаёт задачу.
//
// Пример использования:
//
//	todoctl add --name "Buy milk" --description "2 liters" --due 2026-01-20
func NewAddCmd(app *App) *cobra.Command {
	var req models.CreateTodoRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Создать задачу",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			if req.DueDate, err = parseDue(req.DueDate); err != nil {
				return err
			}

			t, err := app.client().CreateTodo(cmd.Context(), token, req)
			if err != nil {
				return app.authFailed(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "todo name")
	cmd.Flags().StringVar(&req.Description, "description", "", "todo description")
	cmd.Flags().StringVar(&req.DueDate, "due", "", "due date (YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC3339)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("description")
	cmd.MarkFlagRequired("due")

	return cmd
}

// NewListCmd показывает страницу задач.
//
// Фильтр и номер страницы запоминаются между вызовами: `list --pending`,
// затем `list --next` листает отфильтрованный список.
func NewListCmd(app *App) *cobra.Command {
	var (
		done, pending, upcoming, all bool
		next, prev                   bool
		page, limit                  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список задач",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			st := app.Todos
			switch {
			case all:
				st.ClearFilter()
			case done:
				st.SetFilter(memory.Filter{IsDone: boolPtr(true)})
			case pending:
				st.SetFilter(memory.Filter{IsDone: boolPtr(false)})
			case upcoming:
				st.SetFilter(memory.Filter{Upcoming: true})
			}
			if cmd.Flags().Changed("limit") {
				st.SetLimit(limit)
			}
			if cmd.Flags().Changed("page") {
				st.SetPage(page)
			}
			if next {
				if err := st.NextPage(); err != nil {
					return err
				}
			}
			if prev {
				if err := st.PrevPage(); err != nil {
					return err
				}
			}

			f := st.Filter()
			list, err := app.client().ListTodos(cmd.Context(), token, api.ListParams{
				IsDone:   f.IsDone,
				Upcoming: f.Upcoming,
				Page:     st.Page(),
				Limit:    st.Limit(),
			})
			if err != nil {
				return app.authFailed(err)
			}

			st.SetLast(list)
			if err := app.saveTodos(); err != nil {
				return err
			}

			printList(cmd.OutOrStdout(), f.Display(), list)
			return nil
		},
	}

	cmd.Flags().BoolVar(&done, "done", false, "only completed todos")
	cmd.Flags().BoolVar(&pending, "pending", false, "only pending todos")
	cmd.Flags().BoolVar(&upcoming, "upcoming", false, "only pending todos that are not yet due")
	cmd.Flags().BoolVar(&all, "all", false, "reset filter and show all todos")
	cmd.Flags().BoolVar(&next, "next", false, "next page")
	cmd.Flags().BoolVar(&prev, "prev", false, "previous page")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", memory.DefaultLimit, "page size")
	cmd.MarkFlagsMutuallyExclusive("done", "pending", "upcoming", "all")
	cmd.MarkFlagsMutuallyExclusive("next", "prev", "page")

	return cmd
}

func printList(w io.Writer, title string, list models.TodoList) {
	p := list.Pagination
	fmt.Fprintf(w, "%s: page %d of %d, %d total\n", title, p.CurrentPage, max(p.TotalPages, 1), p.TotalItems)
	if len(list.Todos) == 0 {
		fmt.Fprintln(w, "no todos")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tDUE\tNAME")
	for _, t := range list.Todos {
		id := t.ID
		if len(id) > shortIDLen {
			id = id[:shortIDLen]
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", id, mark(t.IsDone), displayTime(t.DueDate), t.Name)
	}
	tw.Flush()

	switch {
	case p.HasNextPage && p.HasPreviousPage:
		fmt.Fprintln(w, "more: --prev / --next")
	case p.HasNextPage:
		fmt.Fprintln(w, "more: --next")
	case p.HasPreviousPage:
		fmt.Fprintln(w, "more: --prev")
	}
}

func printTodo(w io.Writer, t models.Todo) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "id:\t%s\n", t.ID)
	fmt.Fprintf(tw, "name:\t%s\n", t.Name)
	fmt.Fprintf(tw, "description:\t%s\n", t.Description)
	fmt.Fprintf(tw, "due:\t%s\n", displayTime(t.DueDate))
	fmt.Fprintf(tw, "done:\t%s\n", mark(t.IsDone))
	if t.CompletedAt != nil {
		fmt.Fprintf(tw, "completed:\t%s\n", displayTime(*t.CompletedAt))
	}
	fmt.Fprintf(tw, "created:\t%s\n", displayTime(t.CreatedAt))
	fmt.Fprintf(tw, "updated:\t%s\n", displayTime(t.UpdatedAt))
	tw.Flush()
}

func mark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func boolPtr(b bool) *bool { return &b }

// NewShowCmd показывает одну задачу.
func NewShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Показать задачу",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}
			id, err := app.resolveID(args[0])
			if err != nil {
				return err
			}

			t, err := app.client().GetTodo(cmd.Context(), token, id)
			if err != nil {
				return app.authFailed(err)
			}
			printTodo(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

// NewEditCmd частично обновляет задачу: отправляются только явно переданные флаги.
//
// Пример использования:
//
//	todoctl edit 3f2a --name "Buy oat milk" --due 2026-01-21T09:00
func NewEditCmd(app *App) *cobra.Command {
	var name, description, due string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Изменить задачу",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req models.UpdateTodoRequest
			flags := cmd.Flags()
			if flags.Changed("name") {
				req.Name = &name
			}
			if flags.Changed("description") {
				req.Description = &description
			}
			if flags.Changed("due") {
				d, err := parseDue(due)
				if err != nil {
					return err
				}
				req.DueDate = &d
			}
			if req == (models.UpdateTodoRequest{}) {
				return errors.New("nothing to change: pass --name, --description or --due")
			}

			t, err := app.update(cmd, args[0], req)
			if err != nil {
				return err
			}
			printTodo(cmd.OutOrStdout(), t)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&due, "due", "", "new due date")

	return cmd
}

// NewDoneCmd создаёт команду done (isDone=true) или undone (isDone=false).
func NewDoneCmd(app *App, isDone bool) *cobra.Command {
	use, short := "done <id>", "Отметить задачу выполненной"
	if !isDone {
		use, short = "undone <id>", "Снять отметку о выполнении"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.update(cmd, args[0], models.UpdateTodoRequest{IsDone: &isDone})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark(t.IsDone), t.Name)
			return nil
		},
	}
}

func (a *App) update(cmd *cobra.Command, arg string, req models.UpdateTodoRequest) (models.Todo, error) {
	token, err := a.token()
	if err != nil {
		return models.Todo{}, err
	}
	id, err := a.resolveID(arg)
	if err != nil {
		return models.Todo{}, err
	}

	t, err := a.client().UpdateTodo(cmd.Context(), token, id, req)
	if err != nil {
		return models.Todo{}, a.authFailed(err)
	}
	return t, nil
}

// NewRemoveCmd удаляет задачу.
func NewRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Удалить задачу",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}
			id, err := app.resolveID(args[0])
			if err != nil {
				return err
			}

			if err := app.client().DeleteTodo(cmd.Context(), token, id); err != nil {
				return app.authFailed(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	}
}
