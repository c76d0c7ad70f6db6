package cli_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-todolist/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-todolist/internal/agent/config"
	"github.com/IvanChernomyrdin/go-todolist/internal/agent/memory"
	serr "github.com/IvanChernomyrdin/go-todolist/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-todolist/internal/shared/models"
)

const (
	testToken  = "token-1"
	todoID     = "3f2a9c1e-0000-4000-8000-000000000001"
	otherID    = "7b11d0aa-0000-4000-8000-000000000002"
	testDueISO = "2026-01-20T10:00:00.000Z"
)

func writeOK(w http.ResponseWriter, status int, msg string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.SuccessResponse{Status: models.StatusSuccess, Message: msg, Data: data})
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{Status: models.StatusError, Message: msg})
}

func requireBearer(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
}

func sampleTodo(id string, done bool) models.Todo {
	return models.Todo{
		ID:          id,
		Name:        "Buy milk",
		Description: "2 liters",
		DueDate:     testDueISO,
		IsDone:      done,
		UserID:      "u-1",
		CreatedAt:   testDueISO,
		UpdatedAt:   testDueISO,
	}
}

func newApp(t *testing.T, url string, loggedIn bool) *cli.App {
	t.Helper()
	dir := t.TempDir()
	creds := &config.Credentials{}
	if loggedIn {
		creds.Token = testToken
		creds.User = &models.User{ID: "u-1", Email: "ivan@example.com", FirstName: "Ivan", LastName: "Petrov"}
	}
	return &cli.App{
		ServerURL: url,
		CredsPath: filepath.Join(dir, "credentials.json"),
		Creds:     creds,
		StatePath: filepath.Join(dir, "state.json"),
		Todos:     memory.NewTodos(),
	}
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLogin_SavesCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ivan@example.com", req.Email)
		assert.Equal(t, "StrongPass123", req.Password)

		writeOK(w, http.StatusOK, "Login successful", models.LoginData{
			Token: testToken,
			User:  models.User{ID: "u-1", Email: req.Email, FirstName: "Ivan", LastName: "Petrov"},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	app := newApp(t, srv.URL, false)
	out, err := run(t, cli.NewLoginCmd(app), "--email", "ivan@example.com", "--password", "StrongPass123")
	require.NoError(t, err)
	assert.Contains(t, out, "logged in as Ivan Petrov <ivan@example.com>")

	loaded, err := config.Load(app.CredsPath)
	require.NoError(t, err)
	assert.Equal(t, testToken, loaded.Token)
	require.NotNil(t, loaded.User)
	assert.Equal(t, "u-1", loaded.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusUnauthorized, "Invalid email or password")
	}))
	defer srv.Close()

	app := newApp(t, srv.URL, false)
	_, err := run(t, cli.NewLoginCmd(app), "--email", "ivan@example.com", "--password", "nope-nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email or password")
	assert.False(t, app.Creds.LoggedIn())
}

func TestLogin_PromptsForPassword(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "prompted-pass", req.Password)
		writeOK(w, http.StatusOK, "Login successful", models.LoginData{Token: testToken})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	orig := cli.ReadPassword
	defer func() { cli.ReadPassword = orig }()
	cli.ReadPassword = func(*cobra.Command, bool) (string, error) { return "prompted-pass", nil }

	app := newApp(t, srv.URL, false)
	_, err := run(t, cli.NewLoginCmd(app), "--email", "ivan@example.com")
	require.NoError(t, err)
	assert.Equal(t, testToken, app.Creds.Token)
}

func TestRegister_ShowsValidationErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ValidationErrorResponse{Error: models.ValidationErrors{
			FieldErrors: map[string][]string{"email": {"Invalid email"}},
			FormErrors:  []string{},
		}})
	}))
	defer srv.Close()

	app := newApp(t, srv.URL, false)
	_, err := run(t, cli.NewRegisterCmd(app),
		"--first-name", "Ivan", "--last-name", "Petrov", "--email", "bad", "--password", "StrongPass123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email: Invalid email")
}

func TestRegister_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Ivan", req.FirstName)
		assert.Equal(t, "Petrov", req.LastName)
		writeOK(w, http.StatusOK, "User created successfully", nil)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	app := newApp(t, srv.URL, false)
	out, err := run(t, cli.NewRegisterCmd(app),
		"--first-name", "Ivan", "--last-name", "Petrov", "--email", "ivan@example.com", "--password", "StrongPass123")
	require.NoError(t, err)
	assert.Contains(t, out, "User created successfully")
}

func TestLogoutAndWhoami(t *testing.T) {
	app := newApp(t, "http://unused", true)

	out, err := run(t, cli.NewWhoamiCmd(app))
	require.NoError(t, err)
	assert.Contains(t, out, "Ivan Petrov <ivan@example.com>")

	out, err = run(t, cli.NewLogoutCmd(app))
	require.NoError(t, err)
	assert.Contains(t, out, "logged out")

	loaded, err := config.Load(app.CredsPath)
	require.NoError(t, err)
	assert.False(t, loaded.LoggedIn())

	_, err = run(t, cli.NewWhoamiCmd(app))
	require.ErrorIs(t, err, serr.ErrNotLoggedIn)
}

func TestAdd_RequiresLogin(t *testing.T) {
	app := newApp(t, "http://unused", false)
	_, err := run(t, cli.NewAddCmd(app), "--name", "a", "--description", "b", "--due", "2026-01-20")
	require.ErrorIs(t, err, serr.ErrNotLoggedIn)
}

func TestAdd_SendsUTCDueDate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /todos", func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r)
		var req models.CreateTodoRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Buy milk", req.Name)
		assert.Equal(t, testDueISO, req.DueDate)
		writeOK(w, http.StatusCreated, "Todo created successfully", sampleTodo(todoID, false))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	app := newApp(t, srv.URL, true)
	out, err := run(t, cli.NewAddCmd(app),
		"--name", "Buy milk", "--description", "2 liters", "--due", "2026-01-20T12:00:00+02:00")
	require.NoError(t, err)
	assert.Contains(t, out, "created "+todoID)
}

func TestAdd_BadDue(t *testing.T) {
	app := newApp(t, "http://unused", true)
	_, err := run(t, cli.NewAddCmd(app), "--name", "a", "--description", "b", "--due", "tomorrow")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --due")
}

func listServer(t *testing.T, wantQuery string, list models.TodoList) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /todos", func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r)
		assert.Equal(t, wantQuery, r.URL.RawQuery)
		writeOK(w, http.StatusOK, "Todos retrieved successfully", list)
	})
	return httptest.NewServer(mux)
}

func TestList_PendingFilterPersists(t *testing.T) {
	list := models.TodoList{
		Todos: []models.Todo{sampleTodo(todoID, false), sampleTodo(otherID, false)},
		Pagination: models.Pagination{
			CurrentPage: 1, TotalPages: 2, TotalItems: 8, ItemsPerPage: 6, HasNextPage: true,
		},
	}
	srv := listServer(t, "isDone=false&limit=6&page=1", list)
	defer srv.Close()

	app := newApp(t, srv.URL, true)
	out, err := run(t, cli.NewListCmd(app), "--pending")
	require.NoError(t, err)
	assert.Contains(t, out, "Pending: page 1 of 2, 8 total")
	assert.Contains(t, out, todoID[:8])
	assert.Contains(t, out, "more: --next")

	restored := memory.NewTodos()
	require.NoError(t, memory.LoadFromFile(app.StatePath, restored))
	f := restored.Filter()
	require.NotNil(t, f.IsDone)
	assert.False(t, *f.IsDone)
	last, ok := restored.Last()
	require.True(t, ok)
	assert.Len(t, last.Todos, 2)
}

func TestList_NextUsesStoredFilter(t *testing.T) {
	srv := listServer(t, "limit=6&page=2&upcoming=true", models.TodoList{
		Todos:      []models.Todo{},
		Pagination: models.Pagination{CurrentPage: 2, TotalPages: 2, TotalItems: 7, ItemsPerPage: 6, HasPreviousPage: true},
	})
	defer srv.Close()

	app := newApp(t, srv.URL, true)
	app.Todos.SetFilter(memory.Filter{Upcoming: true})

	out, err := run(t, cli.NewListCmd(app), "--next")
	require.NoError(t, err)
	assert.Contains(t, out, "Upcoming: page 2 of 2")
	assert.Contains(t, out, "no todos")
	assert.Equal(t, 2, app.Todos.Page())
}

func TestList_NoNextPage(t *testing.T) {
	app := newApp(t, "http://unused", true)
	app.Todos.SetLast(models.TodoList{Pagination: models.Pagination{CurrentPage: 1, TotalPages: 1}})

	_, err := run(t, cli.NewListCmd(app), "--next")
	require.ErrorIs(t, err, serr.ErrNoNextPage)
}

func TestList_UnauthorizedClearsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusUnauthorized, "Invalid or expired token")
	}))
	defer srv.Close()

	app := newApp(t, srv.URL, true)
	require.NoError(t, config.Save(app.CredsPath, app.Creds))

	_, err := run(t, cli.NewListCmd(app))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log in again")

	loaded, err := config.Load(app.CredsPath)
	require.NoError(t, err)
	assert.False(t, loaded.LoggedIn())
}

func TestDone_ResolvesPrefixFromLastPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /todos/{id}", func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r)
		assert.Equal(t, todoID, r.PathValue("id"))
		var req models.UpdateTodoRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.IsDone)
		assert.True(t, *req.IsDone)
		assert.Nil(t, req.Name)
		writeOK(w, http.StatusOK, "Todo updated successfully", sampleTodo(todoID, true))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	app := newApp(t, srv.URL, true)
	app.Todos.SetLast(models.TodoList{Todos: []models.Todo{sampleTodo(todoID, false), sampleTodo(otherID, false)}})

	out, err := run(t, cli.NewDoneCmd(app, true), "3f2a")
	require.NoError(t, err)
	assert.Contains(t, out, "[x] Buy milk")
}

func TestDone_UnknownPrefix(t *testing.T) {
	app := newApp(t, "http://unused", true)
	_, err := run(t, cli.NewDoneCmd(app, false), "zzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown todo id")
}

func TestEdit_SendsOnlyChangedFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /todos/{id}", func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, map[string]any{"name": "Buy oat milk"}, raw)
		writeOK(w, http.StatusOK, "Todo updated successfully", sampleTodo(todoID, false))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	app := newApp(t, srv.URL, true)
	out, err := run(t, cli.NewEditCmd(app), todoID, "--name", "Buy oat milk")
	require.NoError(t, err)
	assert.Contains(t, out, todoID)
}

func TestEdit_NothingToChange(t *testing.T) {
	app := newApp(t, "http://unused", true)
	_, err := run(t, cli.NewEditCmd(app), todoID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")
}

func TestShow_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusNotFound, "Todo not found")
	}))
	defer srv.Close()

	app := newApp(t, srv.URL, true)
	_, err := run(t, cli.NewShowCmd(app), todoID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Todo not found")
	assert.True(t, app.Creds.LoggedIn())
}

func TestRemove(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /todos/{id}", func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, todoID, r.PathValue("id"))
		writeOK(w, http.StatusOK, "Todo deleted successfully", nil)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	app := newApp(t, srv.URL, true)
	out, err := run(t, cli.NewRemoveCmd(app), todoID)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Contains(t, out, "deleted "+todoID)
}

func TestVersion(t *testing.T) {
	out, err := run(t, cli.NewVersionCmd("v1.2.3", "2026-01-01"))
	require.NoError(t, err)
	assert.Equal(t, "version=v1.2.3\nbuild_date=2026-01-01\n", out)
}

func TestRootCmd_LoadsCredentialsAndState(t *testing.T) {
	dir := t.TempDir()
	credsPath := filepath.Join(dir, "credentials.json")
	statePath := filepath.Join(dir, "state.json")
	require.NoError(t, config.Save(credsPath, &config.Credentials{
		Token: testToken,
		User:  &models.User{ID: "u-1", Email: "ivan@example.com", FirstName: "Ivan", LastName: "Petrov"},
	}))

	root := cli.NewRootCmd("dev", "today")
	out, err := run(t, root, "whoami", "--credentials", credsPath, "--state", statePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Ivan Petrov <ivan@example.com>")
	assert.Contains(t, out, "id: u-1")
}

func TestRootCmd_VersionSkipsLocalFiles(t *testing.T) {
	root := cli.NewRootCmd("v0.1.0", "2026-01-01")
	out, err := run(t, root, "version", "--credentials", "/nonexistent/dir/creds.json")
	require.NoError(t, err)
	assert.Contains(t, out, "version=v0.1.0")
}
