package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/models"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-todolist/internal/shared/errors"
	dto "github.com/IvanChernomyrdin/go-todolist/internal/shared/models"
)

func TestRegister_OK(t *testing.T) {
	env := newTestEnv(t)

	env.users.EXPECT().GetByEmail(gomock.Any(), "ann@example.com").Return(models.User{}, serr.ErrNotFound)
	env.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
		u.ID = env.user.ID
		return u, nil
	})

	rec := env.do(t, http.MethodPost, "/auth/register", map[string]any{
		"firstName": "Ann", "lastName": "Lee", "email": "Ann@Example.com", "password": "secret123",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"success","message":"User created successfully"}`, rec.Body.String())
}

func TestRegister_EmailTaken(t *testing.T) {
	env := newTestEnv(t)

	env.users.EXPECT().GetByEmail(gomock.Any(), "ann@example.com").Return(env.user, nil)

	rec := env.do(t, http.MethodPost, "/auth/register", map[string]any{
		"firstName": "Ann", "lastName": "Lee", "email": "ann@example.com", "password": "secret123",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"status":"error","message":"Email already registered"}`, rec.Body.String())
}

func TestRegister_ValidationFails_NoServiceCall(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/register", map[string]any{
		"firstName": "Ann", "email": "not-an-email", "password": "123",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	v := decodeValidation(t, rec)
	require.Contains(t, v.Error.FieldErrors, "lastName")
	require.Contains(t, v.Error.FieldErrors, "email")
	require.Contains(t, v.Error.FieldErrors, "password")
	require.NotContains(t, v.Error.FieldErrors, "firstName")
}

func TestRegister_BadJSON(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/register", `{"email":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	v := decodeValidation(t, rec)
	require.Equal(t, []string{"Invalid JSON body"}, v.Error.FormErrors)
}

func TestRegister_UnexpectedError(t *testing.T) {
	env := newTestEnv(t)

	env.users.EXPECT().GetByEmail(gomock.Any(), "ann@example.com").Return(models.User{}, errors.New("db is down"))

	rec := env.do(t, http.MethodPost, "/auth/register", map[string]any{
		"firstName": "Ann", "lastName": "Lee", "email": "ann@example.com", "password": "secret123",
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"status":"error","message":"Internal server error"}`, rec.Body.String())
}

func TestLogin_OK(t *testing.T) {
	env := newTestEnv(t)

	hash, err := crypto.BcryptHasher{Cost: 4}.Hash("secret123")
	require.NoError(t, err)
	stored := env.user
	stored.PasswordHash = hash

	env.users.EXPECT().GetByEmail(gomock.Any(), "ann@example.com").Return(stored, nil)

	rec := env.do(t, http.MethodPost, "/auth/login", map[string]any{
		"email": "ann@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	require.Equal(t, "Login successful", body.Message)

	var data dto.LoginData
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.Equal(t, env.user.ID.String(), data.User.ID)
	require.Equal(t, "Ann", data.User.FirstName)
	require.NotContains(t, string(body.Data), "password")

	sub, err := crypto.ParseAccessToken(data.Token, service.JWTConfigFrom(env.cfg))
	require.NoError(t, err)
	require.Equal(t, env.user.ID.String(), sub)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	env.users.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(models.User{}, serr.ErrNotFound)

	rec := env.do(t, http.MethodPost, "/auth/login", map[string]any{
		"email": "ghost@example.com", "password": "secret123",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"status":"error","message":"Invalid email or password"}`, rec.Body.String())
}
