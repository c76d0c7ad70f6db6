package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/validation"
)

func TestSuccess_OmitsNilData(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusOK, "User created successfully", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, JsonContentType, rec.Header().Get(ContentType))
	require.JSONEq(t, `{"status":"success","message":"User created successfully"}`, rec.Body.String())
}

func TestSuccess_WithData(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, "ok", map[string]int{"n": 1})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"status":"success","message":"ok","data":{"n":1}}`, rec.Body.String())
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, "Todo not found")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"status":"error","message":"Todo not found"}`, rec.Body.String())
}

func TestValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	Validation(rec, &validation.Errors{
		FieldErrors: validation.FieldErrors{"email": {"Invalid email"}},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, []any{"Invalid email"}, body["error"]["fieldErrors"].(map[string]any)["email"])
	require.Equal(t, []any{}, body["error"]["formErrors"])
}
