package validation

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validRegister() map[string]any {
	return map[string]any{
		"firstName": "Ivan",
		"lastName":  "Petrov",
		"email":     "Ivan@Example.com",
		"password":  "StrongPass123",
	}
}

func TestParseRegister_OK(t *testing.T) {
	in := validRegister()
	in["extra"] = "dropped"

	res := ParseRegister(in)

	require.True(t, res.OK())
	require.Equal(t, RegisterInput{
		FirstName: "Ivan",
		LastName:  "Petrov",
		Email:     "Ivan@Example.com",
		Password:  "StrongPass123",
	}, res.Value)
}

func TestParseRegister_FieldErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  []string
	}{
		{"short first name", "firstName", "I", []string{"First name is too short"}},
		{"long last name", "lastName", strings.Repeat("a", 51), []string{"Last name is too long"}},
		{"bad email", "email", "not-an-email", []string{"Invalid email format"}},
		{"long email", "email", strings.Repeat("a", 250) + "@ex.com", []string{"Email is too long"}},
		{"short password", "password", "short", []string{"Password must be at least 8 characters"}},
		{"long password", "password", strings.Repeat("p", 101), []string{"Password is too long"}},
		{"number instead of string", "firstName", float64(42), []string{"Expected string, received number"}},
		{"null instead of string", "email", nil, []string{"Expected string, received null"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRegister()
			in[tt.key] = tt.value

			res := ParseRegister(in)

			require.False(t, res.OK())
			require.Equal(t, tt.want, res.Errors.FieldErrors[tt.key])
			require.Len(t, res.Errors.FieldErrors, 1)
		})
	}
}

func TestParseRegister_Boundaries(t *testing.T) {
	in := validRegister()
	in["firstName"] = "Al"
	in["lastName"] = strings.Repeat("b", 50)
	in["password"] = strings.Repeat("p", 8)
	require.True(t, ParseRegister(in).OK())

	in["password"] = strings.Repeat("p", 100)
	require.True(t, ParseRegister(in).OK())
}

func TestParseRegister_MissingFields(t *testing.T) {
	res := ParseRegister(map[string]any{})

	require.False(t, res.OK())
	for _, k := range []string{"firstName", "lastName", "email", "password"} {
		require.Equal(t, []string{MsgRequired}, res.Errors.FieldErrors[k], k)
	}
}

func TestParseRegister_EmptyEmailCollectsAllMessages(t *testing.T) {
	in := validRegister()
	in["email"] = ""

	res := ParseRegister(in)
	require.Equal(t, []string{"Invalid email format"}, res.Errors.FieldErrors["email"])
}

func TestParse_NotAnObject(t *testing.T) {
	for _, in := range []any{nil, "str", float64(1), []any{}} {
		res := ParseLogin(in)
		require.False(t, res.OK())
		require.Empty(t, res.Errors.FieldErrors)
		require.Len(t, res.Errors.FormErrors, 1)
		require.True(t, strings.HasPrefix(res.Errors.FormErrors[0], "Expected object, received "))
	}
}

func TestParseLogin(t *testing.T) {
	res := ParseLogin(map[string]any{"email": "a@b.co", "password": "StrongPass123"})
	require.True(t, res.OK())
	require.Equal(t, LoginInput{Email: "a@b.co", Password: "StrongPass123"}, res.Value)

	res = ParseLogin(map[string]any{"email": "a@b.co", "password": "1234567"})
	require.Equal(t, []string{"Password must be at least 8 characters"}, res.Errors.FieldErrors["password"])
}

func TestParseCreateTodo(t *testing.T) {
	res := ParseCreateTodo(map[string]any{
		"name":        "Buy milk",
		"description": "2 liters",
		"dueDate":     "2026-01-20T13:00:00.000+03:00",
	})

	require.True(t, res.OK())
	require.Equal(t, "Buy milk", res.Value.Name)
	require.Equal(t, time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC), res.Value.DueDate)
	require.Equal(t, time.UTC, res.Value.DueDate.Location())
}

func TestParseCreateTodo_Errors(t *testing.T) {
	res := ParseCreateTodo(map[string]any{
		"name":        "",
		"description": strings.Repeat("d", 501),
		"dueDate":     "tomorrow",
	})

	require.False(t, res.OK())
	require.Equal(t, FieldErrors{
		"name":        {"Name is required"},
		"description": {"Description is too long"},
		"dueDate":     {"Invalid date format"},
	}, res.Errors.FieldErrors)
}

func TestParse_RejectsNulCharacters(t *testing.T) {
	res := ParseCreateTodo(map[string]any{
		"name":        "a\x00b",
		"description": "2 liters",
		"dueDate":     "2026-01-20T10:00:00Z",
	})
	require.False(t, res.OK())
	require.Equal(t, FieldErrors{"name": {MsgNulChar}}, res.Errors.FieldErrors)

	upd := ParseUpdateTodo(map[string]any{"description": "x\x00"})
	require.False(t, upd.OK())
	require.Equal(t, []string{MsgNulChar}, upd.Errors.FieldErrors["description"])

	in := validRegister()
	in["firstName"] = "Iv\x00an"
	reg := ParseRegister(in)
	require.False(t, reg.OK())
	require.Equal(t, []string{MsgNulChar}, reg.Errors.FieldErrors["firstName"])
}

func TestParseUpdateTodo(t *testing.T) {
	res := ParseUpdateTodo(map[string]any{})
	require.True(t, res.OK())
	require.True(t, res.Value.Empty())

	res = ParseUpdateTodo(map[string]any{"isDone": true, "name": "New"})
	require.True(t, res.OK())
	require.NotNil(t, res.Value.IsDone)
	require.True(t, *res.Value.IsDone)
	require.Equal(t, "New", *res.Value.Name)
	require.Nil(t, res.Value.Description)
	require.Nil(t, res.Value.DueDate)

	res = ParseUpdateTodo(map[string]any{"dueDate": "2026-02-01T00:00:00Z"})
	require.True(t, res.OK())
	require.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *res.Value.DueDate)
}

func TestParseUpdateTodo_Errors(t *testing.T) {
	res := ParseUpdateTodo(map[string]any{"isDone": "yes", "name": ""})

	require.False(t, res.OK())
	require.Equal(t, []string{"Expected boolean, received string"}, res.Errors.FieldErrors["isDone"])
	require.Equal(t, []string{"Name is required"}, res.Errors.FieldErrors["name"])
}

func TestParseTodoFilter_Defaults(t *testing.T) {
	res := ParseTodoFilter(url.Values{})

	require.True(t, res.OK())
	require.Equal(t, TodoFilter{Page: 1, Limit: 10}, res.Value)
	require.Equal(t, 0, res.Value.Offset())
}

func TestParseTodoFilter_Values(t *testing.T) {
	res := ParseTodoFilter(url.Values{
		"isDone":   {"false"},
		"upcoming": {"true"},
		"page":     {"3"},
		"limit":    {"6"},
	})

	require.True(t, res.OK())
	require.NotNil(t, res.Value.IsDone)
	require.False(t, *res.Value.IsDone)
	require.True(t, res.Value.Upcoming)
	require.Equal(t, 3, res.Value.Page)
	require.Equal(t, 6, res.Value.Limit)
	require.Equal(t, 12, res.Value.Offset())
}

func TestParseTodoFilter_Errors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"isDone", "yes"},
		{"upcoming", "1"},
		{"page", "0"},
		{"page", "abc"},
		{"limit", "0"},
		{"limit", "101"},
		{"limit", "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			res := ParseTodoFilter(url.Values{tt.key: {tt.value}})
			require.False(t, res.OK())
			require.Len(t, res.Errors.FieldErrors[tt.key], 1)
		})
	}
}

func TestParseTodoFilter_LimitBoundaries(t *testing.T) {
	require.True(t, ParseTodoFilter(url.Values{"limit": {"1"}}).OK())
	require.True(t, ParseTodoFilter(url.Values{"limit": {"100"}}).OK())
}

func TestParseTodoFilter_HugePage(t *testing.T) {
	res := ParseTodoFilter(url.Values{"page": {"9223372036854775807"}, "limit": {"10"}})
	require.False(t, res.OK())
	require.Equal(t, []string{"Page is too large"}, res.Errors.FieldErrors["page"])

	// с limit=1 смещение помещается в int
	res = ParseTodoFilter(url.Values{"page": {"9223372036854775807"}, "limit": {"1"}})
	require.True(t, res.OK())
	require.Positive(t, res.Value.Offset())
}

func TestTodoFilter_OffsetNeverNegative(t *testing.T) {
	tests := []struct {
		name string
		f    TodoFilter
		want int
	}{
		{"first page", TodoFilter{Page: 1, Limit: 10}, 0},
		{"third page", TodoFilter{Page: 3, Limit: 6}, 12},
		{"zero page", TodoFilter{Page: 0, Limit: 10}, 0},
		{"overflow clamps", TodoFilter{Page: 1 << 62, Limit: 100}, int(^uint(0) >> 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.f.Offset())
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	v, errs := DecodeJSON(strings.NewReader(`{"a":1}`))
	require.Nil(t, errs)
	require.Equal(t, map[string]any{"a": float64(1)}, v)

	v, errs = DecodeJSON(strings.NewReader(``))
	require.Nil(t, errs)
	require.Equal(t, map[string]any{}, v)

	_, errs = DecodeJSON(strings.NewReader(`{bad json`))
	require.NotNil(t, errs)
	require.Equal(t, []string{MsgInvalidJSON}, errs.FormErrors)
}

func TestErrors_Error(t *testing.T) {
	errs := &Errors{}
	errs.addField("b", "two")
	errs.addField("a", "one")
	errs.addForm("form")

	require.Equal(t, "validation failed: a: one; b: two; form", errs.Error())
}
