// Package validation проверяет входящие тела запросов и query-параметры
// по объявленным схемам.
//
// Проверка: чистая функция (схема, нетипизированный ввод) -> Result[T]:
// либо значение ровно объявленной формы, либо ошибки по полям.
// На кривом вводе пакет не паникует.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Сообщения, общие для всех схем.
const (
	MsgRequired    = "Required"
	MsgInvalidJSON = "Invalid JSON body"
	MsgNulChar     = "Must not contain NUL characters"
)

// FieldErrors путь поля -> упорядоченный список сообщений.
type FieldErrors map[string][]string

// Errors: результат неуспешной проверки.
type Errors struct {
	FieldErrors FieldErrors
	FormErrors  []string
}

func (e *Errors) addField(path, msg string) {
	if e.FieldErrors == nil {
		e.FieldErrors = FieldErrors{}
	}
	e.FieldErrors[path] = append(e.FieldErrors[path], msg)
}

func (e *Errors) addForm(msg string) {
	e.FormErrors = append(e.FormErrors, msg)
}

func (e *Errors) empty() bool {
	return e == nil || (len(e.FieldErrors) == 0 && len(e.FormErrors) == 0)
}

// Error нужен, чтобы Errors можно было вернуть как error.
func (e *Errors) Error() string {
	if e.empty() {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.FieldErrors)+len(e.FormErrors))
	keys := make([]string, 0, len(e.FieldErrors))
	for k := range e.FieldErrors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.FieldErrors[k], ", "))
	}
	parts = append(parts, e.FormErrors...)
	return "validation failed: " + strings.Join(parts, "; ")
}

// Result: либо Value, либо Errors (не nil).
type Result[T any] struct {
	Value  T
	Errors *Errors
}

// OK сообщает, что проверка прошла.
func (r Result[T]) OK() bool {
	return r.Errors.empty()
}

func fail[T any](errs *Errors) Result[T] {
	return Result[T]{Errors: errs}
}

// DecodeJSON читает тело запроса в нетипизированное значение.
//
// Пустое тело трактуется как пустой объект. Битый JSON даёт
// ошибку формы MsgInvalidJSON.
func DecodeJSON(r io.Reader) (any, *Errors) {
	var v any
	err := json.NewDecoder(r).Decode(&v)
	if errors.Is(err, io.EOF) {
		return map[string]any{}, nil
	}
	if err != nil {
		errs := &Errors{}
		errs.addForm(MsgInvalidJSON)
		return nil, errs
	}
	return v, nil
}

// валидатор потокобезопасен, кэширует разобранные теги
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// ISO-8601 дата-время: 2026-01-20T10:00:00Z, с долями секунды и смещением
	_ = v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, err := parseDateTime(fl.Field().String())
		return err == nil
	})
	// Postgres не хранит 0x00 в text/varchar
	_ = v.RegisterValidation("nonul", func(fl validator.FieldLevel) bool {
		return !strings.ContainsRune(fl.Field().String(), 0)
	})
	return v
}

func parseDateTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

type kind int

const (
	kindString kind = iota
	kindBool
)

func (k kind) String() string {
	if k == kindBool {
		return "boolean"
	}
	return "string"
}

// rule: тег go-playground/validator и сообщение, если он не прошёл.
type rule struct {
	tag string
	msg string
}

type field struct {
	name     string
	kind     kind
	optional bool
	rules    []rule
}

// shape: объявленная форма объекта. Неизвестные ключи отбрасываются.
type shape []field

// partial возвращает копию формы, где все поля опциональны.
func (s shape) partial() shape {
	out := make(shape, len(s))
	for i, f := range s {
		f.optional = true
		out[i] = f
	}
	return out
}

// check проверяет ввод и возвращает только объявленные и присутствующие поля.
func (s shape) check(input any) (map[string]any, *Errors) {
	errs := &Errors{}

	obj, ok := input.(map[string]any)
	if !ok {
		errs.addForm(fmt.Sprintf("Expected object, received %s", typeName(input)))
		return nil, errs
	}

	out := make(map[string]any, len(s))
	for _, f := range s {
		v, present := obj[f.name]
		if !present {
			if !f.optional {
				errs.addField(f.name, MsgRequired)
			}
			continue
		}

		switch f.kind {
		case kindString:
			str, ok := v.(string)
			if !ok {
				errs.addField(f.name, expected(f.kind, v))
				continue
			}
			if err := validate.Var(str, "nonul"); err != nil {
				errs.addField(f.name, MsgNulChar)
				continue
			}
			failed := false
			for _, r := range f.rules {
				if err := validate.Var(str, r.tag); err != nil {
					errs.addField(f.name, r.msg)
					failed = true
				}
			}
			if !failed {
				out[f.name] = str
			}
		case kindBool:
			b, ok := v.(bool)
			if !ok {
				errs.addField(f.name, expected(f.kind, v))
				continue
			}
			out[f.name] = b
		}
	}

	if !errs.empty() {
		return nil, errs
	}
	return out, nil
}

func expected(k kind, got any) string {
	return fmt.Sprintf("Expected %s, received %s", k, typeName(got))
}

// typeName называет тип JSON-значения так, как его видит клиент.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number, int:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
