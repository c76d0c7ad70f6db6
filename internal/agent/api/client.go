// Package api содержит HTTP-клиент для взаимодействия с сервером todo-листа.
//
// Клиент инкапсулирует базовый URL сервера и настроенный http.Client,
// предоставляя методы для отправки JSON-запросов с авторизацией через Bearer токен.
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - По умолчанию добавляется заголовок Accept: application/json.
//   - Заголовок Content-Type: application/json добавляется только при наличии тела запроса.
//   - Успешный ответ приходит в конверте {status, message, data}: в resp декодируется data.
//   - Ошибочный ответ (не 2xx) возвращается как *APIError со статусом, сообщением
//     и ошибками полей, если сервер отклонил тело на валидации.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/IvanChernomyrdin/go-todolist/internal/shared/models"
)

// Client реализует HTTP-клиент для общения с сервером.
//
// Поля:
//   - baseURL: базовый адрес сервера без завершающего слэша.
//   - http: настроенный http.Client (таймаут, транспорт, TLS).
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт новый HTTP-клиент для общения с сервером.
//
// Параметры:
//   - baseURL: базовый адрес API (например: "http://127.0.0.1:8080/api/v1").
//   - insecure: не проверять TLS-сертификат сервера. Только для локальной разработки
//     с самоподписанным сертификатом.
func NewClient(baseURL string, insecure bool) *Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // только для dev
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: tr,
		},
	}
}

// APIError: ошибка, которую вернул сервер.
type APIError struct {
	Status      int
	Message     string
	FieldErrors map[string][]string
	FormErrors  []string
}

func (e *APIError) Error() string {
	if len(e.FieldErrors) == 0 && len(e.FormErrors) == 0 {
		return e.Message
	}

	keys := make([]string, 0, len(e.FieldErrors))
	for k := range e.FieldErrors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(e.Message)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n  %s: %s", k, strings.Join(e.FieldErrors[k], ", "))
	}
	for _, f := range e.FormErrors {
		fmt.Fprintf(&b, "\n  %s", f)
	}
	return b.String()
}

// IsUnauthorized сообщает, что сервер отклонил токен (401).
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// errorBody покрывает оба вида ошибочных ответов: конверт ошибки и ответ валидации.
type errorBody struct {
	Message string                   `json:"message"`
	Error   *models.ValidationErrors `json:"error"`
}

// readAPIError читает тело ошибочного ответа.
//
// Если тело не разбирается как JSON, сообщением становится текст тела или res.Status.
func readAPIError(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)
	apiErr := &APIError{Status: res.StatusCode}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.Error != nil:
			apiErr.Message = "validation failed"
			apiErr.FieldErrors = body.Error.FieldErrors
			apiErr.FormErrors = body.Error.FormErrors
		case body.Message != "":
			apiErr.Message = body.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	if apiErr.Message == "" {
		apiErr.Message = res.Status
	}
	return apiErr
}

// envelope: успешный ответ сервера. Data разбирается отложенно.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decodeEnvelope декодирует конверт и кладёт data в resp.
//
// Пустое тело или отсутствие data не считаются ошибкой. Возвращает message.
func decodeEnvelope(r io.Reader, resp any) (string, error) {
	var env envelope
	err := json.NewDecoder(r).Decode(&env)
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if resp == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return env.Message, nil
	}
	if err := json.Unmarshal(env.Data, resp); err != nil {
		return "", fmt.Errorf("decode response data: %w", err)
	}
	return env.Message, nil
}

// Do выполняет запрос к серверу.
//
// Параметры:
//   - method, path: метод и путь относительно baseURL (например: "/todos?page=2").
//   - req: объект для сериализации в JSON. Если req == nil, тело не отправляется.
//   - resp: указатель, в который декодируется data из конверта. nil: не декодировать.
//   - authToken: access токен. Если непустой, добавляется Authorization: Bearer <token>.
//
// Возвращает message из конверта успешного ответа.
func (c *Client) Do(ctx context.Context, method, path string, req, resp any, authToken string) (string, error) {
	var body io.Reader
	if req != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(req); err != nil {
			return "", err
		}
		body = &buf
	}

	r, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return "", err
	}
	r.Header.Set("Accept", "application/json")
	if req != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		r.Header.Set("Authorization", "Bearer "+authToken)
	}

	res, err := c.http.Do(r)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", readAPIError(res)
	}
	if res.StatusCode == http.StatusNoContent {
		return "", nil
	}
	return decodeEnvelope(res.Body, resp)
}

// PostJSON: POST с JSON-телом.
func (c *Client) PostJSON(ctx context.Context, path string, req, resp any, authToken string) (string, error) {
	return c.Do(ctx, http.MethodPost, path, req, resp, authToken)
}

// GetJSON: GET без тела.
func (c *Client) GetJSON(ctx context.Context, path string, resp any, authToken string) (string, error) {
	return c.Do(ctx, http.MethodGet, path, nil, resp, authToken)
}

// PatchJSON: PATCH с JSON-телом.
func (c *Client) PatchJSON(ctx context.Context, path string, req, resp any, authToken string) (string, error) {
	return c.Do(ctx, http.MethodPatch, path, req, resp, authToken)
}

// DeleteJSON: DELETE без тела.
func (c *Client) DeleteJSON(ctx context.Context, path string, resp any, authToken string) (string, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, resp, authToken)
}
