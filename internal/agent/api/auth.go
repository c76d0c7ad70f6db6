// В этом файле описаны методы клиента для работы
// с эндпоинтами аутентификации и health.
package api

import (
	"context"

	"github.com/IvanChernomyrdin/go-todolist/internal/shared/models"
)

// Register регистрирует пользователя. Возвращает сообщение сервера.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	return c.PostJSON(ctx, "/auth/register", req, nil, "")
}

// Login выполняет вход и возвращает пользователя с токеном.
func (c *Client) Login(ctx context.Context, email, password string) (models.LoginData, error) {
	var data models.LoginData
	_, err := c.PostJSON(ctx, "/auth/login", models.LoginRequest{Email: email, Password: password}, &data, "")
	return data, err
}

// Health запрашивает метаданные сервера.
func (c *Client) Health(ctx context.Context) (models.Health, error) {
	var data models.Health
	_, err := c.GetJSON(ctx, "/health", &data, "")
	return data, err
}
