// Package crypto содержит криптографические примитивы сервера:
//   - выпуск и проверку JWT токенов доступа (HS256, срок жизни);
//   - хэширование и проверку паролей (bcrypt, argon2id).
package crypto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken возвращается при любой проблеме с токеном: подпись, срок, формат, claims.
var ErrInvalidToken = errors.New("invalid token")

// JWTConfig описывает параметры генерации и проверки JWT токена.
type JWTConfig struct {
	// Issuer: значение поля iss (кто выдал токен). Пустое значение не проверяется.
	Issuer string
	// Audience: значение поля aud (для кого предназначен токен). Пустое значение не проверяется.
	Audience string
	// SigningKey: секретный ключ для подписи токена (HS256).
	SigningKey string
	// TTL: срок жизни токена.
	TTL time.Duration
}

// NewAccessToken создаёт и подписывает JWT для пользователя.
//
// Токен содержит стандартные RegisteredClaims:
//   - iss (Issuer), aud (Audience) если заданы
//   - sub (userID)
//   - iat (IssuedAt)
//   - exp (ExpiresAt)
//
// Используется алгоритм подписи HS256.
func NewAccessToken(userID string, cfg JWTConfig) (string, error) {
	return newToken(userID, cfg, time.Now())
}

func newToken(userID string, cfg JWTConfig, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
	}
	if cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Audience}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString([]byte(cfg.SigningKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// ParseAccessToken проверяет подпись, срок жизни, iss/aud и возвращает userID из sub.
//
// Любая ошибка оборачивает ErrInvalidToken.
func ParseAccessToken(tokenStr string, cfg JWTConfig) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	return sub, nil
}
