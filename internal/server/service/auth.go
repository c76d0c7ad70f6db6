package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/config"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/models"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/validation"
	serr "github.com/IvanChernomyrdin/go-todolist/internal/shared/errors"
)

// AuthService реализует бизнес-логику аутентификации.
//
// Ответственность:
//   - регистрация пользователей (проверка уникальности email + хэш пароля)
//   - аутентификация (логин) и выпуск токена
//   - проверка токена и загрузка пользователя для middleware
type AuthService struct {
	users  UsersRepo
	hasher crypto.PasswordHasher
	jwt    crypto.JWTConfig
}

// LoginResult: пользователь и выданный ему токен.
type LoginResult struct {
	User  models.User
	Token string
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, hasher crypto.PasswordHasher, cfg *config.Config) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		jwt:    JWTConfigFrom(cfg),
	}
}

// JWTConfigFrom собирает параметры токена из конфига сервера.
func JWTConfigFrom(cfg *config.Config) crypto.JWTConfig {
	return crypto.JWTConfig{
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		SigningKey: cfg.Auth.JWT.SigningKey,
		TTL:        cfg.Auth.TokenTTL,
	}
}

// Register регистрирует нового пользователя.
//
// Email приводится к нижнему регистру. Пароль в открытом виде не сохраняется.
//
// Ошибки:
//   - ErrEmailTaken если email уже зарегистрирован (в том числе при гонке на вставке)
func (s *AuthService) Register(ctx context.Context, in validation.RegisterInput) (models.User, error) {
	email := normalizeEmail(in.Email)

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return models.User{}, serr.ErrEmailTaken
	case !errors.Is(err, serr.ErrNotFound):
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: hash password: %v", serr.ErrInternal, err)
	}

	u, err := s.users.Create(ctx, models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		// проверка выше и вставка не атомарны, уникальный индекс ловит гонку
		if errors.Is(err, serr.ErrAlreadyExists) {
			return models.User{}, serr.ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login аутентифицирует пользователя и выдаёт токен.
//
// Поведение:
//   - не раскрывает факт существования email
//
// Ошибки:
//   - ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, in validation.LoginInput) (LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			return LoginResult{}, serr.ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.hasher.Verify(in.Password, u.PasswordHash)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: verify password: %v", serr.ErrInternal, err)
	}
	if !ok {
		return LoginResult{}, serr.ErrInvalidCredentials
	}

	token, err := crypto.NewAccessToken(u.ID.String(), s.jwt)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", serr.ErrInternal, err)
	}

	return LoginResult{User: u, Token: token}, nil
}

// Authenticate проверяет токен и возвращает его владельца.
//
// Ошибки:
//   - ErrInvalidToken: подпись, срок жизни или формат
//   - ErrUserNotFound: токен валиден, но пользователя больше нет
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.User, error) {
	sub, err := crypto.ParseAccessToken(token, s.jwt)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", serr.ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: subject is not uuid", serr.ErrInvalidToken)
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return models.User{}, fmt.Errorf("%w: %s", serr.ErrUserNotFound, userID)
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
