// HTTP-хендлеры регистрации и логина
package api

import (
	"net/http"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/response"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/validation"
	"github.com/IvanChernomyrdin/go-todolist/internal/shared/models"
)

// Register обрабатывает регистрацию пользователя.
//
// @Summary      Register user
// @Description  Creates a new account. Email is case-insensitive and must be unique.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.RegisterRequest true "Register request"
// @Success      200 {object} models.SuccessResponse "User created successfully"
// @Failure      400 {object} models.ValidationErrorResponse "Validation failed"
// @Failure      400 {object} models.ErrorResponse "Email already registered"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	in := validation.ParseRegister(body)
	if !in.OK() {
		response.Validation(w, in.Errors)
		return
	}

	if _, err := h.Svc.Auth.Register(r.Context(), in.Value); err != nil {
		h.writeServiceError(w, r, err, body)
		return
	}

	response.Success(w, http.StatusOK, "User created successfully", nil)
}

// Login обрабатывает вход пользователя и выдачу токена.
//
// @Summary      Login
// @Description  Verifies credentials and returns the user with a bearer token valid for 24 hours.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Login request"
// @Success      200 {object} models.SuccessResponse{data=models.LoginData}
// @Failure      400 {object} models.ValidationErrorResponse "Validation failed"
// @Failure      401 {object} models.ErrorResponse "Invalid email or password"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	in := validation.ParseLogin(body)
	if !in.OK() {
		response.Validation(w, in.Errors)
		return
	}

	res, err := h.Svc.Auth.Login(r.Context(), in.Value)
	if err != nil {
		h.writeServiceError(w, r, err, body)
		return
	}

	response.Success(w, http.StatusOK, "Login successful", models.LoginData{
		User:  toUserDTO(res.User),
		Token: res.Token,
	})
}
