package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jobraft/backend/api/http/presenter"
	"github.com/jobraft/backend/pkg/auth"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Employer bool   `json:"employer"`
}

func authPayload(result auth.AuthResult) fiber.Map {
	return fiber.Map{
		"id":            result.User.ID.String(),
		"email":         result.User.Email,
		"role":          result.Profile.Role,
		"token":         result.Token,
		"refresh_token": result.RefreshToken,
	}
}

// Register handles account creation. The sign-up resolves the profile inline,
// so the response already carries the role.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	result, err := h.useCase.Register(c.Context(), auth.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Employer: req.Employer,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserAlreadyExists):
			return presenter.Error(c, http.StatusConflict, "user already exists")
		case errors.Is(err, auth.ErrInvalidCredentials):
			return presenter.Error(c, http.StatusBadRequest, "email and password are required")
		default:
			return serverError(c, err, "register user")
		}
	}

	return presenter.JSON(c, http.StatusCreated, authPayload(result))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return presenter.Error(c, http.StatusUnauthorized, "invalid credentials")
		}
		return serverError(c, err, "login")
	}

	return presenter.JSON(c, http.StatusOK, authPayload(result))
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates a refresh session into a new token pair.
// @Summary Refresh tokens
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body refreshRequest true "refresh payload"
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return presenter.Error(c, http.StatusBadRequest, "refresh_token is required")
	}
	result, err := h.useCase.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrSessionExpired) {
			return presenter.Error(c, http.StatusUnauthorized, "session expired, sign in again")
		}
		return serverError(c, err, "refresh session")
	}
	return presenter.JSON(c, http.StatusOK, authPayload(result))
}

// Logout revokes the refresh session. Revoking twice is fine.
// @Summary Sign out
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body refreshRequest true "refresh payload"
// @Success 204 {object} nil
// @Router  /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return presenter.Error(c, http.StatusBadRequest, "refresh_token is required")
	}
	if err := h.useCase.Logout(c.Context(), req.RefreshToken); err != nil {
		return serverError(c, err, "sign out")
	}
	return c.SendStatus(http.StatusNoContent)
}
