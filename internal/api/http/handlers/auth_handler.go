package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/messaging-service/internal/api/dto"
	"github.com/spec-kit/messaging-service/internal/service"
	apperrors "github.com/spec-kit/messaging-service/pkg/util"
)

const minPasswordLength = 6

// AuthHandler exposes registration and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("auth.invalid_payload", "invalid payload", nil)
	}

	details := map[string]any{}
	if strings.TrimSpace(req.FirstName) == "" {
		details["first_name"] = "required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		details["last_name"] = "required"
	}
	if strings.TrimSpace(req.OrganizationName) == "" {
		details["organization_name"] = "required"
	}
	if strings.TrimSpace(req.Email) == "" {
		details["email"] = "required"
	}
	if len(req.Password) < minPasswordLength {
		details["password"] = "must be at least 6 characters"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("auth.invalid_payload", "invalid payload", details)
	}

	result, err := h.auth.Register(c.UserContext(), service.Registration{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		OrganizationName: req.OrganizationName,
		Email:            req.Email,
		Password:         req.Password,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "auth.registered", "registration successful", dto.NewRegisterResponse(result))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("auth.invalid_payload", "invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("auth.invalid_payload", "email and password required", nil)
	}

	session, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "auth.logged_in", "login successful", dto.NewSessionResponse(session))
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("auth.invalid_payload", "invalid payload", nil)
	}
	if req.RefreshToken == "" {
		return apperrors.NewValidationError("auth.invalid_payload", "refresh_token required", nil)
	}

	session, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "auth.refreshed", "session refreshed", dto.NewSessionResponse(session))
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("auth.invalid_payload", "invalid payload", nil)
	}

	if err := h.auth.Logout(c.UserContext(), req.RefreshToken); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "auth.logged_out", "logged out", nil)
}
