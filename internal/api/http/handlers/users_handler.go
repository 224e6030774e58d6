package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/messaging-service/internal/api/dto"
	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/service"
	apperrors "github.com/spec-kit/messaging-service/pkg/util"
)

var supportedLanguages = map[string]struct{}{
	"en": {},
	"ar": {},
}

// UsersHandler exposes profile endpoints for the authenticated user.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("auth.missing_token", "authentication required")
	}

	user, err := h.users.GetMe(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "users.me", "profile", dto.NewUserResponse(user))
}

// UpdateLanguage handles PATCH /users/me/language.
func (h *UsersHandler) UpdateLanguage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("auth.missing_token", "authentication required")
	}

	var req dto.UpdateLanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("users.invalid_payload", "invalid payload", nil)
	}
	if _, ok := supportedLanguages[req.Language]; !ok {
		return apperrors.NewValidationError("users.unsupported_language", "unsupported language", nil)
	}

	user, err := h.users.UpdateLanguage(c.UserContext(), principal.User.ID, req.Language)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "users.language_updated", "language updated", dto.NewUserResponse(user))
}
