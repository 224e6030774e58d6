package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/messaging-service/internal/api/dto"
	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/service"
	apperrors "github.com/spec-kit/messaging-service/pkg/util"
)

// TeamHandler exposes tenant member management.
type TeamHandler struct {
	team *service.TeamService
}

// NewTeamHandler constructs handler.
func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{team: teamService}
}

// List handles GET /team.
func (h *TeamHandler) List(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	members, err := h.team.List(c.UserContext(), tenantID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "team.list", "team members", dto.NewTeamMemberResponses(members))
}

// Create handles POST /team.
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	var req dto.TeamMemberCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("team.invalid_payload", "invalid payload", nil)
	}

	details := map[string]any{}
	if strings.TrimSpace(req.FullName) == "" {
		details["full_name"] = "required"
	}
	if strings.TrimSpace(req.Email) == "" {
		details["email"] = "required"
	}
	if len(req.Password) < minPasswordLength {
		details["password"] = "must be at least 6 characters"
	}
	role := domain.RoleCode(req.Role)
	if !role.Valid() {
		details["role"] = "must be company_admin or agent"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("team.invalid_payload", "invalid payload", details)
	}

	member, err := h.team.Create(c.UserContext(), tenantID, service.NewTeamMember{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		Position: req.Position,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "team.created", "team member created", dto.NewTeamMemberResponse(member))
}

// Update handles PATCH /team/:id.
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	var req dto.TeamMemberUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("team.invalid_payload", "invalid payload", nil)
	}

	patch := service.TeamMemberPatch{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Position: req.Position,
	}
	if req.Password != nil && len(*req.Password) < minPasswordLength {
		return apperrors.NewValidationError("team.invalid_payload", "invalid payload",
			map[string]any{"password": "must be at least 6 characters"})
	}
	if req.Role != nil {
		role := domain.RoleCode(*req.Role)
		if !role.Valid() {
			return apperrors.NewValidationError("team.invalid_payload", "invalid payload",
				map[string]any{"role": "must be company_admin or agent"})
		}
		patch.Role = &role
	}

	member, err := h.team.Update(c.UserContext(), tenantID, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "team.updated", "team member updated", dto.NewTeamMemberResponse(member))
}

// Remove handles DELETE /team/:id.
func (h *TeamHandler) Remove(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	if err := h.team.Remove(c.UserContext(), tenantID, c.Params("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "team.removed", "team member removed", nil)
}
