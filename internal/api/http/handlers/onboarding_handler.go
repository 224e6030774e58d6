package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/messaging-service/internal/api/dto"
	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/service"
	apperrors "github.com/spec-kit/messaging-service/pkg/util"
)

// OnboardingHandler exposes setup-wizard progress endpoints.
type OnboardingHandler struct {
	onboarding *service.OnboardingService
}

// NewOnboardingHandler constructs handler.
func NewOnboardingHandler(onboardingService *service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboardingService}
}

// State handles GET /onboarding.
func (h *OnboardingHandler) State(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	state, err := h.onboarding.State(c.UserContext(), tenantID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "onboarding.state", "onboarding state", state)
}

// CompleteStep handles POST /onboarding/complete-step.
func (h *OnboardingHandler) CompleteStep(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	var req dto.OnboardingStepRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("onboarding.invalid_payload", "invalid payload", nil)
	}

	state, err := h.onboarding.CompleteStep(c.UserContext(), tenantID, req.Step)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "onboarding.step_completed", "step completed", state)
}

// Reset handles POST /onboarding/reset.
func (h *OnboardingHandler) Reset(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	state, err := h.onboarding.Reset(c.UserContext(), tenantID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "onboarding.reset", "onboarding reset", state)
}
