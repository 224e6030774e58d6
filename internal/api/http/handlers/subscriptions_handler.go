package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/messaging-service/internal/api/dto"
	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/service"
	apperrors "github.com/spec-kit/messaging-service/pkg/util"
)

// SubscriptionsHandler exposes plan-state and catalog endpoints.
type SubscriptionsHandler struct {
	subscriptions *service.SubscriptionService
}

// NewSubscriptionsHandler constructs handler.
func NewSubscriptionsHandler(subscriptionService *service.SubscriptionService) *SubscriptionsHandler {
	return &SubscriptionsHandler{subscriptions: subscriptionService}
}

// Current handles GET /subscriptions/current.
func (h *SubscriptionsHandler) Current(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	sub, err := h.subscriptions.Current(c.UserContext(), tenantID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "subscription.current", "current subscription", dto.NewSubscriptionResponse(sub))
}

// Plans handles GET /plans.
func (h *SubscriptionsHandler) Plans(c *fiber.Ctx) error {
	plans, err := h.subscriptions.Plans(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "plans.list", "plans", plans)
}

// ChangePlan handles POST /subscriptions/change-plan. Billing integration is
// stubbed: the request is acknowledged without altering stored state.
func (h *SubscriptionsHandler) ChangePlan(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	var req dto.PlanChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("subscription.invalid_payload", "invalid payload", nil)
	}
	if req.Plan == "" {
		return apperrors.NewValidationError("subscription.invalid_payload", "plan required", nil)
	}

	sub, err := h.subscriptions.RequestPlanChange(c.UserContext(), tenantID, domain.PlanCode(req.Plan))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "subscription.change_requested", "plan change requested", dto.NewSubscriptionResponse(sub))
}
