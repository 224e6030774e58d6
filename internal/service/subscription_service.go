package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/repository"
	"github.com/spec-kit/messaging-service/pkg/util"
)

// PlanView is a catalog entry with its JSON documents decoded for clients.
type PlanView struct {
	Code     domain.PlanCode `json:"code"`
	Limits   json.RawMessage `json:"limits"`
	Features json.RawMessage `json:"features"`
}

// SubscriptionService exposes a tenant's plan state and the plan catalog.
// Billing-provider integration is stubbed: plan changes acknowledge the
// request without charging anyone.
type SubscriptionService struct {
	store repository.Store
}

// NewSubscriptionService builds the service.
func NewSubscriptionService(store repository.Store) *SubscriptionService {
	return &SubscriptionService{store: store}
}

// Current returns the tenant's most recent subscription.
func (s *SubscriptionService) Current(ctx context.Context, tenantID string) (*domain.Subscription, error) {
	sub, err := s.store.Subscriptions().GetByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("subscription.not_found", "subscription not found")
		}
		return nil, util.MapError(err)
	}
	return sub, nil
}

// Plans returns the seeded plan catalog.
func (s *SubscriptionService) Plans(ctx context.Context) ([]PlanView, error) {
	plans, err := s.store.Plans().List(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}

	views := make([]PlanView, 0, len(plans))
	for _, plan := range plans {
		views = append(views, PlanView{
			Code:     plan.Code,
			Limits:   json.RawMessage(plan.Limits),
			Features: json.RawMessage(plan.Features),
		})
	}
	return views, nil
}

// RequestPlanChange validates the target plan and acknowledges the request.
// It does not change the stored subscription.
func (s *SubscriptionService) RequestPlanChange(ctx context.Context, tenantID string, target domain.PlanCode) (*domain.Subscription, error) {
	if _, err := s.store.Plans().GetByCode(ctx, target); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewValidationError("subscription.unknown_plan", "unknown plan", nil)
		}
		return nil, util.MapError(err)
	}
	return s.Current(ctx, tenantID)
}
