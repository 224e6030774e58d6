package dto

import (
	"time"

	"github.com/spec-kit/messaging-service/internal/domain"
)

// PlanChangeRequest payload naming the target plan.
type PlanChangeRequest struct {
	Plan string `json:"plan"`
}

// SubscriptionResponse is the tenant plan-state shape.
type SubscriptionResponse struct {
	ID                 string          `json:"id"`
	Plan               domain.PlanCode `json:"plan"`
	Status             string          `json:"status"`
	CurrentPeriodStart time.Time       `json:"current_period_start"`
	CurrentPeriodEnd   time.Time       `json:"current_period_end"`
	CancelAtPeriodEnd  bool            `json:"cancel_at_period_end"`
}

// NewSubscriptionResponse maps a domain subscription.
func NewSubscriptionResponse(sub *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:                 sub.ID,
		Plan:               sub.PlanCode,
		Status:             string(sub.Status),
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
	}
}
