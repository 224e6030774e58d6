package repository

import (
	"context"

	"github.com/spec-kit/messaging-service/internal/domain"
)

// SubscriptionRepository manages persistence for tenant plan state.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	GetByTenant(ctx context.Context, tenantID string) (*domain.Subscription, error)
}

type subscriptionRepository struct {
	db Querier
}

// NewSubscriptionRepository returns a Postgres-backed implementation.
func NewSubscriptionRepository(db Querier) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	const query = `
        INSERT INTO subscriptions
            (tenant_id, plan_id, status, current_period_start, current_period_end, cancel_at_period_end)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		sub.TenantID,
		sub.PlanID,
		sub.Status,
		sub.CurrentPeriodStart,
		sub.CurrentPeriodEnd,
		sub.CancelAtPeriodEnd,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

func (r *subscriptionRepository) GetByTenant(ctx context.Context, tenantID string) (*domain.Subscription, error) {
	const query = `
        SELECT s.id, s.tenant_id, s.plan_id, p.code, s.status,
               s.current_period_start, s.current_period_end, s.cancel_at_period_end,
               s.created_at, s.updated_at
        FROM subscriptions s JOIN plans p ON p.id = s.plan_id
        WHERE s.tenant_id=$1
        ORDER BY s.created_at DESC
        LIMIT 1`

	var sub domain.Subscription
	if err := r.db.QueryRow(ctx, query, tenantID).Scan(
		&sub.ID,
		&sub.TenantID,
		&sub.PlanID,
		&sub.PlanCode,
		&sub.Status,
		&sub.CurrentPeriodStart,
		&sub.CurrentPeriodEnd,
		&sub.CancelAtPeriodEnd,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}
