package domain

import "time"

// PlanCode identifies a seeded billing plan.
type PlanCode string

const (
	PlanFree     PlanCode = "free"
	PlanPro      PlanCode = "pro"
	PlanBusiness PlanCode = "business"
)

// Plan is a row in the seeded plan catalog. Limits and Features are raw JSON
// documents passed through to clients.
type Plan struct {
	ID       int64
	Code     PlanCode
	Limits   []byte
	Features []byte
}

// SubscriptionStatus represents plan-state lifecycle.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionTrialing SubscriptionStatus = "trialing"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// Subscription is a tenant's plan state. One is created per tenant at
// registration, defaulted to the free plan with a 30-day period.
type Subscription struct {
	ID                 string
	TenantID           string
	PlanID             int64
	PlanCode           PlanCode
	Status             SubscriptionStatus
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	CancelAtPeriodEnd  bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
