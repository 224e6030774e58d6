package events

import (
	"time"

	"github.com/spec-kit/messaging-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTenantRegistered  EventType = "tenant_registered"
	EventTeamMemberCreated EventType = "team_member_created"
	EventTeamMemberRemoved EventType = "team_member_removed"
	EventChannelConnected  EventType = "channel_connected"
	EventChannelRemoved    EventType = "channel_removed"
	EventWebhookReceived   EventType = "webhook_received"
)

// Event represents a domain event emitted by services. TenantID scopes the
// event to the tenant it happened in.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TenantID  string      `json:"tenant_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TenantRegisteredPayload payload.
type TenantRegisteredPayload struct {
	TenantName string `json:"tenant_name"`
	TenantSlug string `json:"tenant_slug"`
	AdminEmail string `json:"admin_email"`
}

// TeamMemberCreatedPayload payload.
type TeamMemberCreatedPayload struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email"`
	Role   domain.RoleCode `json:"role"`
}

// TeamMemberRemovedPayload payload.
type TeamMemberRemovedPayload struct {
	UserID string `json:"user_id"`
}

// ChannelConnectedPayload payload.
type ChannelConnectedPayload struct {
	ChannelID   string             `json:"channel_id"`
	ChannelType domain.ChannelType `json:"channel_type"`
	DisplayName string             `json:"display_name"`
}

// ChannelRemovedPayload payload.
type ChannelRemovedPayload struct {
	ChannelID string `json:"channel_id"`
}

// WebhookReceivedPayload payload.
type WebhookReceivedPayload struct {
	Provider string      `json:"provider"`
	Body     interface{} `json:"body"`
}
