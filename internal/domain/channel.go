package domain

import "time"

// ChannelType enumerates supported messaging providers.
type ChannelType string

const (
	ChannelWhatsApp  ChannelType = "whatsapp"
	ChannelInstagram ChannelType = "instagram"
	ChannelMessenger ChannelType = "messenger"
	ChannelTelegram  ChannelType = "telegram"
)

// ChannelStatus represents connection state.
type ChannelStatus string

const (
	ChannelConnected    ChannelStatus = "connected"
	ChannelDisconnected ChannelStatus = "disconnected"
)

// Channel is a tenant's connection to a messaging provider. Credentials are
// stored as given; provider integration itself is stubbed.
type Channel struct {
	ID                string
	TenantID          string
	Type              ChannelType
	ExternalAccountID string
	DisplayName       string
	Status            ChannelStatus
	WabaID            *string
	AccessToken       string
	VerifyToken       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
