package dto

import (
	"time"

	"github.com/spec-kit/messaging-service/internal/domain"
)

// WhatsAppConnectRequest payload for connecting a WhatsApp channel.
type WhatsAppConnectRequest struct {
	DisplayName   string `json:"display_name"`
	PhoneNumberID string `json:"phone_number_id"`
	WabaID        string `json:"waba_id"`
	AccessToken   string `json:"access_token"`
	VerifyToken   string `json:"verify_token"`
}

// ChannelResponse is the channel list/detail shape. Credentials are never
// echoed back.
type ChannelResponse struct {
	ID                string             `json:"id"`
	Type              domain.ChannelType `json:"type"`
	ExternalAccountID string             `json:"external_account_id"`
	DisplayName       string             `json:"display_name"`
	Status            string             `json:"status"`
	CreatedAt         time.Time          `json:"created_at"`
}

// NewChannelResponse maps a domain channel.
func NewChannelResponse(channel *domain.Channel) ChannelResponse {
	return ChannelResponse{
		ID:                channel.ID,
		Type:              channel.Type,
		ExternalAccountID: channel.ExternalAccountID,
		DisplayName:       channel.DisplayName,
		Status:            string(channel.Status),
		CreatedAt:         channel.CreatedAt,
	}
}

// NewChannelResponses maps a slice of channels.
func NewChannelResponses(channels []domain.Channel) []ChannelResponse {
	out := make([]ChannelResponse, 0, len(channels))
	for i := range channels {
		out = append(out, NewChannelResponse(&channels[i]))
	}
	return out
}
