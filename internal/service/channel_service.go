package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/events"
	"github.com/spec-kit/messaging-service/internal/repository"
	"github.com/spec-kit/messaging-service/pkg/util"
)

// WhatsAppConnection captures a connect request after handler validation.
type WhatsAppConnection struct {
	DisplayName   string
	PhoneNumberID string
	WabaID        string
	AccessToken   string
	VerifyToken   string
}

// ChannelSummary reports connected-channel counts per provider. Providers
// with no channels report zero rather than being omitted.
type ChannelSummary struct {
	WhatsApp  int `json:"whatsapp"`
	Instagram int `json:"instagram"`
	Messenger int `json:"messenger"`
	Telegram  int `json:"telegram"`
}

// ChannelService manages a tenant's provider connections.
type ChannelService struct {
	store      repository.Store
	dispatcher events.Dispatcher
}

// NewChannelService builds the service.
func NewChannelService(store repository.Store, dispatcher events.Dispatcher) *ChannelService {
	return &ChannelService{store: store, dispatcher: dispatcher}
}

// Summary returns per-provider channel counts for the tenant.
func (s *ChannelService) Summary(ctx context.Context, tenantID string) (*ChannelSummary, error) {
	counts, err := s.store.Channels().CountByType(ctx, tenantID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return &ChannelSummary{
		WhatsApp:  counts[domain.ChannelWhatsApp],
		Instagram: counts[domain.ChannelInstagram],
		Messenger: counts[domain.ChannelMessenger],
		Telegram:  counts[domain.ChannelTelegram],
	}, nil
}

// List returns the tenant's channels, newest first.
func (s *ChannelService) List(ctx context.Context, tenantID string) ([]domain.Channel, error) {
	channels, err := s.store.Channels().ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return channels, nil
}

// ConnectWhatsApp stores a WhatsApp connection for the tenant. Provider-side
// verification is out of scope; the channel is recorded as connected.
func (s *ChannelService) ConnectWhatsApp(ctx context.Context, tenantID string, conn WhatsAppConnection) (*domain.Channel, error) {
	channel := &domain.Channel{
		TenantID:          tenantID,
		Type:              domain.ChannelWhatsApp,
		ExternalAccountID: trimmed(conn.PhoneNumberID),
		DisplayName:       trimmed(conn.DisplayName),
		Status:            domain.ChannelConnected,
		WabaID:            optionalString(conn.WabaID),
		AccessToken:       trimmed(conn.AccessToken),
		VerifyToken:       trimmed(conn.VerifyToken),
	}
	if err := s.store.Channels().Create(ctx, channel); err != nil {
		return nil, util.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventChannelConnected,
			TenantID:  tenantID,
			Timestamp: time.Now(),
			Payload: events.ChannelConnectedPayload{
				ChannelID:   channel.ID,
				ChannelType: channel.Type,
				DisplayName: channel.DisplayName,
			},
		})
	}
	return channel, nil
}

// Remove deletes a channel of the tenant.
func (s *ChannelService) Remove(ctx context.Context, tenantID, channelID string) error {
	if err := s.store.Channels().DeleteByTenant(ctx, tenantID, channelID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("channels.not_found", "channel not found")
		}
		return util.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventChannelRemoved,
			TenantID:  tenantID,
			Timestamp: time.Now(),
			Payload:   events.ChannelRemovedPayload{ChannelID: channelID},
		})
	}
	return nil
}
