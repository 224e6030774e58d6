package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/messaging-service/internal/config"
	"github.com/spec-kit/messaging-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTenantRegistered, n.handleTenantRegistered)
	n.dispatcher.Subscribe(events.EventTeamMemberCreated, n.handleTeamMemberCreated)
	n.dispatcher.Subscribe(events.EventTeamMemberRemoved, n.handleTeamMemberRemoved)
	n.dispatcher.Subscribe(events.EventChannelConnected, n.handleChannelConnected)
	n.dispatcher.Subscribe(events.EventChannelRemoved, n.handleChannelRemoved)
	n.dispatcher.Subscribe(events.EventWebhookReceived, n.handleWebhookReceived)
}

func (n *NotificationService) handleTenantRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("TenantRegistered", zap.String("tenant_id", event.TenantID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTeamMemberCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TeamMemberCreated", zap.String("tenant_id", event.TenantID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTeamMemberRemoved(ctx context.Context, event events.Event) error {
	n.logger.Info("TeamMemberRemoved", zap.String("tenant_id", event.TenantID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleChannelConnected(ctx context.Context, event events.Event) error {
	n.logger.Info("ChannelConnected", zap.String("tenant_id", event.TenantID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleChannelRemoved(ctx context.Context, event events.Event) error {
	n.logger.Info("ChannelRemoved", zap.String("tenant_id", event.TenantID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleWebhookReceived(ctx context.Context, event events.Event) error {
	n.logger.Info("WebhookReceived", zap.String("tenant_id", event.TenantID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("tenant_id", event.TenantID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("tenant_id", event.TenantID),
		zap.String("event_type", string(event.Type)))
}
