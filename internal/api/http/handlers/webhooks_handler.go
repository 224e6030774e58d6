package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/messaging-service/internal/events"
)

// WebhooksHandler receives provider callbacks. Message processing is out of
// scope; payloads are acknowledged and published as events.
type WebhooksHandler struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewWebhooksHandler constructs handler.
func NewWebhooksHandler(dispatcher events.Dispatcher, logger *zap.Logger) *WebhooksHandler {
	return &WebhooksHandler{dispatcher: dispatcher, logger: logger}
}

// VerifyWhatsApp handles GET /webhooks/whatsapp, the provider's subscription
// challenge. The challenge value is echoed back verbatim.
func (h *WebhooksHandler) VerifyWhatsApp(c *fiber.Ctx) error {
	challenge := c.Query("hub.challenge")
	if challenge == "" {
		return c.SendStatus(http.StatusBadRequest)
	}
	return c.SendString(challenge)
}

// ReceiveWhatsApp handles POST /webhooks/whatsapp.
func (h *WebhooksHandler) ReceiveWhatsApp(c *fiber.Ctx) error {
	var body any
	if err := c.BodyParser(&body); err != nil {
		h.logger.Warn("unparseable webhook body", zap.Error(err))
		body = string(c.Body())
	}

	if h.dispatcher != nil {
		_ = h.dispatcher.Publish(c.UserContext(), events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventWebhookReceived,
			Timestamp: time.Now(),
			Payload: events.WebhookReceivedPayload{
				Provider: "whatsapp",
				Body:     body,
			},
		})
	}

	// Providers retry on anything but a fast 200.
	return c.SendStatus(http.StatusOK)
}
