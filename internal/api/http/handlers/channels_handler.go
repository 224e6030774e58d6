package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/messaging-service/internal/api/dto"
	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/service"
	apperrors "github.com/spec-kit/messaging-service/pkg/util"
)

// ChannelsHandler exposes provider-connection endpoints.
type ChannelsHandler struct {
	channels *service.ChannelService
}

// NewChannelsHandler constructs handler.
func NewChannelsHandler(channelService *service.ChannelService) *ChannelsHandler {
	return &ChannelsHandler{channels: channelService}
}

// Summary handles GET /channels/summary.
func (h *ChannelsHandler) Summary(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	summary, err := h.channels.Summary(c.UserContext(), tenantID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "channels.summary", "channel summary", summary)
}

// List handles GET /channels.
func (h *ChannelsHandler) List(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	channels, err := h.channels.List(c.UserContext(), tenantID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "channels.list", "channels", dto.NewChannelResponses(channels))
}

// ConnectWhatsApp handles POST /channels/whatsapp/connect.
func (h *ChannelsHandler) ConnectWhatsApp(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	var req dto.WhatsAppConnectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("channels.invalid_payload", "invalid payload", nil)
	}

	details := map[string]any{}
	if strings.TrimSpace(req.PhoneNumberID) == "" {
		details["phone_number_id"] = "required"
	}
	if strings.TrimSpace(req.AccessToken) == "" {
		details["access_token"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("channels.invalid_payload", "invalid payload", details)
	}

	channel, err := h.channels.ConnectWhatsApp(c.UserContext(), tenantID, service.WhatsAppConnection{
		DisplayName:   req.DisplayName,
		PhoneNumberID: req.PhoneNumberID,
		WabaID:        req.WabaID,
		AccessToken:   req.AccessToken,
		VerifyToken:   req.VerifyToken,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "channels.connected", "channel connected", dto.NewChannelResponse(channel))
}

// Remove handles DELETE /channels/:id.
func (h *ChannelsHandler) Remove(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	if err := h.channels.Remove(c.UserContext(), tenantID, c.Params("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "channels.removed", "channel removed", nil)
}
