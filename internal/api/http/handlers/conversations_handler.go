package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/messaging-service/internal/api/dto"
	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/service"
	apperrors "github.com/spec-kit/messaging-service/pkg/util"
)

// ConversationsHandler exposes the inbox endpoints.
type ConversationsHandler struct {
	conversations *service.ConversationService
}

// NewConversationsHandler constructs handler.
func NewConversationsHandler(conversationService *service.ConversationService) *ConversationsHandler {
	return &ConversationsHandler{conversations: conversationService}
}

// List handles GET /conversations.
func (h *ConversationsHandler) List(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	items, err := h.conversations.List(c.UserContext(), tenantID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "conversations.listed", "conversations", items)
}

// Get handles GET /conversations/:id.
func (h *ConversationsHandler) Get(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	conversation, err := h.conversations.Get(c.UserContext(), tenantID, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "conversations.loaded", "conversation", conversation)
}

// UpdateStatus handles PATCH /conversations/:id/status.
func (h *ConversationsHandler) UpdateStatus(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	var req dto.ConversationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("conversations.invalid_payload", "invalid payload", nil)
	}

	result, err := h.conversations.UpdateStatus(c.UserContext(), tenantID, c.Params("id"), domain.ConversationStatus(req.Status))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "conversations.status_updated", "conversation status updated", result)
}

// Assign handles PATCH /conversations/:id/assign.
func (h *ConversationsHandler) Assign(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	var req dto.ConversationAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("conversations.invalid_payload", "invalid payload", nil)
	}

	assignment, err := h.conversations.Assign(c.UserContext(), tenantID, c.Params("id"), req.UserID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "conversations.assigned", "conversation assigned", assignment)
}

// Messages handles GET /conversations/:id/messages.
func (h *ConversationsHandler) Messages(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	messages, err := h.conversations.Messages(c.UserContext(), tenantID, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "messages.listed", "messages", messages)
}

// SendMessage handles POST /conversations/:id/messages.
func (h *ConversationsHandler) SendMessage(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	var req dto.ConversationMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("conversations.invalid_payload", "invalid payload", nil)
	}

	sent, err := h.conversations.SendMessage(c.UserContext(), tenantID, c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "messages.sent", "message sent", sent)
}

// Assist handles GET /conversations/:id/assist.
func (h *ConversationsHandler) Assist(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	assist, err := h.conversations.Assist(c.UserContext(), tenantID, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "conversations.assist", "conversation assist", assist)
}
