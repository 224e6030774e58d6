package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/messaging-service/internal/api/dto"
	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/service"
	apperrors "github.com/spec-kit/messaging-service/pkg/util"
)

// QuickRepliesHandler exposes canned-response endpoints.
type QuickRepliesHandler struct {
	replies *service.QuickReplyService
}

// NewQuickRepliesHandler constructs handler.
func NewQuickRepliesHandler(replyService *service.QuickReplyService) *QuickRepliesHandler {
	return &QuickRepliesHandler{replies: replyService}
}

// List handles GET /quick-replies.
func (h *QuickRepliesHandler) List(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	replies, err := h.replies.List(c.UserContext(), tenantID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "quick_replies.list", "quick replies", dto.NewQuickReplyResponses(replies))
}

// Create handles POST /quick-replies.
func (h *QuickRepliesHandler) Create(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	var req dto.QuickReplyCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("quick_replies.invalid_payload", "invalid payload", nil)
	}

	details := map[string]any{}
	if strings.TrimSpace(req.Title) == "" {
		details["title"] = "required"
	}
	if strings.TrimSpace(req.Content) == "" {
		details["content"] = "required"
	}
	category := domain.QuickReplyCategory(req.Category)
	if !category.Valid() {
		details["category"] = "must be general, sales, support, or follow-up"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("quick_replies.invalid_payload", "invalid payload", details)
	}

	reply, err := h.replies.Create(c.UserContext(), tenantID, service.NewQuickReply{
		Title:    req.Title,
		Category: category,
		Content:  req.Content,
		Language: req.Language,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "quick_replies.created", "quick reply created", dto.NewQuickReplyResponse(reply))
}

// Update handles PATCH /quick-replies/:id.
func (h *QuickRepliesHandler) Update(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	var req dto.QuickReplyUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("quick_replies.invalid_payload", "invalid payload", nil)
	}

	patch := service.QuickReplyPatch{
		Title:   req.Title,
		Content: req.Content,
	}
	if req.Category != nil {
		category := domain.QuickReplyCategory(*req.Category)
		if !category.Valid() {
			return apperrors.NewValidationError("quick_replies.invalid_payload", "invalid payload",
				map[string]any{"category": "must be general, sales, support, or follow-up"})
		}
		patch.Category = &category
	}

	reply, err := h.replies.Update(c.UserContext(), tenantID, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "quick_replies.updated", "quick reply updated", dto.NewQuickReplyResponse(reply))
}

// Remove handles DELETE /quick-replies/:id.
func (h *QuickRepliesHandler) Remove(c *fiber.Ctx) error {
	tenantID, err := auth.MustTenant(c)
	if err != nil {
		return err
	}

	if err := h.replies.Remove(c.UserContext(), tenantID, c.Params("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "quick_replies.removed", "quick reply removed", nil)
}
