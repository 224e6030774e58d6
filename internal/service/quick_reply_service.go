package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/repository"
	"github.com/spec-kit/messaging-service/pkg/util"
)

// NewQuickReply captures a create request after handler-level validation.
type NewQuickReply struct {
	Title    string
	Category domain.QuickReplyCategory
	Content  string
	Language string
}

// QuickReplyPatch carries optional updates. Nil fields are left unchanged.
type QuickReplyPatch struct {
	Title    *string
	Category *domain.QuickReplyCategory
	Content  *string
}

// QuickReplyService manages a tenant's canned responses.
type QuickReplyService struct {
	store repository.Store
}

// NewQuickReplyService builds the service.
func NewQuickReplyService(store repository.Store) *QuickReplyService {
	return &QuickReplyService{store: store}
}

// List returns the tenant's active quick replies, newest first.
func (s *QuickReplyService) List(ctx context.Context, tenantID string) ([]domain.QuickReply, error) {
	replies, err := s.store.QuickReplies().ListActiveByTenant(ctx, tenantID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return replies, nil
}

// Create stores a quick reply with a shortcut derived from the title.
func (s *QuickReplyService) Create(ctx context.Context, tenantID string, input NewQuickReply) (*domain.QuickReply, error) {
	title := trimmed(input.Title)
	language := trimmed(input.Language)
	if language == "" {
		language = defaultLanguage
	}

	reply := &domain.QuickReply{
		TenantID: tenantID,
		Title:    title,
		Shortcut: util.ReplyShortcut(title),
		Category: input.Category,
		Content:  input.Content,
		Language: language,
		IsActive: true,
	}
	if err := s.store.QuickReplies().Create(ctx, reply); err != nil {
		return nil, util.MapError(err)
	}
	return reply, nil
}

// Update applies a partial update to an active quick reply of the tenant.
func (s *QuickReplyService) Update(ctx context.Context, tenantID, replyID string, patch QuickReplyPatch) (*domain.QuickReply, error) {
	if _, err := s.store.QuickReplies().GetActiveByTenantAndID(ctx, tenantID, replyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("quick_replies.not_found", "quick reply not found")
		}
		return nil, util.MapError(err)
	}

	repoPatch := repository.QuickReplyPatch{
		Category: patch.Category,
		Content:  patch.Content,
	}
	if patch.Title != nil {
		title := trimmed(*patch.Title)
		repoPatch.Title = &title
	}
	if repoPatch.Empty() {
		return nil, util.NewValidationError("quick_replies.no_fields_to_update", "no fields to update", nil)
	}

	updated, err := s.store.QuickReplies().UpdateByTenant(ctx, tenantID, replyID, repoPatch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("quick_replies.not_found", "quick reply not found")
		}
		return nil, util.MapError(err)
	}
	return updated, nil
}

// Remove deactivates a quick reply of the tenant. The row survives for
// message history that referenced it.
func (s *QuickReplyService) Remove(ctx context.Context, tenantID, replyID string) error {
	if err := s.store.QuickReplies().DeactivateByTenant(ctx, tenantID, replyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("quick_replies.not_found", "quick reply not found")
		}
		return util.MapError(err)
	}
	return nil
}
