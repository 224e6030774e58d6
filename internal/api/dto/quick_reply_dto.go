package dto

import (
	"time"

	"github.com/spec-kit/messaging-service/internal/domain"
)

// QuickReplyCreateRequest payload for a new canned response.
type QuickReplyCreateRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

// QuickReplyUpdateRequest payload for a partial update. Absent fields are
// left unchanged.
type QuickReplyUpdateRequest struct {
	Title    *string `json:"title"`
	Category *string `json:"category"`
	Content  *string `json:"content"`
}

// QuickReplyResponse is the canned-response shape.
type QuickReplyResponse struct {
	ID        string                    `json:"id"`
	Title     string                    `json:"title"`
	Shortcut  string                    `json:"shortcut"`
	Category  domain.QuickReplyCategory `json:"category"`
	Content   string                    `json:"content"`
	Language  string                    `json:"language"`
	CreatedAt time.Time                 `json:"created_at"`
}

// NewQuickReplyResponse maps a domain quick reply.
func NewQuickReplyResponse(reply *domain.QuickReply) QuickReplyResponse {
	return QuickReplyResponse{
		ID:        reply.ID,
		Title:     reply.Title,
		Shortcut:  reply.Shortcut,
		Category:  reply.Category,
		Content:   reply.Content,
		Language:  reply.Language,
		CreatedAt: reply.CreatedAt,
	}
}

// NewQuickReplyResponses maps a slice of quick replies.
func NewQuickReplyResponses(replies []domain.QuickReply) []QuickReplyResponse {
	out := make([]QuickReplyResponse, 0, len(replies))
	for i := range replies {
		out = append(out, NewQuickReplyResponse(&replies[i]))
	}
	return out
}
