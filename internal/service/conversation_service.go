package service

import (
	"context"

	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/pkg/util"
)

// ConversationSummary is one inbox entry.
type ConversationSummary struct {
	ID     string                    `json:"id"`
	Status domain.ConversationStatus `json:"status"`
}

// ConversationStatusResult acknowledges a status change.
type ConversationStatusResult struct {
	ID     string                    `json:"id"`
	Status domain.ConversationStatus `json:"status"`
}

// ConversationAssignment acknowledges an agent assignment.
type ConversationAssignment struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

// MessageList is a conversation's message page.
type MessageList struct {
	ConversationID string   `json:"conversation_id"`
	Items          []string `json:"items"`
}

// SentMessage acknowledges an outbound message.
type SentMessage struct {
	ConversationID string `json:"conversation_id"`
	Body           string `json:"body"`
}

// ConversationAssist bundles the automation output for a thread.
type ConversationAssist struct {
	ConversationID string   `json:"conversation_id"`
	Suggestions    []string `json:"suggestions"`
	Tags           []string `json:"tags"`
}

// ConversationService fronts the inbox surface. The message pipeline itself
// is not wired to any provider yet, so reads return empty pages and writes
// acknowledge without persisting; automation goes through AutomationPort.
type ConversationService struct {
	automation AutomationPort
}

// NewConversationService builds the service.
func NewConversationService(automation AutomationPort) *ConversationService {
	return &ConversationService{automation: automation}
}

// List returns the tenant's conversations.
func (s *ConversationService) List(ctx context.Context, tenantID string) ([]ConversationSummary, error) {
	return []ConversationSummary{}, nil
}

// Get returns one conversation of the tenant.
func (s *ConversationService) Get(ctx context.Context, tenantID, conversationID string) (*ConversationSummary, error) {
	return &ConversationSummary{ID: conversationID, Status: domain.ConversationOpen}, nil
}

// UpdateStatus moves a conversation between inbox states.
func (s *ConversationService) UpdateStatus(ctx context.Context, tenantID, conversationID string, status domain.ConversationStatus) (*ConversationStatusResult, error) {
	if !status.Valid() {
		return nil, util.NewValidationError("conversations.invalid_status", "status must be open, pending, or resolved", nil)
	}
	return &ConversationStatusResult{ID: conversationID, Status: status}, nil
}

// Assign hands a conversation to an agent.
func (s *ConversationService) Assign(ctx context.Context, tenantID, conversationID, userID string) (*ConversationAssignment, error) {
	if trimmed(userID) == "" {
		return nil, util.NewValidationError("conversations.invalid_payload", "user_id required", nil)
	}
	return &ConversationAssignment{ID: conversationID, UserID: userID}, nil
}

// Messages returns a conversation's messages.
func (s *ConversationService) Messages(ctx context.Context, tenantID, conversationID string) (*MessageList, error) {
	return &MessageList{ConversationID: conversationID, Items: []string{}}, nil
}

// SendMessage records an outbound message.
func (s *ConversationService) SendMessage(ctx context.Context, tenantID, conversationID, body string) (*SentMessage, error) {
	if trimmed(body) == "" {
		return nil, util.NewValidationError("conversations.invalid_payload", "body required", nil)
	}
	return &SentMessage{ConversationID: conversationID, Body: body}, nil
}

// Assist asks the automation port for suggested replies and tags.
func (s *ConversationService) Assist(ctx context.Context, tenantID, conversationID string) (*ConversationAssist, error) {
	suggestions, err := s.automation.SuggestReply(ctx, tenantID, conversationID)
	if err != nil {
		return nil, util.MapError(err)
	}
	tags, err := s.automation.ClassifyConversation(ctx, tenantID, conversationID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return &ConversationAssist{
		ConversationID: conversationID,
		Suggestions:    suggestions,
		Tags:           tags,
	}, nil
}
