package service

import "context"

// AutomationPort abstracts AI-assisted conversation helpers (suggested
// replies, thread classification). Implementations are expected to be
// tenant-aware.
type AutomationPort interface {
	SuggestReply(ctx context.Context, tenantID, conversationID string) ([]string, error)
	ClassifyConversation(ctx context.Context, tenantID, conversationID string) ([]string, error)
}

// StubAutomation keeps the automation seam in place without a provider. It
// returns empty suggestions and tags.
type StubAutomation struct{}

func (StubAutomation) SuggestReply(context.Context, string, string) ([]string, error) {
	return []string{}, nil
}

func (StubAutomation) ClassifyConversation(context.Context, string, string) ([]string, error) {
	return []string{}, nil
}
