package dto

// ConversationStatusRequest payload for moving a conversation between states.
type ConversationStatusRequest struct {
	Status string `json:"status"`
}

// ConversationAssignRequest payload for assigning a conversation to an agent.
type ConversationAssignRequest struct {
	UserID string `json:"user_id"`
}

// ConversationMessageRequest payload for sending a message into a thread.
type ConversationMessageRequest struct {
	Body string `json:"body"`
}
