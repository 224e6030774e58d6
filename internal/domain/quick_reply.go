package domain

import "time"

// QuickReplyCategory groups canned responses in the composer UI.
type QuickReplyCategory string

const (
	QuickReplyGeneral  QuickReplyCategory = "general"
	QuickReplySales    QuickReplyCategory = "sales"
	QuickReplySupport  QuickReplyCategory = "support"
	QuickReplyFollowUp QuickReplyCategory = "follow-up"
)

// Valid reports whether the category is one of the known values.
func (c QuickReplyCategory) Valid() bool {
	switch c {
	case QuickReplyGeneral, QuickReplySales, QuickReplySupport, QuickReplyFollowUp:
		return true
	}
	return false
}

// QuickReply is a tenant-scoped canned response. Removal is a soft delete
// via IsActive.
type QuickReply struct {
	ID        string
	TenantID  string
	Title     string
	Shortcut  string
	Category  QuickReplyCategory
	Content   string
	Language  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
