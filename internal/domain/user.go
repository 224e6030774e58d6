package domain

import "time"

// UserStatus represents lifecycle states for a credential holder.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is one human credential holder, bound to exactly one tenant. Email is
// stored normalized and unique system-wide, case-insensitively. The password
// digest never leaves the auth boundary.
type User struct {
	ID                string
	TenantID          string
	RoleID            int64
	RoleCode          RoleCode
	Email             string
	PasswordHash      string
	FullName          string
	Position          *string
	PreferredLanguage string
	Status            UserStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PositionOrEmpty flattens the optional position for API responses.
func (u *User) PositionOrEmpty() string {
	if u.Position == nil {
		return ""
	}
	return *u.Position
}
