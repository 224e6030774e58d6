package dto

import (
	"time"

	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/service"
)

// RegisterRequest payload for tenant sign-up.
type RegisterRequest struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	OrganizationName string `json:"organization_name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
}

// RegisterResponse confirmation payload. Never carries the password or its
// digest.
type RegisterResponse struct {
	Email            string `json:"email"`
	FullName         string `json:"full_name"`
	OrganizationName string `json:"organization_name"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest payload carrying the refresh token to rotate.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// SessionResponse is the token pair plus the public profile.
type SessionResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
	User         UserResponse `json:"user"`
}

// UserResponse is the public profile shape.
type UserResponse struct {
	ID                string          `json:"id"`
	Email             string          `json:"email"`
	FullName          string          `json:"full_name"`
	Position          string          `json:"position"`
	PreferredLanguage string          `json:"preferred_language"`
	TenantID          string          `json:"tenant_id"`
	Role              domain.RoleCode `json:"role"`
}

// NewUserResponse maps a domain user to its public shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:                user.ID,
		Email:             user.Email,
		FullName:          user.FullName,
		Position:          user.PositionOrEmpty(),
		PreferredLanguage: user.PreferredLanguage,
		TenantID:          user.TenantID,
		Role:              user.RoleCode,
	}
}

// NewSessionResponse maps an issued session.
func NewSessionResponse(session *service.Session) SessionResponse {
	return SessionResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt,
		User:         NewUserResponse(session.User),
	}
}

// NewRegisterResponse maps a registration confirmation.
func NewRegisterResponse(result *service.RegistrationResult) RegisterResponse {
	return RegisterResponse{
		Email:            result.Email,
		FullName:         result.FullName,
		OrganizationName: result.OrganizationName,
	}
}
