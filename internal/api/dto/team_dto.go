package dto

import (
	"time"

	"github.com/spec-kit/messaging-service/internal/domain"
)

// TeamMemberCreateRequest payload for adding a member.
type TeamMemberCreateRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Position string `json:"position"`
}

// TeamMemberUpdateRequest payload for a partial member update. Absent fields
// are left unchanged.
type TeamMemberUpdateRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Position *string `json:"position"`
}

// TeamMemberResponse is the member list/detail shape.
type TeamMemberResponse struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	FullName  string          `json:"full_name"`
	Position  string          `json:"position"`
	Role      domain.RoleCode `json:"role"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewTeamMemberResponse maps a domain user to the member shape.
func NewTeamMemberResponse(user *domain.User) TeamMemberResponse {
	return TeamMemberResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Position:  user.PositionOrEmpty(),
		Role:      user.RoleCode,
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
	}
}

// NewTeamMemberResponses maps a slice of members.
func NewTeamMemberResponses(users []domain.User) []TeamMemberResponse {
	out := make([]TeamMemberResponse, 0, len(users))
	for i := range users {
		out = append(out, NewTeamMemberResponse(&users[i]))
	}
	return out
}
