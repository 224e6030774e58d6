package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/events"
	"github.com/spec-kit/messaging-service/internal/repository"
	"github.com/spec-kit/messaging-service/pkg/util"
)

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

// isDuplicateEmail reports whether err is the unique violation raised by the
// email index, as opposed to any other 23505.
func isDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" &&
		pgErr.ConstraintName == repository.EmailUniqueConstraint
}

// NewTeamMember captures a create request after handler-level validation.
type NewTeamMember struct {
	FullName string
	Email    string
	Password string
	Role     domain.RoleCode
	Position string
}

// TeamMemberPatch carries optional updates. Nil fields are left unchanged.
type TeamMemberPatch struct {
	FullName *string
	Email    *string
	Password *string
	Role     *domain.RoleCode
	Position *string
}

// TeamService manages a tenant's members. Every operation is scoped to the
// effective tenant passed in by the caller.
type TeamService struct {
	store      repository.Store
	dispatcher events.Dispatcher
}

// NewTeamService builds the service.
func NewTeamService(store repository.Store, dispatcher events.Dispatcher) *TeamService {
	return &TeamService{store: store, dispatcher: dispatcher}
}

// List returns the tenant's members, newest first.
func (s *TeamService) List(ctx context.Context, tenantID string) ([]domain.User, error) {
	members, err := s.store.Users().ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return members, nil
}

// Create adds a member to the tenant. Email uniqueness is system-wide and
// case-insensitive, same as registration.
func (s *TeamService) Create(ctx context.Context, tenantID string, member NewTeamMember) (*domain.User, error) {
	email := util.NormalizeEmail(member.Email)

	exists, err := s.store.Users().EmailExists(ctx, email)
	if err != nil {
		return nil, util.MapError(err)
	}
	if exists {
		return nil, util.NewConflict("team.email_exists", "email already in use")
	}

	role, err := s.store.Roles().GetByCode(ctx, member.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewConfigError("team.role_not_found", err)
		}
		return nil, util.MapError(err)
	}

	digest, err := auth.HashPassword(member.Password)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	user := &domain.User{
		TenantID:          tenantID,
		RoleID:            role.ID,
		RoleCode:          role.Code,
		Email:             email,
		PasswordHash:      digest,
		FullName:          trimmed(member.FullName),
		Position:          optionalString(member.Position),
		PreferredLanguage: defaultLanguage,
		Status:            domain.UserStatusActive,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		if isDuplicateEmail(err) {
			return nil, util.NewConflict("team.email_exists", "email already in use")
		}
		return nil, util.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTeamMemberCreated,
			TenantID:  tenantID,
			Timestamp: time.Now(),
			Payload: events.TeamMemberCreatedPayload{
				UserID: user.ID,
				Email:  user.Email,
				Role:   user.RoleCode,
			},
		})
	}

	return user, nil
}

// Update applies a partial update to a member of the tenant.
func (s *TeamService) Update(ctx context.Context, tenantID, memberID string, patch TeamMemberPatch) (*domain.User, error) {
	if _, err := s.store.Users().GetByTenantAndID(ctx, tenantID, memberID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("team.not_found", "team member not found")
		}
		return nil, util.MapError(err)
	}

	repoPatch := repository.UserPatch{}

	if patch.FullName != nil {
		name := trimmed(*patch.FullName)
		repoPatch.FullName = &name
	}
	if patch.Email != nil {
		email := util.NormalizeEmail(*patch.Email)
		taken, err := s.store.Users().EmailExistsExcluding(ctx, email, memberID)
		if err != nil {
			return nil, util.MapError(err)
		}
		if taken {
			return nil, util.NewConflict("team.email_exists", "email already in use")
		}
		repoPatch.Email = &email
	}
	if patch.Password != nil {
		digest, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return nil, util.NewInternalError(err)
		}
		repoPatch.PasswordHash = &digest
	}
	if patch.Position != nil {
		repoPatch.Position = optionalString(*patch.Position)
		if repoPatch.Position == nil {
			empty := ""
			repoPatch.Position = &empty
		}
	}
	if patch.Role != nil {
		role, err := s.store.Roles().GetByCode(ctx, *patch.Role)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, util.NewConfigError("team.role_not_found", err)
			}
			return nil, util.MapError(err)
		}
		repoPatch.RoleID = &role.ID
	}

	if repoPatch.Empty() {
		return nil, util.NewValidationError("team.no_fields_to_update", "no fields to update", nil)
	}

	updated, err := s.store.Users().UpdateByTenant(ctx, tenantID, memberID, repoPatch)
	if err != nil {
		if isDuplicateEmail(err) {
			return nil, util.NewConflict("team.email_exists", "email already in use")
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("team.not_found", "team member not found")
		}
		return nil, util.MapError(err)
	}
	return updated, nil
}

// Remove deletes a member of the tenant. Users holding the administrative
// role can never be deleted through this path; demote first.
func (s *TeamService) Remove(ctx context.Context, tenantID, memberID string) error {
	member, err := s.store.Users().GetByTenantAndID(ctx, tenantID, memberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("team.not_found", "team member not found")
		}
		return util.MapError(err)
	}
	if member.RoleCode == domain.RoleCompanyAdmin {
		return util.NewConflict("team.cannot_delete_admin", "administrators cannot be deleted")
	}

	if err := s.store.Users().DeleteByTenant(ctx, tenantID, memberID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("team.not_found", "team member not found")
		}
		return util.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTeamMemberRemoved,
			TenantID:  tenantID,
			Timestamp: time.Now(),
			Payload:   events.TeamMemberRemovedPayload{UserID: memberID},
		})
	}
	return nil
}

func optionalString(s string) *string {
	trimmedVal := strings.TrimSpace(s)
	if trimmedVal == "" {
		return nil
	}
	return &trimmedVal
}
