package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/repository"
	"github.com/spec-kit/messaging-service/pkg/util"
)

// UserService handles profile operations for the authenticated user.
type UserService struct {
	store repository.Store
}

// NewUserService builds the service.
func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

// GetMe returns the caller's profile.
func (s *UserService) GetMe(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("users.not_found", "user not found")
		}
		return nil, util.MapError(err)
	}
	return user, nil
}

// UpdateLanguage sets the caller's preferred language.
func (s *UserService) UpdateLanguage(ctx context.Context, userID, language string) (*domain.User, error) {
	user, err := s.store.Users().UpdateLanguage(ctx, userID, language)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("users.not_found", "user not found")
		}
		return nil, util.MapError(err)
	}
	return user, nil
}
