package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/config"
	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/events"
	"github.com/spec-kit/messaging-service/internal/repository"
	"github.com/spec-kit/messaging-service/pkg/util"
)

const (
	defaultLanguage    = "en"
	freePlanPeriodDays = 30
)

// decoyDigest is verified against when login hits an unknown email, so the
// absent-user and wrong-password paths share the same latency class.
var decoyDigest = sync.OnceValue(func() string {
	digest, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		return ""
	}
	return digest
})

// Registration captures a sign-up request after handler-level validation.
type Registration struct {
	FirstName        string
	LastName         string
	OrganizationName string
	Email            string
	Password         string
}

// RegistrationResult is the confirmation payload. It never carries the
// password or its digest.
type RegistrationResult struct {
	Email            string
	FullName         string
	OrganizationName string
}

// Session bundles issued tokens with the authenticated user.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         *domain.User
}

// AuthService coordinates tenant provisioning and login flows.
type AuthService struct {
	store      repository.Store
	tx         repository.TxRunner
	sessions   repository.SessionRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	refreshTTL time.Duration
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	Store      repository.Store
	TxRunner   repository.TxRunner
	Sessions   repository.SessionRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		store:      deps.Store,
		tx:         deps.TxRunner,
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		refreshTTL: cfg.Auth.RefreshTokenTTL(),
	}
}

// Register provisions a new tenant, its administrator, and its default
// subscription as a single transaction. Partial tenants never persist: any
// failure after the transaction begins rolls back every write.
func (s *AuthService) Register(ctx context.Context, reg Registration) (*RegistrationResult, error) {
	email := util.NormalizeEmail(reg.Email)

	// Best-effort early rejection. The unique index on lower(email) is the
	// authoritative guard against concurrent registrations.
	exists, err := s.store.Users().EmailExists(ctx, email)
	if err != nil {
		return nil, util.MapError(err)
	}
	if exists {
		return nil, util.NewConflict("auth.email_already_exists", "email already registered")
	}

	tenantName := trimmed(reg.OrganizationName)
	fullName := util.FullName(reg.FirstName, reg.LastName)

	digest, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	tenant := &domain.Tenant{
		Name: tenantName,
		Slug: util.TenantSlug(tenantName),
	}

	txErr := s.tx.InTx(ctx, func(ctx context.Context, store repository.Store) error {
		if err := store.Tenants().Create(ctx, tenant); err != nil {
			return util.NewConfigError("tenant.create_failed", err)
		}

		role, err := store.Roles().GetByCode(ctx, domain.RoleCompanyAdmin)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return util.NewConfigError("auth.role_not_found", err)
			}
			return err
		}

		user := &domain.User{
			TenantID:          tenant.ID,
			RoleID:            role.ID,
			RoleCode:          role.Code,
			Email:             email,
			PasswordHash:      digest,
			FullName:          fullName,
			PreferredLanguage: defaultLanguage,
			Status:            domain.UserStatusActive,
		}
		if err := store.Users().Create(ctx, user); err != nil {
			return err
		}

		plan, err := store.Plans().GetByCode(ctx, domain.PlanFree)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return util.NewConfigError("subscription.plan_not_found", err)
			}
			return err
		}

		now := time.Now()
		sub := &domain.Subscription{
			TenantID:           tenant.ID,
			PlanID:             plan.ID,
			PlanCode:           plan.Code,
			Status:             domain.SubscriptionActive,
			CurrentPeriodStart: now,
			CurrentPeriodEnd:   now.AddDate(0, 0, freePlanPeriodDays),
			CancelAtPeriodEnd:  false,
		}
		return store.Subscriptions().Create(ctx, sub)
	})
	if txErr != nil {
		// Only the email index reports a duplicate registration; a slug
		// collision is a 23505 too and must stay a server-side failure.
		if isDuplicateEmail(txErr) {
			return nil, util.NewConflict("auth.email_already_exists", "email already registered")
		}
		return nil, util.MapError(txErr)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTenantRegistered,
			TenantID:  tenant.ID,
			Timestamp: time.Now(),
			Payload: events.TenantRegisteredPayload{
				TenantName: tenant.Name,
				TenantSlug: tenant.Slug,
				AdminEmail: email,
			},
		})
	}

	return &RegistrationResult{
		Email:            email,
		FullName:         fullName,
		OrganizationName: tenantName,
	}, nil
}

// Login authenticates by normalized email and password. The failure is
// indistinguishable between unknown user and wrong password: same error,
// same scrypt work.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.store.Users().GetByEmail(ctx, util.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			auth.VerifyPassword(password, decoyDigest())
			return nil, invalidCredentials()
		}
		return nil, util.MapError(err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, invalidCredentials()
	}

	return s.issueSession(ctx, user)
}

// Refresh rotates a refresh token and issues a new session. The old token
// is consumed whether or not issuance succeeds.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	userID, err := s.sessions.Consume(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, util.NewUnauthorized("auth.invalid_token", "invalid or expired refresh token")
		}
		return nil, util.MapError(err)
	}

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewUnauthorized("auth.invalid_token", "invalid or expired refresh token")
		}
		return nil, util.MapError(err)
	}

	return s.issueSession(ctx, user)
}

// Logout discards the refresh token. Access tokens expire on their own.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.sessions.Delete(ctx, refreshToken)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*Session, error) {
	accessToken, expiresAt, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	refreshToken := uuid.NewString()
	if err := s.sessions.Save(ctx, refreshToken, user.ID, s.refreshTTL); err != nil {
		return nil, util.MapError(err)
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User:         user,
	}, nil
}

func invalidCredentials() error {
	return util.NewUnauthorized("auth.invalid_credentials", "invalid email or password")
}
