package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/messaging-service/internal/config"
	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			RefreshTokenTTLHours:  1,
		},
	}
}

func newTestAuthService(data *fakeData) (*AuthService, *fakeSessionRepo) {
	sessions := newFakeSessionRepo()
	svc := NewAuthService(testConfig(), AuthDependencies{
		Store:    newFakeStore(data),
		TxRunner: &fakeTxRunner{data: data},
		Sessions: sessions,
	})
	return svc, sessions
}

func testRegistration() Registration {
	return Registration{
		FirstName:        "Jane",
		LastName:         "Doe",
		OrganizationName: "Acme Corp",
		Email:            "jane@acme.test",
		Password:         "s3cret!",
	}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *util.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func TestRegisterCreatesTenantAdminAndSubscription(t *testing.T) {
	data := newFakeData()
	svc, _ := newTestAuthService(data)

	result, err := svc.Register(context.Background(), testRegistration())
	require.NoError(t, err)
	assert.Equal(t, "jane@acme.test", result.Email)
	assert.Equal(t, "Jane Doe", result.FullName)
	assert.Equal(t, "Acme Corp", result.OrganizationName)

	require.Len(t, data.tenants, 1)
	require.Len(t, data.users, 1)
	require.Len(t, data.subscriptions, 1)

	for _, tenant := range data.tenants {
		assert.Equal(t, "Acme Corp", tenant.Name)
		assert.Contains(t, tenant.Slug, "acme-corp")
	}
	for _, user := range data.users {
		assert.Equal(t, domain.RoleCompanyAdmin, user.RoleCode)
		assert.Equal(t, "en", user.PreferredLanguage)
		assert.Equal(t, domain.UserStatusActive, user.Status)
		assert.NotEqual(t, "s3cret!", user.PasswordHash)
	}

	sub := data.subscriptions[0]
	assert.Equal(t, domain.PlanFree, sub.PlanCode)
	assert.Equal(t, domain.SubscriptionActive, sub.Status)
	assert.False(t, sub.CancelAtPeriodEnd)
	assert.WithinDuration(t, sub.CurrentPeriodStart.AddDate(0, 0, 30), sub.CurrentPeriodEnd, time.Second)
}

func TestRegisterRollsBackWhenSubscriptionFails(t *testing.T) {
	data := newFakeData()
	data.failSubscriptionCreate = errors.New("insert failed")
	svc, _ := newTestAuthService(data)

	_, err := svc.Register(context.Background(), testRegistration())
	require.Error(t, err)

	assert.Empty(t, data.tenants, "partial tenants must never exist")
	assert.Empty(t, data.users)
	assert.Empty(t, data.subscriptions)
}

func TestRegisterRollsBackWhenRoleSeedMissing(t *testing.T) {
	data := newFakeData()
	delete(data.roles, domain.RoleCompanyAdmin)
	svc, _ := newTestAuthService(data)

	_, err := svc.Register(context.Background(), testRegistration())
	require.Error(t, err)
	assert.Equal(t, "auth.role_not_found", domainCode(t, err))
	assert.Empty(t, data.tenants)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	data := newFakeData()
	svc, _ := newTestAuthService(data)

	_, err := svc.Register(context.Background(), testRegistration())
	require.NoError(t, err)

	second := testRegistration()
	second.OrganizationName = "Other Org"
	second.Email = "JANE@ACME.TEST" // case must not evade the check
	_, err = svc.Register(context.Background(), second)
	require.Error(t, err)
	assert.Equal(t, "auth.email_already_exists", domainCode(t, err))
	assert.Len(t, data.tenants, 1)
}

func TestRegisterSlugCollisionIsNotAnEmailConflict(t *testing.T) {
	data := newFakeData()
	data.failTenantCreate = &pgconn.PgError{Code: "23505", ConstraintName: "tenants_slug_key"}
	svc, _ := newTestAuthService(data)

	_, err := svc.Register(context.Background(), testRegistration())
	require.Error(t, err)
	assert.Equal(t, "tenant.create_failed", domainCode(t, err))
	assert.Empty(t, data.tenants)
	assert.Empty(t, data.users)
}

func TestRegisterTranslatesUniqueViolation(t *testing.T) {
	data := newFakeData()
	data.failUserCreate = uniqueViolation()
	svc, _ := newTestAuthService(data)

	_, err := svc.Register(context.Background(), testRegistration())
	require.Error(t, err)
	assert.Equal(t, "auth.email_already_exists", domainCode(t, err))
	assert.Empty(t, data.tenants, "unique violation must roll the tenant back")
}

func TestLoginNormalizesEmail(t *testing.T) {
	data := newFakeData()
	svc, _ := newTestAuthService(data)

	_, err := svc.Register(context.Background(), testRegistration())
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), "  JANE@Acme.Test ", "s3cret!")
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, "jane@acme.test", session.User.Email)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	data := newFakeData()
	svc, _ := newTestAuthService(data)

	_, err := svc.Register(context.Background(), testRegistration())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), "jane@acme.test", "not-it")
	_, unknownUser := svc.Login(context.Background(), "nobody@acme.test", "not-it")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, domainCode(t, wrongPassword), domainCode(t, unknownUser))
	assert.Equal(t, "auth.invalid_credentials", domainCode(t, unknownUser))
}

func TestRegisterThenLoginIssuesValidTokens(t *testing.T) {
	data := newFakeData()
	svc, _ := newTestAuthService(data)

	_, err := svc.Register(context.Background(), testRegistration())
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), "jane@acme.test", "s3cret!")
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.Subject)
	assert.Equal(t, session.User.TenantID, claims.TenantID)
	assert.Equal(t, domain.RoleCompanyAdmin, claims.Role)
}

func TestRefreshRotatesToken(t *testing.T) {
	data := newFakeData()
	svc, sessions := newTestAuthService(data)

	_, err := svc.Register(context.Background(), testRegistration())
	require.NoError(t, err)

	first, err := svc.Login(context.Background(), "jane@acme.test", "s3cret!")
	require.NoError(t, err)

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The consumed token is gone.
	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "auth.invalid_token", domainCode(t, err))

	require.NoError(t, svc.Logout(context.Background(), second.RefreshToken))
	assert.Empty(t, sessions.sessions)
}
