package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/messaging-service/internal/domain"
)

func seedMember(data *fakeData, tenantID, email string, role domain.RoleCode) *domain.User {
	user := domain.User{
		ID:                data.newID("user"),
		TenantID:          tenantID,
		RoleID:            data.roles[role].ID,
		RoleCode:          role,
		Email:             email,
		PasswordHash:      "x:y",
		FullName:          "Seeded User",
		PreferredLanguage: "en",
		Status:            domain.UserStatusActive,
	}
	data.users[user.ID] = user
	return &user
}

func TestTeamCreateMember(t *testing.T) {
	data := newFakeData()
	svc := NewTeamService(newFakeStore(data), nil)

	member, err := svc.Create(context.Background(), "tenant-1", NewTeamMember{
		FullName: "Sam Agent",
		Email:    "Sam@Acme.Test",
		Password: "s3cret!",
		Role:     domain.RoleAgent,
		Position: "Support",
	})
	require.NoError(t, err)
	assert.Equal(t, "sam@acme.test", member.Email)
	assert.Equal(t, domain.RoleAgent, member.RoleCode)
	assert.Equal(t, "Support", member.PositionOrEmpty())
	assert.Equal(t, "en", member.PreferredLanguage)
}

func TestTeamCreateRejectsTakenEmailAcrossTenants(t *testing.T) {
	data := newFakeData()
	seedMember(data, "tenant-other", "sam@acme.test", domain.RoleAgent)
	svc := NewTeamService(newFakeStore(data), nil)

	_, err := svc.Create(context.Background(), "tenant-1", NewTeamMember{
		FullName: "Sam Agent",
		Email:    "sam@acme.test",
		Password: "s3cret!",
		Role:     domain.RoleAgent,
	})
	require.Error(t, err)
	assert.Equal(t, "team.email_exists", domainCode(t, err))
}

func TestTeamUpdateEmptyPatchRejected(t *testing.T) {
	data := newFakeData()
	member := seedMember(data, "tenant-1", "sam@acme.test", domain.RoleAgent)
	svc := NewTeamService(newFakeStore(data), nil)

	_, err := svc.Update(context.Background(), "tenant-1", member.ID, TeamMemberPatch{})
	require.Error(t, err)
	assert.Equal(t, "team.no_fields_to_update", domainCode(t, err))
}

func TestTeamUpdateChangesRole(t *testing.T) {
	data := newFakeData()
	member := seedMember(data, "tenant-1", "sam@acme.test", domain.RoleAgent)
	svc := NewTeamService(newFakeStore(data), nil)

	admin := domain.RoleCompanyAdmin
	updated, err := svc.Update(context.Background(), "tenant-1", member.ID, TeamMemberPatch{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCompanyAdmin, updated.RoleCode)
}

func TestTeamUpdateScopedToTenant(t *testing.T) {
	data := newFakeData()
	member := seedMember(data, "tenant-1", "sam@acme.test", domain.RoleAgent)
	svc := NewTeamService(newFakeStore(data), nil)

	name := "New Name"
	_, err := svc.Update(context.Background(), "tenant-2", member.ID, TeamMemberPatch{FullName: &name})
	require.Error(t, err)
	assert.Equal(t, "team.not_found", domainCode(t, err))
}

func TestTeamRemoveAgent(t *testing.T) {
	data := newFakeData()
	member := seedMember(data, "tenant-1", "sam@acme.test", domain.RoleAgent)
	svc := NewTeamService(newFakeStore(data), nil)

	require.NoError(t, svc.Remove(context.Background(), "tenant-1", member.ID))
	assert.Empty(t, data.users)
}

func TestTeamRemoveAdminRejected(t *testing.T) {
	data := newFakeData()
	admin := seedMember(data, "tenant-1", "boss@acme.test", domain.RoleCompanyAdmin)
	svc := NewTeamService(newFakeStore(data), nil)

	err := svc.Remove(context.Background(), "tenant-1", admin.ID)
	require.Error(t, err)
	assert.Equal(t, "team.cannot_delete_admin", domainCode(t, err))
	assert.Len(t, data.users, 1, "admin must still exist")
}

func TestTeamRemoveUnknownMember(t *testing.T) {
	data := newFakeData()
	svc := NewTeamService(newFakeStore(data), nil)

	err := svc.Remove(context.Background(), "tenant-1", "missing")
	require.Error(t, err)
	assert.Equal(t, "team.not_found", domainCode(t, err))
}
