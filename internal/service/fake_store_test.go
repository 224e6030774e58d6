package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/repository"
)

// fakeData is an in-memory stand-in for the database. The fake tx runner
// clones it per transaction so rollbacks discard staged writes, mirroring
// what Postgres gives the real store.
type fakeData struct {
	tenants       map[string]domain.Tenant
	roles         map[domain.RoleCode]domain.Role
	users         map[string]domain.User
	plans         map[domain.PlanCode]domain.Plan
	subscriptions []domain.Subscription
	channels      map[string]domain.Channel
	quickReplies  map[string]domain.QuickReply

	nextID int

	failTenantCreate       error
	failUserCreate         error
	failSubscriptionCreate error
}

func newFakeData() *fakeData {
	return &fakeData{
		tenants: map[string]domain.Tenant{},
		roles: map[domain.RoleCode]domain.Role{
			domain.RoleCompanyAdmin: {ID: 1, Code: domain.RoleCompanyAdmin},
			domain.RoleAgent:        {ID: 2, Code: domain.RoleAgent},
		},
		users: map[string]domain.User{},
		plans: map[domain.PlanCode]domain.Plan{
			domain.PlanFree:     {ID: 1, Code: domain.PlanFree, Limits: []byte(`{}`), Features: []byte(`[]`)},
			domain.PlanPro:      {ID: 2, Code: domain.PlanPro, Limits: []byte(`{}`), Features: []byte(`[]`)},
			domain.PlanBusiness: {ID: 3, Code: domain.PlanBusiness, Limits: []byte(`{}`), Features: []byte(`[]`)},
		},
		channels:     map[string]domain.Channel{},
		quickReplies: map[string]domain.QuickReply{},
	}
}

func (d *fakeData) clone() *fakeData {
	c := &fakeData{
		tenants:                make(map[string]domain.Tenant, len(d.tenants)),
		roles:                  make(map[domain.RoleCode]domain.Role, len(d.roles)),
		users:                  make(map[string]domain.User, len(d.users)),
		plans:                  make(map[domain.PlanCode]domain.Plan, len(d.plans)),
		subscriptions:          append([]domain.Subscription{}, d.subscriptions...),
		channels:               make(map[string]domain.Channel, len(d.channels)),
		quickReplies:           make(map[string]domain.QuickReply, len(d.quickReplies)),
		nextID:                 d.nextID,
		failTenantCreate:       d.failTenantCreate,
		failUserCreate:         d.failUserCreate,
		failSubscriptionCreate: d.failSubscriptionCreate,
	}
	for k, v := range d.tenants {
		c.tenants[k] = v
	}
	for k, v := range d.roles {
		c.roles[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.plans {
		c.plans[k] = v
	}
	for k, v := range d.channels {
		c.channels[k] = v
	}
	for k, v := range d.quickReplies {
		c.quickReplies[k] = v
	}
	return c
}

func (d *fakeData) newID(prefix string) string {
	d.nextID++
	return fmt.Sprintf("%s-%d", prefix, d.nextID)
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_lower_idx"}
}

// fakeStore implements repository.Store over fakeData.
type fakeStore struct {
	data *fakeData
}

func newFakeStore(data *fakeData) repository.Store {
	return &fakeStore{data: data}
}

func (s *fakeStore) Tenants() repository.TenantRepository             { return &fakeTenantRepo{s.data} }
func (s *fakeStore) Roles() repository.RoleRepository                 { return &fakeRoleRepo{s.data} }
func (s *fakeStore) Users() repository.UserRepository                 { return &fakeUserRepo{s.data} }
func (s *fakeStore) Plans() repository.PlanRepository                 { return &fakePlanRepo{s.data} }
func (s *fakeStore) Subscriptions() repository.SubscriptionRepository { return &fakeSubscriptionRepo{s.data} }
func (s *fakeStore) Channels() repository.ChannelRepository           { return &fakeChannelRepo{s.data} }
func (s *fakeStore) QuickReplies() repository.QuickReplyRepository    { return &fakeQuickReplyRepo{s.data} }

// fakeTxRunner applies fn to a scratch copy and keeps it only on success.
type fakeTxRunner struct {
	data *fakeData
}

func (r *fakeTxRunner) InTx(ctx context.Context, fn func(ctx context.Context, s repository.Store) error) error {
	scratch := r.data.clone()
	if err := fn(ctx, newFakeStore(scratch)); err != nil {
		return err
	}
	*r.data = *scratch
	return nil
}

type fakeTenantRepo struct{ d *fakeData }

func (r *fakeTenantRepo) Create(_ context.Context, tenant *domain.Tenant) error {
	if r.d.failTenantCreate != nil {
		return r.d.failTenantCreate
	}
	tenant.ID = r.d.newID("tenant")
	tenant.CreatedAt = time.Now()
	tenant.UpdatedAt = tenant.CreatedAt
	r.d.tenants[tenant.ID] = *tenant
	return nil
}

func (r *fakeTenantRepo) GetByID(_ context.Context, id string) (*domain.Tenant, error) {
	tenant, ok := r.d.tenants[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &tenant, nil
}

type fakeRoleRepo struct{ d *fakeData }

func (r *fakeRoleRepo) GetByCode(_ context.Context, code domain.RoleCode) (*domain.Role, error) {
	role, ok := r.d.roles[code]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &role, nil
}

type fakeUserRepo struct{ d *fakeData }

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.d.failUserCreate != nil {
		return r.d.failUserCreate
	}
	for _, existing := range r.d.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return uniqueViolation()
		}
	}
	user.ID = r.d.newID("user")
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.d.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.d.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.d.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range r.d.users {
		if strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) EmailExistsExcluding(_ context.Context, email, excludeID string) (bool, error) {
	for id, user := range r.d.users {
		if id != excludeID && strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ListByTenant(_ context.Context, tenantID string) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.d.users {
		if user.TenantID == tenantID {
			result = append(result, user)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeUserRepo) GetByTenantAndID(_ context.Context, tenantID, id string) (*domain.User, error) {
	user, ok := r.d.users[id]
	if !ok || user.TenantID != tenantID {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) UpdateByTenant(_ context.Context, tenantID, id string, patch repository.UserPatch) (*domain.User, error) {
	user, ok := r.d.users[id]
	if !ok || user.TenantID != tenantID || patch.Empty() {
		return nil, pgx.ErrNoRows
	}
	if patch.Email != nil {
		for otherID, other := range r.d.users {
			if otherID != id && strings.EqualFold(other.Email, *patch.Email) {
				return nil, uniqueViolation()
			}
		}
		user.Email = *patch.Email
	}
	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.PasswordHash != nil {
		user.PasswordHash = *patch.PasswordHash
	}
	if patch.Position != nil {
		position := *patch.Position
		user.Position = &position
	}
	if patch.RoleID != nil {
		user.RoleID = *patch.RoleID
		for _, role := range r.d.roles {
			if role.ID == *patch.RoleID {
				user.RoleCode = role.Code
			}
		}
	}
	user.UpdatedAt = time.Now()
	r.d.users[id] = user
	return &user, nil
}

func (r *fakeUserRepo) DeleteByTenant(_ context.Context, tenantID, id string) error {
	user, ok := r.d.users[id]
	if !ok || user.TenantID != tenantID {
		return pgx.ErrNoRows
	}
	delete(r.d.users, id)
	return nil
}

func (r *fakeUserRepo) UpdateLanguage(_ context.Context, id, language string) (*domain.User, error) {
	user, ok := r.d.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	user.PreferredLanguage = language
	user.UpdatedAt = time.Now()
	r.d.users[id] = user
	return &user, nil
}

type fakePlanRepo struct{ d *fakeData }

func (r *fakePlanRepo) GetByCode(_ context.Context, code domain.PlanCode) (*domain.Plan, error) {
	plan, ok := r.d.plans[code]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &plan, nil
}

func (r *fakePlanRepo) List(_ context.Context) ([]domain.Plan, error) {
	result := make([]domain.Plan, 0, len(r.d.plans))
	for _, plan := range r.d.plans {
		result = append(result, plan)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type fakeSubscriptionRepo struct{ d *fakeData }

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *domain.Subscription) error {
	if r.d.failSubscriptionCreate != nil {
		return r.d.failSubscriptionCreate
	}
	sub.ID = r.d.newID("sub")
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	r.d.subscriptions = append(r.d.subscriptions, *sub)
	return nil
}

func (r *fakeSubscriptionRepo) GetByTenant(_ context.Context, tenantID string) (*domain.Subscription, error) {
	for i := len(r.d.subscriptions) - 1; i >= 0; i-- {
		if r.d.subscriptions[i].TenantID == tenantID {
			sub := r.d.subscriptions[i]
			return &sub, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeChannelRepo struct{ d *fakeData }

func (r *fakeChannelRepo) Create(_ context.Context, channel *domain.Channel) error {
	channel.ID = r.d.newID("channel")
	channel.CreatedAt = time.Now()
	channel.UpdatedAt = channel.CreatedAt
	r.d.channels[channel.ID] = *channel
	return nil
}

func (r *fakeChannelRepo) ListByTenant(_ context.Context, tenantID string) ([]domain.Channel, error) {
	var result []domain.Channel
	for _, channel := range r.d.channels {
		if channel.TenantID == tenantID {
			result = append(result, channel)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeChannelRepo) CountByType(_ context.Context, tenantID string) (map[domain.ChannelType]int, error) {
	counts := make(map[domain.ChannelType]int)
	for _, channel := range r.d.channels {
		if channel.TenantID == tenantID {
			counts[channel.Type]++
		}
	}
	return counts, nil
}

func (r *fakeChannelRepo) DeleteByTenant(_ context.Context, tenantID, id string) error {
	channel, ok := r.d.channels[id]
	if !ok || channel.TenantID != tenantID {
		return pgx.ErrNoRows
	}
	delete(r.d.channels, id)
	return nil
}

type fakeQuickReplyRepo struct{ d *fakeData }

func (r *fakeQuickReplyRepo) Create(_ context.Context, reply *domain.QuickReply) error {
	reply.ID = r.d.newID("reply")
	reply.CreatedAt = time.Now()
	reply.UpdatedAt = reply.CreatedAt
	r.d.quickReplies[reply.ID] = *reply
	return nil
}

func (r *fakeQuickReplyRepo) ListActiveByTenant(_ context.Context, tenantID string) ([]domain.QuickReply, error) {
	var result []domain.QuickReply
	for _, reply := range r.d.quickReplies {
		if reply.TenantID == tenantID && reply.IsActive {
			result = append(result, reply)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeQuickReplyRepo) GetActiveByTenantAndID(_ context.Context, tenantID, id string) (*domain.QuickReply, error) {
	reply, ok := r.d.quickReplies[id]
	if !ok || reply.TenantID != tenantID || !reply.IsActive {
		return nil, pgx.ErrNoRows
	}
	return &reply, nil
}

func (r *fakeQuickReplyRepo) UpdateByTenant(_ context.Context, tenantID, id string, patch repository.QuickReplyPatch) (*domain.QuickReply, error) {
	reply, ok := r.d.quickReplies[id]
	if !ok || reply.TenantID != tenantID || !reply.IsActive || patch.Empty() {
		return nil, pgx.ErrNoRows
	}
	if patch.Title != nil {
		reply.Title = *patch.Title
	}
	if patch.Category != nil {
		reply.Category = *patch.Category
	}
	if patch.Content != nil {
		reply.Content = *patch.Content
	}
	reply.UpdatedAt = time.Now()
	r.d.quickReplies[id] = reply
	return &reply, nil
}

func (r *fakeQuickReplyRepo) DeactivateByTenant(_ context.Context, tenantID, id string) error {
	reply, ok := r.d.quickReplies[id]
	if !ok || reply.TenantID != tenantID || !reply.IsActive {
		return pgx.ErrNoRows
	}
	reply.IsActive = false
	r.d.quickReplies[id] = reply
	return nil
}

// fakeSessionRepo keeps refresh tokens in a map.
type fakeSessionRepo struct {
	sessions map[string]string
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]string{}}
}

func (r *fakeSessionRepo) Save(_ context.Context, token, userID string, _ time.Duration) error {
	r.sessions[token] = userID
	return nil
}

func (r *fakeSessionRepo) Consume(_ context.Context, token string) (string, error) {
	userID, ok := r.sessions[token]
	if !ok {
		return "", repository.ErrSessionNotFound
	}
	delete(r.sessions, token)
	return userID, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}
