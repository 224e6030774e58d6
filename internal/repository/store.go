package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so the same repositories run inside
// and outside transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store bundles the repositories over a single Querier.
type Store interface {
	Tenants() TenantRepository
	Roles() RoleRepository
	Users() UserRepository
	Plans() PlanRepository
	Subscriptions() SubscriptionRepository
	Channels() ChannelRepository
	QuickReplies() QuickReplyRepository
}

type pgStore struct {
	q Querier
}

// NewStore builds a Store over the given Querier (pool or transaction).
func NewStore(q Querier) Store {
	return &pgStore{q: q}
}

func (s *pgStore) Tenants() TenantRepository              { return NewTenantRepository(s.q) }
func (s *pgStore) Roles() RoleRepository                  { return NewRoleRepository(s.q) }
func (s *pgStore) Users() UserRepository                  { return NewUserRepository(s.q) }
func (s *pgStore) Plans() PlanRepository                  { return NewPlanRepository(s.q) }
func (s *pgStore) Subscriptions() SubscriptionRepository  { return NewSubscriptionRepository(s.q) }
func (s *pgStore) Channels() ChannelRepository            { return NewChannelRepository(s.q) }
func (s *pgStore) QuickReplies() QuickReplyRepository     { return NewQuickReplyRepository(s.q) }

// TxRunner runs a function against a Store scoped to one database
// transaction. The function's error rolls back every write.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}

type pgxTxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner creates a TxRunner backed by the given pool.
func NewTxRunner(pool *pgxpool.Pool) TxRunner {
	return &pgxTxRunner{pool: pool}
}

func (r *pgxTxRunner) InTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op once committed
	}()

	if err := fn(ctx, NewStore(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
