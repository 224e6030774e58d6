package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/messaging-service/internal/domain"
)

// ChannelRepository manages persistence for connected channels. Every query
// filters by tenant.
type ChannelRepository interface {
	Create(ctx context.Context, channel *domain.Channel) error
	ListByTenant(ctx context.Context, tenantID string) ([]domain.Channel, error)
	CountByType(ctx context.Context, tenantID string) (map[domain.ChannelType]int, error)
	DeleteByTenant(ctx context.Context, tenantID, id string) error
}

type channelRepository struct {
	db Querier
}

// NewChannelRepository returns a Postgres-backed implementation.
func NewChannelRepository(db Querier) ChannelRepository {
	return &channelRepository{db: db}
}

func (r *channelRepository) Create(ctx context.Context, channel *domain.Channel) error {
	const query = `
        INSERT INTO channels
            (tenant_id, type, external_account_id, display_name, status, waba_id, access_token, verify_token)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		channel.TenantID,
		channel.Type,
		channel.ExternalAccountID,
		channel.DisplayName,
		channel.Status,
		channel.WabaID,
		channel.AccessToken,
		channel.VerifyToken,
	).Scan(&channel.ID, &channel.CreatedAt, &channel.UpdatedAt)
}

func (r *channelRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.Channel, error) {
	const query = `
        SELECT id, tenant_id, type, coalesce(external_account_id, ''), display_name,
               status, waba_id, coalesce(access_token, ''), coalesce(verify_token, ''),
               created_at, updated_at
        FROM channels
        WHERE tenant_id=$1
        ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Channel
	for rows.Next() {
		var channel domain.Channel
		if err := rows.Scan(
			&channel.ID,
			&channel.TenantID,
			&channel.Type,
			&channel.ExternalAccountID,
			&channel.DisplayName,
			&channel.Status,
			&channel.WabaID,
			&channel.AccessToken,
			&channel.VerifyToken,
			&channel.CreatedAt,
			&channel.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, channel)
	}
	return result, rows.Err()
}

func (r *channelRepository) CountByType(ctx context.Context, tenantID string) (map[domain.ChannelType]int, error) {
	const query = `
        SELECT type, count(*)
        FROM channels
        WHERE tenant_id=$1
        GROUP BY type`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ChannelType]int)
	for rows.Next() {
		var channelType domain.ChannelType
		var total int
		if err := rows.Scan(&channelType, &total); err != nil {
			return nil, err
		}
		counts[channelType] = total
	}
	return counts, rows.Err()
}

func (r *channelRepository) DeleteByTenant(ctx context.Context, tenantID, id string) error {
	const query = `DELETE FROM channels WHERE tenant_id=$1 AND id=$2`

	cmd, err := r.db.Exec(ctx, query, tenantID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
