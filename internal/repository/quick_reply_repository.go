package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/messaging-service/internal/domain"
)

// QuickReplyPatch carries optional field updates. Nil means unchanged.
type QuickReplyPatch struct {
	Title    *string
	Category *domain.QuickReplyCategory
	Content  *string
}

// Empty reports whether the patch changes nothing.
func (p QuickReplyPatch) Empty() bool {
	return p.Title == nil && p.Category == nil && p.Content == nil
}

// QuickReplyRepository manages persistence for canned responses. Removal is
// a soft delete.
type QuickReplyRepository interface {
	Create(ctx context.Context, reply *domain.QuickReply) error
	ListActiveByTenant(ctx context.Context, tenantID string) ([]domain.QuickReply, error)
	GetActiveByTenantAndID(ctx context.Context, tenantID, id string) (*domain.QuickReply, error)
	UpdateByTenant(ctx context.Context, tenantID, id string, patch QuickReplyPatch) (*domain.QuickReply, error)
	DeactivateByTenant(ctx context.Context, tenantID, id string) error
}

type quickReplyRepository struct {
	db Querier
}

// NewQuickReplyRepository returns a Postgres-backed implementation.
func NewQuickReplyRepository(db Querier) QuickReplyRepository {
	return &quickReplyRepository{db: db}
}

const quickReplyColumns = `
        id, tenant_id, title, shortcut, category, content, language, is_active,
        created_at, updated_at`

func scanQuickReply(row pgx.Row) (*domain.QuickReply, error) {
	var reply domain.QuickReply
	if err := row.Scan(
		&reply.ID,
		&reply.TenantID,
		&reply.Title,
		&reply.Shortcut,
		&reply.Category,
		&reply.Content,
		&reply.Language,
		&reply.IsActive,
		&reply.CreatedAt,
		&reply.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *quickReplyRepository) Create(ctx context.Context, reply *domain.QuickReply) error {
	const query = `
        INSERT INTO quick_replies
            (tenant_id, title, shortcut, category, content, language, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		reply.TenantID,
		reply.Title,
		reply.Shortcut,
		reply.Category,
		reply.Content,
		reply.Language,
		reply.IsActive,
	).Scan(&reply.ID, &reply.CreatedAt, &reply.UpdatedAt)
}

func (r *quickReplyRepository) ListActiveByTenant(ctx context.Context, tenantID string) ([]domain.QuickReply, error) {
	query := `SELECT ` + quickReplyColumns + `
        FROM quick_replies
        WHERE tenant_id=$1 AND is_active=TRUE
        ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.QuickReply
	for rows.Next() {
		reply, err := scanQuickReply(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *reply)
	}
	return result, rows.Err()
}

func (r *quickReplyRepository) GetActiveByTenantAndID(ctx context.Context, tenantID, id string) (*domain.QuickReply, error) {
	query := `SELECT ` + quickReplyColumns + `
        FROM quick_replies
        WHERE tenant_id=$1 AND id=$2 AND is_active=TRUE`
	return scanQuickReply(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *quickReplyRepository) UpdateByTenant(ctx context.Context, tenantID, id string, patch QuickReplyPatch) (*domain.QuickReply, error) {
	if patch.Empty() {
		return nil, pgx.ErrNoRows
	}

	sets := make([]string, 0, 3)
	args := []any{tenantID, id}
	idx := 3

	appendSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s=$%d", column, idx))
		args = append(args, value)
		idx++
	}

	if patch.Title != nil {
		appendSet("title", *patch.Title)
	}
	if patch.Category != nil {
		appendSet("category", *patch.Category)
	}
	if patch.Content != nil {
		appendSet("content", *patch.Content)
	}

	query := fmt.Sprintf(`
        UPDATE quick_replies SET %s, updated_at=NOW()
        WHERE tenant_id=$1 AND id=$2 AND is_active=TRUE
        RETURNING %s`, strings.Join(sets, ", "), quickReplyColumns)

	return scanQuickReply(r.db.QueryRow(ctx, query, args...))
}

func (r *quickReplyRepository) DeactivateByTenant(ctx context.Context, tenantID, id string) error {
	const query = `
        UPDATE quick_replies SET is_active=FALSE, updated_at=NOW()
        WHERE tenant_id=$1 AND id=$2 AND is_active=TRUE`

	cmd, err := r.db.Exec(ctx, query, tenantID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
