package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/messaging-service/internal/domain"
)

// EmailUniqueConstraint is the index enforcing system-wide, case-insensitive
// email uniqueness. Services match it to tell a duplicate registration apart
// from other unique violations.
const EmailUniqueConstraint = "users_email_lower_idx"

// UserPatch carries optional field updates for a team member. Nil means
// "leave unchanged". The repository binds each present field as a parameter;
// field values never reach the SQL text.
type UserPatch struct {
	FullName     *string
	Email        *string
	PasswordHash *string
	Position     *string
	RoleID       *int64
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.FullName == nil && p.Email == nil && p.PasswordHash == nil &&
		p.Position == nil && p.RoleID == nil
}

// UserRepository defines persistence access for credential holders. Email
// lookups run against the normalized (lowercased) form.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	EmailExistsExcluding(ctx context.Context, email, excludeID string) (bool, error)
	ListByTenant(ctx context.Context, tenantID string) ([]domain.User, error)
	GetByTenantAndID(ctx context.Context, tenantID, id string) (*domain.User, error)
	UpdateByTenant(ctx context.Context, tenantID, id string, patch UserPatch) (*domain.User, error)
	DeleteByTenant(ctx context.Context, tenantID, id string) error
	UpdateLanguage(ctx context.Context, id, language string) (*domain.User, error)
}

type userRepository struct {
	db Querier
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db Querier) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `
        u.id, u.tenant_id, u.role_id, r.code, u.email, u.password_hash,
        u.full_name, u.position, u.preferred_language, u.status,
        u.created_at, u.updated_at`

// Same shape for UPDATE ... RETURNING, where no join is available.
const updatedUserColumns = `
        u.id, u.tenant_id, u.role_id,
        (SELECT code FROM roles WHERE id=u.role_id),
        u.email, u.password_hash, u.full_name, u.position,
        u.preferred_language, u.status, u.created_at, u.updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.TenantID,
		&user.RoleID,
		&user.RoleCode,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Position,
		&user.PreferredLanguage,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users
            (tenant_id, role_id, email, password_hash, full_name, position, preferred_language, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		user.TenantID,
		user.RoleID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Position,
		user.PreferredLanguage,
		user.Status,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
        FROM users u JOIN roles r ON r.id = u.role_id
        WHERE u.id=$1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
        FROM users u JOIN roles r ON r.id = u.role_id
        WHERE lower(u.email)=$1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email)=$1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRepository) EmailExistsExcluding(ctx context.Context, email, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email)=$1 AND id<>$2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + `
        FROM users u JOIN roles r ON r.id = u.role_id
        WHERE u.tenant_id=$1
        ORDER BY u.created_at DESC`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

func (r *userRepository) GetByTenantAndID(ctx context.Context, tenantID, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
        FROM users u JOIN roles r ON r.id = u.role_id
        WHERE u.tenant_id=$1 AND u.id=$2`
	return scanUser(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *userRepository) UpdateByTenant(ctx context.Context, tenantID, id string, patch UserPatch) (*domain.User, error) {
	if patch.Empty() {
		return nil, pgx.ErrNoRows
	}

	sets := make([]string, 0, 5)
	args := []any{tenantID, id}
	idx := 3

	appendSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s=$%d", column, idx))
		args = append(args, value)
		idx++
	}

	if patch.FullName != nil {
		appendSet("full_name", *patch.FullName)
	}
	if patch.Email != nil {
		appendSet("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		appendSet("password_hash", *patch.PasswordHash)
	}
	if patch.Position != nil {
		appendSet("position", *patch.Position)
	}
	if patch.RoleID != nil {
		appendSet("role_id", *patch.RoleID)
	}

	// Subselect picks up the post-update role_id when the role changes.
	query := fmt.Sprintf(`
        UPDATE users AS u SET %s, updated_at=NOW()
        WHERE u.tenant_id=$1 AND u.id=$2
        RETURNING %s`, strings.Join(sets, ", "), updatedUserColumns)

	return scanUser(r.db.QueryRow(ctx, query, args...))
}

func (r *userRepository) DeleteByTenant(ctx context.Context, tenantID, id string) error {
	const query = `DELETE FROM users WHERE tenant_id=$1 AND id=$2`

	cmd, err := r.db.Exec(ctx, query, tenantID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdateLanguage(ctx context.Context, id, language string) (*domain.User, error) {
	query := `
        UPDATE users AS u SET preferred_language=$2, updated_at=NOW()
        WHERE u.id=$1
        RETURNING ` + updatedUserColumns
	return scanUser(r.db.QueryRow(ctx, query, id, language))
}
