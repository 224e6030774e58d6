package repository

import (
	"context"

	"github.com/spec-kit/messaging-service/internal/domain"
)

// RoleRepository reads the seeded role lookup table.
type RoleRepository interface {
	GetByCode(ctx context.Context, code domain.RoleCode) (*domain.Role, error)
}

type roleRepository struct {
	db Querier
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(db Querier) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) GetByCode(ctx context.Context, code domain.RoleCode) (*domain.Role, error) {
	const query = `SELECT id, code FROM roles WHERE code=$1`

	var role domain.Role
	if err := r.db.QueryRow(ctx, query, code).Scan(&role.ID, &role.Code); err != nil {
		return nil, err
	}
	return &role, nil
}
