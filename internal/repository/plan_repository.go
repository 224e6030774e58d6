package repository

import (
	"context"

	"github.com/spec-kit/messaging-service/internal/domain"
)

// PlanRepository reads the seeded plan catalog.
type PlanRepository interface {
	GetByCode(ctx context.Context, code domain.PlanCode) (*domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
}

type planRepository struct {
	db Querier
}

// NewPlanRepository returns a Postgres-backed implementation.
func NewPlanRepository(db Querier) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) GetByCode(ctx context.Context, code domain.PlanCode) (*domain.Plan, error) {
	const query = `SELECT id, code, limits, features FROM plans WHERE code=$1`

	var plan domain.Plan
	if err := r.db.QueryRow(ctx, query, code).Scan(
		&plan.ID,
		&plan.Code,
		&plan.Limits,
		&plan.Features,
	); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) List(ctx context.Context) ([]domain.Plan, error) {
	const query = `SELECT id, code, limits, features FROM plans ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Plan
	for rows.Next() {
		var plan domain.Plan
		if err := rows.Scan(&plan.ID, &plan.Code, &plan.Limits, &plan.Features); err != nil {
			return nil, err
		}
		result = append(result, plan)
	}
	return result, rows.Err()
}
