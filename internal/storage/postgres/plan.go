package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"atomizer/internal/domain"
)

// PlanStore reads plan tiers from user_plans. Unknown users are on the free plan.
type PlanStore struct {
	db *sqlx.DB
}

func NewPlanStore(db *sqlx.DB) *PlanStore {
	return &PlanStore{db: db}
}

func (s *PlanStore) Plan(ctx context.Context, userID string) (domain.Plan, error) {
	var plan string
	err := s.db.GetContext(ctx, &plan, `SELECT plan FROM user_plans WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PlanFree, nil
	}
	if err != nil {
		return "", err
	}
	return domain.ParsePlan(plan), nil
}

func (s *PlanStore) SetPlan(ctx context.Context, userID string, plan domain.Plan) error {
	query := `
		INSERT INTO user_plans (user_id, plan) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET plan = EXCLUDED.plan, updated_at = NOW()`

	_, err := s.db.ExecContext(ctx, query, userID, plan)
	return err
}
