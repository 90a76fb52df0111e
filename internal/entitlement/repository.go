package entitlement

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"gympass/internal/gym"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Grant(ctx context.Context, userID int, kind Kind, gymID *int, tier *gym.Tier, planName string, months int) (*Entitlement, error) {
	if months <= 0 {
		months = 1
	}
	now := time.Now()
	validUntil := now.AddDate(0, months, 0)

	e := &Entitlement{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO entitlements (user_id, kind, gym_id, tier, plan_name, status, valid_from, valid_until)
		VALUES ($1, $2, $3, $4, $5, 'active', $6, $7)
		RETURNING id, user_id, gym_id, kind, tier, plan_name, status, valid_from, valid_until, created_at, updated_at
	`, userID, kind, gymID, tier, planName, now, validUntil).StructScan(e)

	return e, err
}

func (r *repository) GetActiveDirect(ctx context.Context, userID, gymID int) (*Entitlement, error) {
	e := &Entitlement{}
	err := r.db.GetContext(ctx, e, `
		SELECT id, user_id, gym_id, kind, tier, plan_name, status, valid_from, valid_until, created_at, updated_at
		FROM entitlements
		WHERE user_id = $1
		  AND gym_id = $2
		  AND kind = 'direct'
		  AND status = 'active'
		  AND valid_from <= NOW()
		  AND valid_until >= NOW()
		ORDER BY valid_until DESC
		LIMIT 1
	`, userID, gymID)
	if err != nil {
		return nil, err
	}

	return e, nil
}

// ListActiveMultiGym returns active multi-gym passes with the highest
// tier first, so the first row is the one a resolver should use.
func (r *repository) ListActiveMultiGym(ctx context.Context, userID int) ([]Entitlement, error) {
	ents := []Entitlement{}
	err := r.db.SelectContext(ctx, &ents, `
		SELECT id, user_id, gym_id, kind, tier, plan_name, status, valid_from, valid_until, created_at, updated_at
		FROM entitlements
		WHERE user_id = $1
		  AND kind = 'multi_gym'
		  AND status = 'active'
		  AND valid_from <= NOW()
		  AND valid_until >= NOW()
		ORDER BY
		  CASE tier
		    WHEN 'platinum' THEN 3
		    WHEN 'gold' THEN 2
		    WHEN 'silver' THEN 1
		    ELSE 0
		  END DESC,
		  created_at DESC
	`, userID)
	return ents, err
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]Entitlement, error) {
	ents := []Entitlement{}
	err := r.db.SelectContext(ctx, &ents, `
		SELECT id, user_id, gym_id, kind, tier, plan_name, status, valid_from, valid_until, created_at, updated_at
		FROM entitlements
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	return ents, err
}
