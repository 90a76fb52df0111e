package gym

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateGym(ctx context.Context, name, location string, managerID int, acceptsMultiGym bool, tier *Tier) (*Gym, error) {
	query := `
		INSERT INTO gyms (name, location, manager_id, accepts_multi_gym, tier)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, location, manager_id, accepts_multi_gym, tier, created_at
	`

	var g Gym
	err := r.db.GetContext(ctx, &g, query, name, location, managerID, acceptsMultiGym, tier)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

func (r *repository) GetAllGyms(ctx context.Context) ([]Gym, error) {
	query := `
		SELECT id, name, location, manager_id, accepts_multi_gym, tier, created_at
		FROM gyms
		ORDER BY created_at DESC
	`

	var gyms []Gym
	err := r.db.SelectContext(ctx, &gyms, query)
	if err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *repository) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	query := `
		SELECT id, name, location, manager_id, accepts_multi_gym, tier, created_at
		FROM gyms
		WHERE id = $1
	`

	var g Gym
	err := r.db.GetContext(ctx, &g, query, id)
	if err != nil {
		return nil, err
	}

	return &g, nil
}
