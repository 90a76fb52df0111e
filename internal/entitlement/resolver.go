package entitlement

import (
	"context"
	"database/sql"
	"errors"

	"gympass/internal/gym"
)

type Reason string

const (
	ReasonNoEntitlement      Reason = "no_entitlement"
	ReasonGymNotMultiEnabled Reason = "gym_not_multi_gym_enabled"
)

// Result is the outcome of resolving whether a member may access a gym
// right now. A negative result is a normal outcome, not an error; the
// Reason lets callers render a precise message.
type Result struct {
	Granted bool   `json:"granted"`
	Kind    Kind   `json:"kind,omitempty"`
	Label   string `json:"label,omitempty"`
	Reason  Reason `json:"reason,omitempty"`
}

type Resolver interface {
	Resolve(ctx context.Context, userID, gymID int) (Result, error)
}

type resolver struct {
	repo Repository
	gyms gym.Repository
}

func NewResolver(repo Repository, gyms gym.Repository) Resolver {
	return &resolver{repo: repo, gyms: gyms}
}

// Resolve checks a direct gym entitlement first, then falls back to
// multi-gym passes gated on the gym's opt-in flag. With several active
// multi-gym passes the highest tier wins (repository ordering).
func (r *resolver) Resolve(ctx context.Context, userID, gymID int) (Result, error) {
	direct, err := r.repo.GetActiveDirect(ctx, userID, gymID)
	if err == nil {
		return Result{Granted: true, Kind: KindDirect, Label: direct.PlanName}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Result{}, err
	}

	passes, err := r.repo.ListActiveMultiGym(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if len(passes) == 0 {
		return Result{Reason: ReasonNoEntitlement}, nil
	}

	g, err := r.gyms.GetGymByID(ctx, gymID)
	if err != nil {
		return Result{}, err
	}
	if !g.AcceptsMultiGym {
		return Result{Reason: ReasonGymNotMultiEnabled}, nil
	}

	label := passes[0].PlanName
	if passes[0].Tier != nil {
		label = string(*passes[0].Tier)
	}

	return Result{Granted: true, Kind: KindMultiGym, Label: label}, nil
}
