package entitlement

import (
	"context"

	"gympass/internal/gym"
)

type Repository interface {
	Grant(ctx context.Context, userID int, kind Kind, gymID *int, tier *gym.Tier, planName string, months int) (*Entitlement, error)
	GetActiveDirect(ctx context.Context, userID, gymID int) (*Entitlement, error)
	ListActiveMultiGym(ctx context.Context, userID int) ([]Entitlement, error)
	ListByUser(ctx context.Context, userID int) ([]Entitlement, error)
}
