package entitlement

import (
	"time"

	"gympass/internal/gym"
)

type Kind string
type Status string

const (
	KindDirect   Kind = "direct"
	KindMultiGym Kind = "multi_gym"

	StatusActive   Status = "active"
	StatusExpired  Status = "expired"
	StatusCanceled Status = "cancelled"
)

// Entitlement is proof that a member may access a gym. Direct
// entitlements are scoped to one gym; multi-gym entitlements carry a
// tier and grant access to any gym that opts in to multi-gym access.
type Entitlement struct {
	ID         int       `db:"id" json:"id"`
	UserID     int       `db:"user_id" json:"user_id"`
	GymID      *int      `db:"gym_id" json:"gym_id,omitempty"`
	Kind       Kind      `db:"kind" json:"kind"`
	Tier       *gym.Tier `db:"tier" json:"tier,omitempty"`
	PlanName   string    `db:"plan_name" json:"plan_name"`
	Status     Status    `db:"status" json:"status"`
	ValidFrom  time.Time `db:"valid_from" json:"valid_from"`
	ValidUntil time.Time `db:"valid_until" json:"valid_until"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type GrantRequest struct {
	UserID   int    `json:"user_id" binding:"required"`
	Kind     string `json:"kind" binding:"required,oneof=direct multi_gym"`
	GymID    *int   `json:"gym_id"`
	Tier     string `json:"tier"`
	PlanName string `json:"plan_name"`
	Months   int    `json:"months" binding:"omitempty,min=1,max=24"`
}
