package gym

import (
	"strings"
	"time"
)

// Tier is the multi-gym tier a facility is badged with. It is derived
// once from the free-text badge list when the gym is created; nothing
// downstream ever parses badges again.
type Tier string

const (
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// Rank orders tiers for deterministic selection. Higher is better.
func (t Tier) Rank() int {
	switch t {
	case TierPlatinum:
		return 3
	case TierGold:
		return 2
	case TierSilver:
		return 1
	default:
		return 0
	}
}

func (t Tier) Valid() bool {
	return t.Rank() > 0
}

// TierFromBadges scans a badge list for known tier names. When several
// badges name a tier, the highest one wins. Returns nil when no badge
// matches.
func TierFromBadges(badges []string) *Tier {
	var best *Tier
	for _, badge := range badges {
		candidate := Tier(strings.ToLower(strings.TrimSpace(badge)))
		if !candidate.Valid() {
			continue
		}
		if best == nil || candidate.Rank() > best.Rank() {
			t := candidate
			best = &t
		}
	}
	return best
}

type Gym struct {
	ID              int       `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Location        string    `db:"location" json:"location"`
	ManagerID       int       `db:"manager_id" json:"manager_id"`
	AcceptsMultiGym bool      `db:"accepts_multi_gym" json:"accepts_multi_gym"`
	Tier            *Tier     `db:"tier" json:"tier,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type CreateGymRequest struct {
	Name            string   `json:"name" binding:"required"`
	Location        string   `json:"location" binding:"required"`
	ManagerID       int      `json:"manager_id" binding:"required"`
	AcceptsMultiGym bool     `json:"accepts_multi_gym"`
	Badges          []string `json:"badges"`
}
