package entitlement

import (
	"context"
	"errors"

	"gympass/internal/gym"
	"gympass/internal/metrics"
)

var (
	ErrDirectNeedsGym = errors.New("direct entitlement requires a gym")
	ErrMultiNeedsTier = errors.New("multi-gym entitlement requires a valid tier")
	ErrGymNotFound    = errors.New("gym not found")
	ErrInvalidKind    = errors.New("invalid entitlement kind")
)

type Service interface {
	Grant(ctx context.Context, req GrantRequest) (*Entitlement, error)
	ListForUser(ctx context.Context, userID int) ([]Entitlement, error)
}

type service struct {
	repo Repository
	gyms gym.Repository
}

func NewService(repo Repository, gyms gym.Repository) Service {
	return &service{repo: repo, gyms: gyms}
}

func (s *service) Grant(ctx context.Context, req GrantRequest) (*Entitlement, error) {
	switch Kind(req.Kind) {
	case KindDirect:
		if req.GymID == nil {
			return nil, ErrDirectNeedsGym
		}
		if _, err := s.gyms.GetGymByID(ctx, *req.GymID); err != nil {
			return nil, ErrGymNotFound
		}

		planName := req.PlanName
		if planName == "" {
			planName = "direct membership"
		}

		e, err := s.repo.Grant(ctx, req.UserID, KindDirect, req.GymID, nil, planName, req.Months)
		if err != nil {
			return nil, err
		}
		metrics.RecordEntitlementGrant(string(KindDirect))
		return e, nil

	case KindMultiGym:
		tier := gym.Tier(req.Tier)
		if !tier.Valid() {
			return nil, ErrMultiNeedsTier
		}

		planName := req.PlanName
		if planName == "" {
			planName = string(tier) + " pass"
		}

		e, err := s.repo.Grant(ctx, req.UserID, KindMultiGym, nil, &tier, planName, req.Months)
		if err != nil {
			return nil, err
		}
		metrics.RecordEntitlementGrant(string(KindMultiGym))
		return e, nil

	default:
		return nil, ErrInvalidKind
	}
}

func (s *service) ListForUser(ctx context.Context, userID int) ([]Entitlement, error) {
	return s.repo.ListByUser(ctx, userID)
}
