package entitlement

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gympass/internal/gym"
)

type MockEntitlementRepo struct{ mock.Mock }
type MockGymRepo struct{ mock.Mock }

func (m *MockEntitlementRepo) Grant(ctx context.Context, userID int, kind Kind, gymID *int, tier *gym.Tier, planName string, months int) (*Entitlement, error) {
	args := m.Called(ctx, userID, kind, gymID, tier, planName, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Entitlement), args.Error(1)
}

func (m *MockEntitlementRepo) GetActiveDirect(ctx context.Context, userID, gymID int) (*Entitlement, error) {
	args := m.Called(ctx, userID, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Entitlement), args.Error(1)
}

func (m *MockEntitlementRepo) ListActiveMultiGym(ctx context.Context, userID int) ([]Entitlement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Entitlement), args.Error(1)
}

func (m *MockEntitlementRepo) ListByUser(ctx context.Context, userID int) ([]Entitlement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Entitlement), args.Error(1)
}

func (m *MockGymRepo) CreateGym(ctx context.Context, name, location string, managerID int, acceptsMultiGym bool, tier *gym.Tier) (*gym.Gym, error) {
	args := m.Called(ctx, name, location, managerID, acceptsMultiGym, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gym.Gym), args.Error(1)
}

func (m *MockGymRepo) GetAllGyms(ctx context.Context) ([]gym.Gym, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gym.Gym), args.Error(1)
}

func (m *MockGymRepo) GetGymByID(ctx context.Context, id int) (*gym.Gym, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gym.Gym), args.Error(1)
}

func tierPtr(t gym.Tier) *gym.Tier { return &t }

func TestResolve_DirectWins(t *testing.T) {
	repo := new(MockEntitlementRepo)
	gyms := new(MockGymRepo)
	r := NewResolver(repo, gyms)
	ctx := context.Background()

	repo.On("GetActiveDirect", ctx, 7, 1).
		Return(&Entitlement{ID: 1, UserID: 7, Kind: KindDirect, PlanName: "monthly"}, nil)

	res, err := r.Resolve(ctx, 7, 1)
	require.NoError(t, err)
	assert.True(t, res.Granted)
	assert.Equal(t, KindDirect, res.Kind)
	assert.Equal(t, "monthly", res.Label)
	// a direct plan never consults multi-gym passes or the gym flag
	repo.AssertNotCalled(t, "ListActiveMultiGym", mock.Anything, mock.Anything)
	gyms.AssertNotCalled(t, "GetGymByID", mock.Anything, mock.Anything)
}

func TestResolve_NoEntitlement(t *testing.T) {
	repo := new(MockEntitlementRepo)
	gyms := new(MockGymRepo)
	r := NewResolver(repo, gyms)
	ctx := context.Background()

	repo.On("GetActiveDirect", ctx, 7, 1).Return(nil, sql.ErrNoRows)
	repo.On("ListActiveMultiGym", ctx, 7).Return([]Entitlement{}, nil)

	res, err := r.Resolve(ctx, 7, 1)
	require.NoError(t, err)
	assert.False(t, res.Granted)
	assert.Equal(t, ReasonNoEntitlement, res.Reason)
}

func TestResolve_GymOptedOut(t *testing.T) {
	repo := new(MockEntitlementRepo)
	gyms := new(MockGymRepo)
	r := NewResolver(repo, gyms)
	ctx := context.Background()

	repo.On("GetActiveDirect", ctx, 7, 2).Return(nil, sql.ErrNoRows)
	repo.On("ListActiveMultiGym", ctx, 7).Return([]Entitlement{
		{ID: 3, UserID: 7, Kind: KindMultiGym, Tier: tierPtr(gym.TierGold)},
	}, nil)
	gyms.On("GetGymByID", ctx, 2).Return(&gym.Gym{ID: 2, AcceptsMultiGym: false}, nil)

	res, err := r.Resolve(ctx, 7, 2)
	require.NoError(t, err)
	assert.False(t, res.Granted)
	assert.Equal(t, ReasonGymNotMultiEnabled, res.Reason)
}

func TestResolve_MultiGymGranted(t *testing.T) {
	repo := new(MockEntitlementRepo)
	gyms := new(MockGymRepo)
	r := NewResolver(repo, gyms)
	ctx := context.Background()

	repo.On("GetActiveDirect", ctx, 7, 3).Return(nil, sql.ErrNoRows)
	repo.On("ListActiveMultiGym", ctx, 7).Return([]Entitlement{
		{ID: 3, UserID: 7, Kind: KindMultiGym, Tier: tierPtr(gym.TierGold)},
	}, nil)
	gyms.On("GetGymByID", ctx, 3).Return(&gym.Gym{ID: 3, AcceptsMultiGym: true}, nil)

	res, err := r.Resolve(ctx, 7, 3)
	require.NoError(t, err)
	assert.True(t, res.Granted)
	assert.Equal(t, KindMultiGym, res.Kind)
	assert.Equal(t, "gold", res.Label)
}

func TestResolve_HighestTierLabels(t *testing.T) {
	// the repository orders passes highest tier first; the resolver
	// labels the access with the first row
	repo := new(MockEntitlementRepo)
	gyms := new(MockGymRepo)
	r := NewResolver(repo, gyms)
	ctx := context.Background()

	repo.On("GetActiveDirect", ctx, 7, 3).Return(nil, sql.ErrNoRows)
	repo.On("ListActiveMultiGym", ctx, 7).Return([]Entitlement{
		{ID: 5, UserID: 7, Kind: KindMultiGym, Tier: tierPtr(gym.TierPlatinum)},
		{ID: 4, UserID: 7, Kind: KindMultiGym, Tier: tierPtr(gym.TierSilver)},
	}, nil)
	gyms.On("GetGymByID", ctx, 3).Return(&gym.Gym{ID: 3, AcceptsMultiGym: true}, nil)

	res, err := r.Resolve(ctx, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, "platinum", res.Label)
}

func TestResolve_RepoError(t *testing.T) {
	repo := new(MockEntitlementRepo)
	gyms := new(MockGymRepo)
	r := NewResolver(repo, gyms)
	ctx := context.Background()

	repo.On("GetActiveDirect", ctx, 7, 1).Return(nil, errors.New("connection refused"))

	_, err := r.Resolve(ctx, 7, 1)
	assert.Error(t, err)
}
