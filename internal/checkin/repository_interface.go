package checkin

import "context"

type Repository interface {
	Create(ctx context.Context, userID, gymID int) (*CheckIn, error)
	GetByID(ctx context.Context, id int) (*CheckIn, error)
	HasOpen(ctx context.Context, userID, gymID int) (bool, error)
	Close(ctx context.Context, id, userID int) (*CheckIn, error)
	Decide(ctx context.Context, id int, status Status, staffID int) (*CheckIn, error)
	ListPendingByGym(ctx context.Context, gymID int) ([]CheckInWithDetails, error)
	ListByUser(ctx context.Context, userID int) ([]CheckIn, error)
}
