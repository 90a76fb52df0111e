package checkin

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gympass/internal/db"
)

var (
	// ErrOpenCheckInExists is raised by the open-check-in unique index
	// when two inserts race; the pre-check in the service only covers
	// the common path.
	ErrOpenCheckInExists = errors.New("open check-in already exists")
	ErrNotOpen           = errors.New("check-in not found or already closed")
	ErrNotDecidable      = errors.New("check-in is not pending")
)

const uniqueViolation = "23505"

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Create(ctx context.Context, userID, gymID int) (*CheckIn, error) {
	query := `
		INSERT INTO check_ins (user_id, gym_id, status, check_in_time)
		VALUES ($1, $2, 'pending', NOW())
		RETURNING id, user_id, gym_id, status, check_in_time, check_out_time, verified_by, created_at
	`

	var c CheckIn
	err := r.db.GetContext(ctx, &c, query, userID, gymID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrOpenCheckInExists
		}
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*CheckIn, error) {
	query := `
		SELECT id, user_id, gym_id, status, check_in_time, check_out_time, verified_by, created_at
		FROM check_ins
		WHERE id = $1
	`

	var c CheckIn
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) HasOpen(ctx context.Context, userID, gymID int) (bool, error) {
	return db.Exists(ctx, r.db, `
		SELECT EXISTS(
			SELECT 1 FROM check_ins
			WHERE user_id = $1
			  AND gym_id = $2
			  AND check_out_time IS NULL
			  AND status IN ('pending', 'verified')
		)
	`, userID, gymID)
}

// Close sets the checkout time. The user id is part of the predicate
// so a member can only close their own record.
func (r *repository) Close(ctx context.Context, id, userID int) (*CheckIn, error) {
	query := `
		UPDATE check_ins
		SET check_out_time = NOW()
		WHERE id = $1
		  AND user_id = $2
		  AND check_out_time IS NULL
		RETURNING id, user_id, gym_id, status, check_in_time, check_out_time, verified_by, created_at
	`

	var c CheckIn
	err := r.db.GetContext(ctx, &c, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotOpen
		}
		return nil, err
	}

	return &c, nil
}

// Decide flips a pending record to verified or rejected. Decided and
// closed records never match, which makes decisions terminal.
func (r *repository) Decide(ctx context.Context, id int, status Status, staffID int) (*CheckIn, error) {
	query := `
		UPDATE check_ins
		SET status = $2, verified_by = $3
		WHERE id = $1
		  AND status = 'pending'
		  AND check_out_time IS NULL
		RETURNING id, user_id, gym_id, status, check_in_time, check_out_time, verified_by, created_at
	`

	var c CheckIn
	err := r.db.GetContext(ctx, &c, query, id, status, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotDecidable
		}
		return nil, err
	}

	return &c, nil
}

func (r *repository) ListPendingByGym(ctx context.Context, gymID int) ([]CheckInWithDetails, error) {
	query := `
		SELECT
			c.id,
			c.user_id,
			c.gym_id,
			c.status,
			c.check_in_time,
			c.check_out_time,
			c.verified_by,
			c.created_at,
			g.name AS gym_name,
			u.name AS user_name,
			u.email AS user_email
		FROM check_ins c
		JOIN gyms g ON c.gym_id = g.id
		JOIN users u ON c.user_id = u.id
		WHERE c.gym_id = $1 AND c.status = 'pending'
		ORDER BY c.check_in_time DESC
	`

	var checkIns []CheckInWithDetails
	err := r.db.SelectContext(ctx, &checkIns, query, gymID)
	if err != nil {
		return nil, err
	}

	return checkIns, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]CheckIn, error) {
	query := `
		SELECT id, user_id, gym_id, status, check_in_time, check_out_time, verified_by, created_at
		FROM check_ins
		WHERE user_id = $1
		ORDER BY check_in_time DESC
	`

	var checkIns []CheckIn
	err := r.db.SelectContext(ctx, &checkIns, query, userID)
	if err != nil {
		return nil, err
	}

	return checkIns, nil
}
