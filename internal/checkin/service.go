package checkin

import (
	"context"
	"errors"

	"gympass/internal/entitlement"
	"gympass/internal/gym"
	"gympass/internal/logger"
	"gympass/internal/metrics"
	"gympass/internal/realtime"
	"gympass/internal/user"
)

var (
	ErrGymNotFound      = errors.New("gym not found")
	ErrAlreadyCheckedIn = errors.New("already checked in at this gym")
	ErrNoActiveCheckIn  = errors.New("no active check-in")
	ErrCheckInNotFound  = errors.New("check-in not found")
	ErrForbidden        = errors.New("not authorized for this gym")
	ErrAlreadyDecided   = errors.New("check-in already decided or closed")
)

// NoEntitlementError is the negative entitlement outcome, carrying the
// resolver's reason so handlers can render a precise message.
type NoEntitlementError struct {
	Reason entitlement.Reason
}

func (e *NoEntitlementError) Error() string {
	if e.Reason == entitlement.ReasonGymNotMultiEnabled {
		return "your multi-gym pass is not accepted at this gym"
	}
	return "no valid entitlement for this gym"
}

// DecisionMailer queues a best-effort email about a staff decision.
type DecisionMailer interface {
	SendCheckInDecision(ctx context.Context, to, name, gymName, status string) error
}

type Service interface {
	RequestCheckIn(ctx context.Context, userID, gymID int) (*CheckIn, error)
	CheckOut(ctx context.Context, userID, checkInID int) (*CheckIn, error)
	Verify(ctx context.Context, checkInID, staffID int) (*CheckIn, error)
	Reject(ctx context.Context, checkInID, staffID int) (*CheckIn, error)
	ListPending(ctx context.Context, gymID, staffID int) ([]CheckInWithDetails, error)
	ListForUser(ctx context.Context, userID int) ([]CheckIn, error)
}

type service struct {
	repo     Repository
	gyms     gym.Repository
	resolver entitlement.Resolver
	users    user.Repository
	notifier realtime.Publisher
	mailer   DecisionMailer
}

func NewService(
	repo Repository,
	gyms gym.Repository,
	resolver entitlement.Resolver,
	users user.Repository,
	notifier realtime.Publisher,
	mailer DecisionMailer,
) Service {
	return &service{
		repo:     repo,
		gyms:     gyms,
		resolver: resolver,
		users:    users,
		notifier: notifier,
		mailer:   mailer,
	}
}

func (s *service) RequestCheckIn(ctx context.Context, userID, gymID int) (*CheckIn, error) {
	g, err := s.gyms.GetGymByID(ctx, gymID)
	if err != nil {
		return nil, ErrGymNotFound
	}

	open, err := s.repo.HasOpen(ctx, userID, gymID)
	if err != nil {
		return nil, err
	}
	if open {
		metrics.RecordCheckIn("duplicate", "")
		return nil, ErrAlreadyCheckedIn
	}

	result, err := s.resolver.Resolve(ctx, userID, gymID)
	if err != nil {
		return nil, err
	}
	if !result.Granted {
		metrics.RecordCheckIn("denied", "")
		return nil, &NoEntitlementError{Reason: result.Reason}
	}

	c, err := s.repo.Create(ctx, userID, gymID)
	if err != nil {
		// the unique index closes the race the pre-check cannot
		if errors.Is(err, ErrOpenCheckInExists) {
			metrics.RecordCheckIn("duplicate", string(result.Kind))
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}

	metrics.RecordCheckIn("created", string(result.Kind))

	// best-effort; a notification outage never rolls back the check-in
	s.notifier.Publish(ctx, realtime.GymChannel(g.ID), realtime.EventNewPendingCheckIn, map[string]interface{}{
		"checkInId":   c.ID,
		"userId":      c.UserID,
		"gymId":       c.GymID,
		"checkInTime": c.CheckInTime,
	})

	return c, nil
}

func (s *service) CheckOut(ctx context.Context, userID, checkInID int) (*CheckIn, error) {
	c, err := s.repo.Close(ctx, checkInID, userID)
	if err != nil {
		if errors.Is(err, ErrNotOpen) {
			return nil, ErrNoActiveCheckIn
		}
		return nil, err
	}

	metrics.RecordCheckOut()
	return c, nil
}

func (s *service) Verify(ctx context.Context, checkInID, staffID int) (*CheckIn, error) {
	return s.decide(ctx, checkInID, StatusVerified, staffID)
}

func (s *service) Reject(ctx context.Context, checkInID, staffID int) (*CheckIn, error) {
	return s.decide(ctx, checkInID, StatusRejected, staffID)
}

func (s *service) decide(ctx context.Context, checkInID int, status Status, staffID int) (*CheckIn, error) {
	c, err := s.repo.GetByID(ctx, checkInID)
	if err != nil {
		return nil, ErrCheckInNotFound
	}

	g, err := s.gyms.GetGymByID(ctx, c.GymID)
	if err != nil {
		return nil, err
	}
	if g.ManagerID != staffID {
		return nil, ErrForbidden
	}

	updated, err := s.repo.Decide(ctx, checkInID, status, staffID)
	if err != nil {
		if errors.Is(err, ErrNotDecidable) {
			return nil, ErrAlreadyDecided
		}
		return nil, err
	}

	metrics.RecordDecision(string(status))

	s.notifier.Publish(ctx, realtime.UserChannel(updated.UserID), realtime.EventCheckInStatusUpdated, map[string]interface{}{
		"checkInId": updated.ID,
		"status":    updated.Status,
		"gymId":     updated.GymID,
	})

	if s.mailer != nil {
		if u, err := s.users.FindByID(ctx, updated.UserID); err == nil {
			if err := s.mailer.SendCheckInDecision(ctx, u.Email, u.Name, g.Name, string(status)); err != nil {
				logger.WithError(err).Error("Failed to queue decision email")
			}
		}
	}

	return updated, nil
}

func (s *service) ListPending(ctx context.Context, gymID, staffID int) ([]CheckInWithDetails, error) {
	g, err := s.gyms.GetGymByID(ctx, gymID)
	if err != nil {
		return nil, ErrGymNotFound
	}
	if g.ManagerID != staffID {
		return nil, ErrForbidden
	}

	return s.repo.ListPendingByGym(ctx, gymID)
}

func (s *service) ListForUser(ctx context.Context, userID int) ([]CheckIn, error) {
	return s.repo.ListByUser(ctx, userID)
}
