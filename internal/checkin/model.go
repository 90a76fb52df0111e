package checkin

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

// CheckIn is a member's visit record at a gym. It is open while
// CheckOutTime is null and the status has not been rejected; staff
// decide pending records, the owning member closes them.
type CheckIn struct {
	ID           int        `db:"id" json:"id"`
	UserID       int        `db:"user_id" json:"user_id"`
	GymID        int        `db:"gym_id" json:"gym_id"`
	Status       Status     `db:"status" json:"status"`
	CheckInTime  time.Time  `db:"check_in_time" json:"check_in_time"`
	CheckOutTime *time.Time `db:"check_out_time" json:"check_out_time,omitempty"`
	VerifiedBy   *int       `db:"verified_by" json:"verified_by,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// Open reports whether the record still counts against the
// one-open-check-in-per-gym rule.
func (c *CheckIn) Open() bool {
	return c.CheckOutTime == nil && (c.Status == StatusPending || c.Status == StatusVerified)
}

type CheckInWithDetails struct {
	CheckIn
	GymName   string `db:"gym_name" json:"gym_name"`
	UserName  string `db:"user_name" json:"user_name"`
	UserEmail string `db:"user_email" json:"user_email"`
}
