package regularization

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Request asks to correct the check-in and/or check-out times of a past
// day, typically after a missed checkout. Approval rewrites the
// attendance record and recomputes its status and work hours.
type Request struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	RequestedCheckIn  *time.Time
	RequestedCheckOut *time.Time
	Reason            string
	Status            Status
	ReviewedBy        *string
	ReviewedAt        *time.Time
	ReviewNote        *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	EmployeeName string
	Department   string
}
