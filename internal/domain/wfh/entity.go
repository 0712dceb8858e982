package wfh

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

// Request is a work-from-home request for a single day. Approving a
// request whose day already has an attendance record retroactively tags
// that record's geofence status as wfh.
type Request struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Reason     string
	Status     Status
	ReviewedBy *string
	ReviewedAt *time.Time
	ReviewNote *string

	// ConsumedAttendanceID is set when approval retroactively tagged an
	// existing attendance record.
	ConsumedAttendanceID *string

	CreatedAt time.Time
	UpdatedAt time.Time

	EmployeeName string
	Department   string
}
