package leave

import "time"

type Type string

const (
	TypeCasual   Type = "casual"
	TypeSick     Type = "sick"
	TypeEarned   Type = "earned"
	TypeUnpaid   Type = "unpaid"
	TypeOptional Type = "optional_holiday"
)

func (t Type) Valid() bool {
	switch t {
	case TypeCasual, TypeSick, TypeEarned, TypeUnpaid, TypeOptional:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusCanceled Status = "canceled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// Leave covers an inclusive date range. Day reports treat any approved
// leave overlapping a date as that day's classification when no
// attendance record exists.
type Leave struct {
	ID         string
	EmployeeID string
	Type       Type
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     Status
	ReviewedBy *string
	ReviewedAt *time.Time
	ReviewNote *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined for listings.
	EmployeeName string
	Department   string
}

// Days is the inclusive length of the leave in calendar days.
func (l Leave) Days() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

// Covers reports whether date falls inside the leave range. All three
// values must share the same day-boundary convention.
func (l Leave) Covers(date time.Time) bool {
	return !date.Before(l.StartDate) && !date.After(l.EndDate)
}
