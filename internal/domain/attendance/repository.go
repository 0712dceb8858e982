package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records.
type Repository interface {
	// Create inserts a new attendance record. A concurrent duplicate for the
	// same (employee, day) surfaces as ErrAlreadyCheckedIn via the unique
	// index; the storage engine is the arbiter, not in-memory locking.
	Create(ctx context.Context, record Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves attendance for an employee on a day
	// (day boundary in the organization timezone). Returns nil when absent.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (*Attendance, error)

	// Update updates an existing attendance record
	Update(ctx context.Context, record Attendance) error

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter Filter) ([]Attendance, int64, error)

	// ListRange retrieves an employee's records for [from, to] inclusive,
	// ordered by date.
	ListRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)

	// ListOpenSessions returns records for a day that have a check-in but
	// no check-out (missing checkouts).
	ListOpenSessions(ctx context.Context, day time.Time) ([]Attendance, error)
}
