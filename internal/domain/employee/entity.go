package employee

import "time"

// Employee identity is immutable once created; department and active status
// are mutable. Attendance, leave and WFH records reference employees but
// never own them.
type Employee struct {
	ID           string
	EmployeeCode string // "EMP-NNNN"
	Name         string
	Email        string
	Department   string
	JoiningDate  time.Time
	IsActive     bool
	BaseSalary   *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
