package taskreport

import "time"

// Report holds the tasks an employee submitted at checkout. One report
// per attendance record.
type Report struct {
	ID           string
	AttendanceID string
	EmployeeID   string
	Date         time.Time
	Tasks        []string
	CreatedAt    time.Time
}
