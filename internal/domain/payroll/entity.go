package payroll

import "time"

// Slip is a generated monthly payslip. Amounts are derived from the
// employee's base salary prorated by attendance for the month.
type Slip struct {
	ID          string
	EmployeeID  string
	Year        int
	Month       time.Month
	GrossSalary float64
	Deductions  float64
	NetSalary   float64

	WorkingDays int
	PresentDays int
	HalfDays    int
	LeaveDays   int
	AbsentDays  int

	// FilePath is the storage key of the rendered PDF.
	FilePath    string
	GeneratedAt time.Time

	EmployeeName string
	EmployeeCode string
	Department   string
}
