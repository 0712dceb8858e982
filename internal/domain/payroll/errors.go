package payroll

import "errors"

var (
	ErrSlipNotFound = errors.New("payslip not found")
	ErrSlipExists   = errors.New("a payslip already exists for this month")
	ErrNoBaseSalary = errors.New("employee has no base salary configured")
	ErrFutureMonth  = errors.New("cannot generate a payslip for a future month")
)
