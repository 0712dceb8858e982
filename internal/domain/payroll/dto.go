package payroll

import (
	"github.com/kriyahr/hrms-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be 1-12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	GrossSalary  float64 `json:"gross_salary"`
	Deductions   float64 `json:"deductions"`
	NetSalary    float64 `json:"net_salary"`
	WorkingDays  int     `json:"working_days"`
	PresentDays  int     `json:"present_days"`
	HalfDays     int     `json:"half_days"`
	LeaveDays    int     `json:"leave_days"`
	AbsentDays   int     `json:"absent_days"`
	DownloadURL  string  `json:"download_url,omitempty"`
	GeneratedAt  string  `json:"generated_at"`
}
