package employee

import (
	"github.com/kriyahr/hrms-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	EmployeeCode string   `json:"employee_code"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Department   string   `json:"department"`
	JoiningDate  string   `json:"joining_date"` // YYYY-MM-DD
	BaseSalary   *float64 `json:"base_salary,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "must match EMP-NNNN"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is invalid"})
	}
	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department is required"})
	}
	if _, ok := validator.IsValidDate(r.JoiningDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "must be YYYY-MM-DD"})
	}
	if r.BaseSalary != nil && *r.BaseSalary < 0 {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRequest struct {
	ID         string   `json:"-"`
	Name       *string  `json:"name,omitempty"`
	Department *string  `json:"department,omitempty"`
	IsActive   *bool    `json:"is_active,omitempty"`
	BaseSalary *float64 `json:"base_salary,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name cannot be empty"})
	}
	if r.Department != nil && validator.IsEmpty(*r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department cannot be empty"})
	}
	if r.BaseSalary != nil && *r.BaseSalary < 0 {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	Department *string
	IsActive   *bool
	Search     *string
	Page       int
	Limit      int
}

func (f *Filter) Validate() error {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	return nil
}

type Response struct {
	ID           string   `json:"id"`
	EmployeeCode string   `json:"employee_code"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Department   string   `json:"department"`
	JoiningDate  string   `json:"joining_date"`
	IsActive     bool     `json:"is_active"`
	BaseSalary   *float64 `json:"base_salary,omitempty"`
}

type ListResponse struct {
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
	Employees  []Response `json:"employees"`
}
