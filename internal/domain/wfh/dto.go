package wfh

import (
	"time"

	"github.com/kriyahr/hrms-backend-go/internal/pkg/validator"
)

type ApplyRequest struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Reason string `json:"reason"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewRequest struct {
	ID     string `json:"-"`
	Action string `json:"action"` // "approve" or "reject"
	Note   string `json:"note"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Action != "approve" && r.Action != "reject" {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "must be approve or reject"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	EmployeeID *string
	Status     *string
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

func (f *Filter) Validate() error {
	if f.Status != nil && !Status(*f.Status).Valid() {
		return validator.ValidationErrors{{Field: "status", Message: "unknown status"}}
	}
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
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Department   string  `json:"department,omitempty"`
	Date         string  `json:"date"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ReviewedBy   *string `json:"reviewed_by,omitempty"`
	ReviewNote   *string `json:"review_note,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type ListResponse struct {
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
	Requests   []Response `json:"requests"`
}
