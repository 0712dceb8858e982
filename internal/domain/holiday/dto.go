package holiday

import (
	"github.com/kriyahr/hrms-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Title      string `json:"title"`
	IsOptional bool   `json:"is_optional"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Title      string `json:"title"`
	IsOptional bool   `json:"is_optional"`
}
