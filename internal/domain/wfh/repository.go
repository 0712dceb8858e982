package wfh

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	// GetApprovedForDate returns the approved request for the employee on
	// the given day, or nil when there is none.
	GetApprovedForDate(ctx context.Context, employeeID string, date time.Time) (*Request, error)
	List(ctx context.Context, filter Filter) ([]Request, int64, error)
	Update(ctx context.Context, r Request) error
}
