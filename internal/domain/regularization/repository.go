package regularization

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	// HasPendingForDate reports whether the employee already has a pending
	// request for the given day.
	HasPendingForDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	List(ctx context.Context, filter Filter) ([]Request, int64, error)
	Update(ctx context.Context, r Request) error
}
