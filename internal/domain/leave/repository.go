package leave

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	List(ctx context.Context, filter Filter) ([]Leave, int64, error)
	// ListApprovedForRange returns approved leaves for the employee that
	// overlap [from, to] inclusive.
	ListApprovedForRange(ctx context.Context, employeeID string, from, to time.Time) ([]Leave, error)
	// HasOverlap reports whether a pending or approved leave for the
	// employee overlaps [from, to] inclusive.
	HasOverlap(ctx context.Context, employeeID string, from, to time.Time) (bool, error)
	Update(ctx context.Context, l Leave) error
}
