package holiday

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByID(ctx context.Context, id string) (Holiday, error)
	ListRange(ctx context.Context, from, to time.Time) ([]Holiday, error)
	Delete(ctx context.Context, id string) error
}
