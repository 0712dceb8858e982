package office

import "context"

type Repository interface {
	Create(ctx context.Context, o Office) (Office, error)
	GetByID(ctx context.Context, id string) (Office, error)
	ListActive(ctx context.Context) ([]Office, error)
	Update(ctx context.Context, o Office) error
	Delete(ctx context.Context, id string) error
}
