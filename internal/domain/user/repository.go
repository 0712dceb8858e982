package user

import "context"

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByGoogleID(ctx context.Context, googleID string) (User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)
	// ListManagers returns active users whose role can review workflow
	// requests (admin and hr).
	ListManagers(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) error
}
