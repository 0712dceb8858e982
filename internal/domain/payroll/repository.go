package payroll

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s Slip) (Slip, error)
	GetByID(ctx context.Context, id string) (Slip, error)
	GetByMonth(ctx context.Context, employeeID string, year int, month time.Month) (*Slip, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Slip, error)
}
