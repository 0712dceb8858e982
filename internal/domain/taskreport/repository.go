package taskreport

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r Report) (Report, error)
	GetByAttendanceID(ctx context.Context, attendanceID string) (Report, error)
	ListRange(ctx context.Context, employeeID string, from, to time.Time) ([]Report, error)
}
