package taskreport

import (
	"context"
	"time"

	"github.com/kriyahr/hrms-backend-go/internal/domain/taskreport"
)

type Service struct {
	repo taskreport.Repository
	loc  *time.Location
}

func NewService(repo taskreport.Repository, loc *time.Location) *Service {
	return &Service{repo: repo, loc: loc}
}

// GetForAttendance returns the report submitted with a day's checkout.
func (s *Service) GetForAttendance(ctx context.Context, attendanceID string) (taskreport.Report, error) {
	return s.repo.GetByAttendanceID(ctx, attendanceID)
}

// ListRange returns an employee's reports over [from, to] inclusive.
func (s *Service) ListRange(ctx context.Context, employeeID, from, to string) ([]taskreport.Report, error) {
	start, err := time.ParseInLocation("2006-01-02", from, s.loc)
	if err != nil {
		return nil, err
	}
	end, err := time.ParseInLocation("2006-01-02", to, s.loc)
	if err != nil {
		return nil, err
	}
	return s.repo.ListRange(ctx, employeeID, start, end)
}
