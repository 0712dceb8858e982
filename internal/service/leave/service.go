package leave

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/kriyahr/hrms-backend-go/internal/domain/leave"
	"github.com/kriyahr/hrms-backend-go/internal/domain/notification"
	notificationsvc "github.com/kriyahr/hrms-backend-go/internal/service/notification"
)

type Service struct {
	repo     leave.Repository
	notifier notificationsvc.Dispatcher
	loc      *time.Location
	now      func() time.Time
}

func NewService(repo leave.Repository, notifier notificationsvc.Dispatcher, loc *time.Location, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, notifier: notifier, loc: loc, now: now}
}

// Apply files a leave request. Overlap with any pending or approved leave
// is rejected up front.
func (s *Service) Apply(ctx context.Context, employeeID string, req leave.ApplyRequest) (leave.Response, error) {
	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	start, _ := time.ParseInLocation("2006-01-02", req.StartDate, s.loc)
	end, _ := time.ParseInLocation("2006-01-02", req.EndDate, s.loc)

	overlap, err := s.repo.HasOverlap(ctx, employeeID, start, end)
	if err != nil {
		return leave.Response{}, err
	}
	if overlap {
		return leave.Response{}, leave.ErrLeaveOverlap
	}

	now := s.now()
	l := leave.Leave{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		Type:       leave.Type(req.Type),
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Create(ctx, l)
	if err != nil {
		return leave.Response{}, err
	}

	if s.notifier != nil {
		s.notifier.NotifyManagers(ctx, notification.KindLeaveRequested,
			"Leave request",
			fmt.Sprintf("A %s leave request for %s to %s is awaiting review.", req.Type, req.StartDate, req.EndDate))
	}
	return toResponse(created), nil
}

// Review approves or rejects a pending request.
func (s *Service) Review(ctx context.Context, reviewerID string, req leave.ReviewRequest) (leave.Response, error) {
	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	l, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.Response{}, err
	}
	if l.Status != leave.StatusPending {
		return leave.Response{}, leave.ErrLeaveNotPending
	}

	now := s.now()
	if req.Action == "approve" {
		l.Status = leave.StatusApproved
	} else {
		l.Status = leave.StatusRejected
	}
	l.ReviewedBy = &reviewerID
	l.ReviewedAt = &now
	if req.Note != "" {
		l.ReviewNote = &req.Note
	}
	l.UpdatedAt = now

	if err := s.repo.Update(ctx, l); err != nil {
		return leave.Response{}, err
	}

	if s.notifier != nil {
		s.notifier.NotifyEmployee(ctx, l.EmployeeID, notification.KindLeaveReviewed,
			"Leave request reviewed",
			fmt.Sprintf("Your leave request for %s to %s was %s.",
				l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02"), l.Status))
	}
	return toResponse(l), nil
}

// Cancel withdraws the employee's own pending request.
func (s *Service) Cancel(ctx context.Context, employeeID, id string) error {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if l.EmployeeID != employeeID {
		return leave.ErrLeaveNotFound
	}
	if l.Status != leave.StatusPending {
		return leave.ErrLeaveNotCancelable
	}

	l.Status = leave.StatusCanceled
	l.UpdatedAt = s.now()
	return s.repo.Update(ctx, l)
}

func (s *Service) List(ctx context.Context, filter leave.Filter) (leave.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListResponse{}, err
	}

	leaves, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return leave.ListResponse{}, err
	}

	resp := leave.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Leaves:     make([]leave.Response, 0, len(leaves)),
	}
	for _, l := range leaves {
		resp.Leaves = append(resp.Leaves, toResponse(l))
	}
	return resp, nil
}

func toResponse(l leave.Leave) leave.Response {
	return leave.Response{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		Department:   l.Department,
		Type:         string(l.Type),
		StartDate:    l.StartDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		Days:         l.Days(),
		Reason:       l.Reason,
		Status:       string(l.Status),
		ReviewedBy:   l.ReviewedBy,
		ReviewNote:   l.ReviewNote,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	}
}
