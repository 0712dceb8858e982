package regularization

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/kriyahr/hrms-backend-go/internal/domain/notification"
	"github.com/kriyahr/hrms-backend-go/internal/domain/regularization"
	notificationsvc "github.com/kriyahr/hrms-backend-go/internal/service/notification"
)

// AttendanceApplier rewrites a day's punches and recomputes its outcome.
type AttendanceApplier interface {
	Apply(ctx context.Context, employeeID string, day time.Time, checkIn, checkOut *time.Time) error
}

type Service struct {
	repo       regularization.Repository
	attendance AttendanceApplier
	notifier   notificationsvc.Dispatcher
	loc        *time.Location
	now        func() time.Time
}

func NewService(repo regularization.Repository, attendance AttendanceApplier, notifier notificationsvc.Dispatcher, loc *time.Location, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, attendance: attendance, notifier: notifier, loc: loc, now: now}
}

func (s *Service) Apply(ctx context.Context, employeeID string, req regularization.ApplyRequest) (regularization.Response, error) {
	if err := req.Validate(); err != nil {
		return regularization.Response{}, err
	}

	date, _ := time.ParseInLocation("2006-01-02", req.Date, s.loc)

	pending, err := s.repo.HasPendingForDate(ctx, employeeID, date)
	if err != nil {
		return regularization.Response{}, err
	}
	if pending {
		return regularization.Response{}, regularization.ErrRequestExists
	}

	now := s.now()
	r := regularization.Request{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		Date:       date,
		Reason:     req.Reason,
		Status:     regularization.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.RequestedCheckIn != nil {
		t, _ := time.Parse(time.RFC3339, *req.RequestedCheckIn)
		r.RequestedCheckIn = &t
	}
	if req.RequestedCheckOut != nil {
		t, _ := time.Parse(time.RFC3339, *req.RequestedCheckOut)
		r.RequestedCheckOut = &t
	}

	created, err := s.repo.Create(ctx, r)
	if err != nil {
		return regularization.Response{}, err
	}

	if s.notifier != nil {
		s.notifier.NotifyManagers(ctx, notification.KindRegularizationRequested,
			"Regularization request",
			fmt.Sprintf("An attendance correction for %s is awaiting review.", req.Date))
	}
	return toResponse(created), nil
}

// Review approves or rejects a pending correction. Approval rewrites the
// day's record with the requested punches and recomputes status, work
// hours and lateness through the evaluator.
func (s *Service) Review(ctx context.Context, reviewerID string, req regularization.ReviewRequest) (regularization.Response, error) {
	if err := req.Validate(); err != nil {
		return regularization.Response{}, err
	}

	r, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return regularization.Response{}, err
	}
	if r.Status != regularization.StatusPending {
		return regularization.Response{}, regularization.ErrRequestNotPending
	}

	now := s.now()
	if req.Action == "approve" {
		if err := s.attendance.Apply(ctx, r.EmployeeID, r.Date, r.RequestedCheckIn, r.RequestedCheckOut); err != nil {
			return regularization.Response{}, err
		}
		r.Status = regularization.StatusApproved
	} else {
		r.Status = regularization.StatusRejected
	}
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &now
	if req.Note != "" {
		r.ReviewNote = &req.Note
	}
	r.UpdatedAt = now

	if err := s.repo.Update(ctx, r); err != nil {
		return regularization.Response{}, err
	}

	if s.notifier != nil {
		s.notifier.NotifyEmployee(ctx, r.EmployeeID, notification.KindRegularizationReviewed,
			"Regularization reviewed",
			fmt.Sprintf("Your attendance correction for %s was %s.", r.Date.Format("2006-01-02"), r.Status))
	}
	return toResponse(r), nil
}

func (s *Service) List(ctx context.Context, filter regularization.Filter) (regularization.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return regularization.ListResponse{}, err
	}

	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return regularization.ListResponse{}, err
	}

	resp := regularization.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   make([]regularization.Response, 0, len(requests)),
	}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, toResponse(r))
	}
	return resp, nil
}

func toResponse(r regularization.Request) regularization.Response {
	resp := regularization.Response{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Department:   r.Department,
		Date:         r.Date.Format("2006-01-02"),
		Reason:       r.Reason,
		Status:       string(r.Status),
		ReviewedBy:   r.ReviewedBy,
		ReviewNote:   r.ReviewNote,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.RequestedCheckIn != nil {
		v := r.RequestedCheckIn.Format(time.RFC3339)
		resp.RequestedCheckIn = &v
	}
	if r.RequestedCheckOut != nil {
		v := r.RequestedCheckOut.Format(time.RFC3339)
		resp.RequestedCheckOut = &v
	}
	return resp
}
