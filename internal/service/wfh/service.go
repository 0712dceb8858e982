package wfh

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/kriyahr/hrms-backend-go/internal/domain/notification"
	"github.com/kriyahr/hrms-backend-go/internal/domain/wfh"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
	notificationsvc "github.com/kriyahr/hrms-backend-go/internal/service/notification"
)

const uniqueEmployeeDateConstraint = "ux_wfh_employee_date"

// AttendanceMarker retroactively tags an existing attendance record as
// wfh; it returns the consumed record's ID, or nil when the day has no
// record.
type AttendanceMarker interface {
	MarkWFH(ctx context.Context, employeeID string, day time.Time) (*string, error)
}

type Service struct {
	repo       wfh.Repository
	attendance AttendanceMarker
	notifier   notificationsvc.Dispatcher
	loc        *time.Location
	now        func() time.Time
}

func NewService(repo wfh.Repository, attendance AttendanceMarker, notifier notificationsvc.Dispatcher, loc *time.Location, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, attendance: attendance, notifier: notifier, loc: loc, now: now}
}

func (s *Service) Apply(ctx context.Context, employeeID string, req wfh.ApplyRequest) (wfh.Response, error) {
	if err := req.Validate(); err != nil {
		return wfh.Response{}, err
	}

	date, _ := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	now := s.now()

	r := wfh.Request{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		Date:       date,
		Reason:     req.Reason,
		Status:     wfh.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Create(ctx, r)
	if err != nil {
		if database.IsUniqueViolation(err, uniqueEmployeeDateConstraint) {
			return wfh.Response{}, wfh.ErrRequestExists
		}
		return wfh.Response{}, err
	}

	if s.notifier != nil {
		s.notifier.NotifyManagers(ctx, notification.KindWFHRequested,
			"WFH request",
			fmt.Sprintf("A work-from-home request for %s is awaiting review.", req.Date))
	}
	return toResponse(created), nil
}

// Review approves or rejects a pending request. Approval retroactively
// tags the day's attendance record, if one already exists, as wfh: a
// check-in blocked outside the fence can be re-submitted, and one made
// before approval is corrected in place.
func (s *Service) Review(ctx context.Context, reviewerID string, req wfh.ReviewRequest) (wfh.Response, error) {
	if err := req.Validate(); err != nil {
		return wfh.Response{}, err
	}

	r, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return wfh.Response{}, err
	}
	if r.Status != wfh.StatusPending {
		return wfh.Response{}, wfh.ErrRequestNotPending
	}

	now := s.now()
	if req.Action == "approve" {
		r.Status = wfh.StatusApproved
		consumed, err := s.attendance.MarkWFH(ctx, r.EmployeeID, r.Date)
		if err != nil {
			return wfh.Response{}, err
		}
		r.ConsumedAttendanceID = consumed
	} else {
		r.Status = wfh.StatusRejected
	}
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &now
	if req.Note != "" {
		r.ReviewNote = &req.Note
	}
	r.UpdatedAt = now

	if err := s.repo.Update(ctx, r); err != nil {
		return wfh.Response{}, err
	}

	if s.notifier != nil {
		s.notifier.NotifyEmployee(ctx, r.EmployeeID, notification.KindWFHReviewed,
			"WFH request reviewed",
			fmt.Sprintf("Your work-from-home request for %s was %s.", r.Date.Format("2006-01-02"), r.Status))
	}
	return toResponse(r), nil
}

func (s *Service) List(ctx context.Context, filter wfh.Filter) (wfh.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return wfh.ListResponse{}, err
	}

	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return wfh.ListResponse{}, err
	}

	resp := wfh.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   make([]wfh.Response, 0, len(requests)),
	}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, toResponse(r))
	}
	return resp, nil
}

func toResponse(r wfh.Request) wfh.Response {
	return wfh.Response{
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
}
