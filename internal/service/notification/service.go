package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kriyahr/hrms-backend-go/internal/domain/notification"
	"github.com/kriyahr/hrms-backend-go/internal/domain/user"
)

// Dispatcher is the fan-out surface the workflow services depend on.
// Delivery is best-effort: failures are logged, never propagated, so a
// broken notification store cannot fail a check-in or an approval.
type Dispatcher interface {
	NotifyEmployee(ctx context.Context, employeeID string, kind notification.Kind, title, body string)
	NotifyManagers(ctx context.Context, kind notification.Kind, title, body string)
}

type Service struct {
	repo  notification.Repository
	users user.Repository
	now   func() time.Time
}

func NewService(repo notification.Repository, users user.Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, users: users, now: now}
}

func (s *Service) NotifyEmployee(ctx context.Context, employeeID string, kind notification.Kind, title, body string) {
	u, err := s.users.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		slog.Warn("notification skipped, no user for employee", "employee_id", employeeID, "kind", kind, "error", err)
		return
	}
	s.deliver(ctx, u.ID, kind, title, body)
}

func (s *Service) NotifyManagers(ctx context.Context, kind notification.Kind, title, body string) {
	managers, err := s.users.ListManagers(ctx)
	if err != nil {
		slog.Warn("notification skipped, manager lookup failed", "kind", kind, "error", err)
		return
	}
	for _, m := range managers {
		s.deliver(ctx, m.ID, kind, title, body)
	}
}

// NotifyMissingCheckout satisfies the attendance sweep's notifier.
func (s *Service) NotifyMissingCheckout(ctx context.Context, employeeID string, date time.Time) {
	s.NotifyEmployee(ctx, employeeID, notification.KindMissingCheckout,
		"Missing checkout",
		fmt.Sprintf("You did not check out on %s. Submit a regularization request to correct the day.", date.Format("2006-01-02")))
}

func (s *Service) deliver(ctx context.Context, userID string, kind notification.Kind, title, body string) {
	n := notification.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: s.now(),
	}
	if _, err := s.repo.Create(ctx, n); err != nil {
		slog.Error("notification delivery failed", "user_id", userID, "kind", kind, "error", err)
	}
}

// List returns the user's notifications plus the unread count.
func (s *Service) List(ctx context.Context, userID string, unreadOnly bool, limit int) (notification.ListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	items, err := s.repo.ListByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return notification.ListResponse{}, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return notification.ListResponse{}, err
	}

	resp := notification.ListResponse{
		UnreadCount:   unread,
		Notifications: make([]notification.Response, 0, len(items)),
	}
	for _, n := range items {
		resp.Notifications = append(resp.Notifications, notification.Response{
			ID:        n.ID,
			Kind:      string(n.Kind),
			Title:     n.Title,
			Body:      n.Body,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}
