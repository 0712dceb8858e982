package postgresql

import (
	"context"
	"fmt"

	"github.com/kriyahr/hrms-backend-go/internal/domain/notification"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (id, user_id, kind, title, body, is_read)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, n.ID, n.UserID, n.Kind, n.Title, n.Body, n.IsRead).Scan(&n.CreatedAt)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
		SELECT id, user_id, kind, title, body, is_read, created_at
		FROM notifications
		WHERE user_id = $1
	`
	if unreadOnly {
		query += " AND is_read = false"
	}
	query += " ORDER BY created_at DESC LIMIT $2"

	rows, err := q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Body, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead scopes the update to the owning user so one user cannot mark
// another's notifications.
func (r *notificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
