package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/wfh"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
)

type wfhRepository struct {
	db *database.DB
}

func NewWFHRepository(db *database.DB) wfh.Repository {
	return &wfhRepository{db: db}
}

const wfhColumns = `
	w.id, w.employee_id, w.date, w.reason, w.status,
	w.reviewed_by, w.reviewed_at, w.review_note, w.consumed_attendance_id,
	w.created_at, w.updated_at,
	e.name AS employee_name,
	e.department AS department`

func scanWFH(row pgx.Row) (wfh.Request, error) {
	var req wfh.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.Reason, &req.Status,
		&req.ReviewedBy, &req.ReviewedAt, &req.ReviewNote, &req.ConsumedAttendanceID,
		&req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.Department,
	)
	return req, err
}

// Create inserts a request; a duplicate (employee, date) fails on
// ux_wfh_employee_date and is returned unwrapped for the caller to map.
func (r *wfhRepository) Create(ctx context.Context, req wfh.Request) (wfh.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wfh_requests (id, employee_id, date, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, req.Date, req.Reason, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return wfh.Request{}, err
	}
	return req, nil
}

func (r *wfhRepository) GetByID(ctx context.Context, id string) (wfh.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + wfhColumns + `
		FROM wfh_requests w
		LEFT JOIN employees e ON e.id = w.employee_id
		WHERE w.id = $1
	`

	req, err := scanWFH(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wfh.Request{}, wfh.ErrRequestNotFound
		}
		return wfh.Request{}, fmt.Errorf("failed to get wfh request: %w", err)
	}
	return req, nil
}

func (r *wfhRepository) GetApprovedForDate(ctx context.Context, employeeID string, date time.Time) (*wfh.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + wfhColumns + `
		FROM wfh_requests w
		LEFT JOIN employees e ON e.id = w.employee_id
		WHERE w.employee_id = $1 AND w.date = $2 AND w.status = 'approved'
		LIMIT 1
	`

	req, err := scanWFH(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get approved wfh request: %w", err)
	}
	return &req, nil
}

func (r *wfhRepository) List(ctx context.Context, filter wfh.Filter) ([]wfh.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND w.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND w.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.From != nil {
		baseWhere += fmt.Sprintf(" AND w.date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		baseWhere += fmt.Sprintf(" AND w.date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM wfh_requests w WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count wfh requests: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+wfhColumns+`
		FROM wfh_requests w
		LEFT JOIN employees e ON e.id = w.employee_id
		WHERE %s
		ORDER BY w.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query wfh requests: %w", err)
	}
	defer rows.Close()

	var requests []wfh.Request
	for rows.Next() {
		req, err := scanWFH(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan wfh request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, total, rows.Err()
}

func (r *wfhRepository) Update(ctx context.Context, req wfh.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE wfh_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, review_note = $5,
		    consumed_attendance_id = $6, updated_at = now()
		WHERE id = $1
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		req.ID, req.Status, req.ReviewedBy, req.ReviewedAt, req.ReviewNote, req.ConsumedAttendanceID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wfh.ErrRequestNotFound
		}
		return fmt.Errorf("failed to update wfh request: %w", err)
	}
	return nil
}
