package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/regularization"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
)

type regularizationRepository struct {
	db *database.DB
}

func NewRegularizationRepository(db *database.DB) regularization.Repository {
	return &regularizationRepository{db: db}
}

const regularizationColumns = `
	r.id, r.employee_id, r.date, r.requested_check_in, r.requested_check_out,
	r.reason, r.status, r.reviewed_by, r.reviewed_at, r.review_note,
	r.created_at, r.updated_at,
	e.name AS employee_name,
	e.department AS department`

func scanRegularization(row pgx.Row) (regularization.Request, error) {
	var req regularization.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.RequestedCheckIn, &req.RequestedCheckOut,
		&req.Reason, &req.Status, &req.ReviewedBy, &req.ReviewedAt, &req.ReviewNote,
		&req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.Department,
	)
	return req, err
}

func (r *regularizationRepository) Create(ctx context.Context, req regularization.Request) (regularization.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO regularizations (id, employee_id, date, requested_check_in, requested_check_out, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, req.Date, req.RequestedCheckIn, req.RequestedCheckOut, req.Reason, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return regularization.Request{}, fmt.Errorf("failed to create regularization: %w", err)
	}
	return req, nil
}

func (r *regularizationRepository) GetByID(ctx context.Context, id string) (regularization.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + regularizationColumns + `
		FROM regularizations r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1
	`

	req, err := scanRegularization(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return regularization.Request{}, regularization.ErrRequestNotFound
		}
		return regularization.Request{}, fmt.Errorf("failed to get regularization: %w", err)
	}
	return req, nil
}

func (r *regularizationRepository) HasPendingForDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM regularizations
			WHERE employee_id = $1 AND date = $2 AND status = 'pending'
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending regularization: %w", err)
	}
	return exists, nil
}

func (r *regularizationRepository) List(ctx context.Context, filter regularization.Filter) ([]regularization.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND r.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND r.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM regularizations r WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count regularizations: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+regularizationColumns+`
		FROM regularizations r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE %s
		ORDER BY r.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query regularizations: %w", err)
	}
	defer rows.Close()

	var requests []regularization.Request
	for rows.Next() {
		req, err := scanRegularization(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan regularization: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, total, rows.Err()
}

func (r *regularizationRepository) Update(ctx context.Context, req regularization.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE regularizations
		SET status = $2, reviewed_by = $3, reviewed_at = $4, review_note = $5,
		    updated_at = now()
		WHERE id = $1
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, req.ID, req.Status, req.ReviewedBy, req.ReviewedAt, req.ReviewNote).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return regularization.ErrRequestNotFound
		}
		return fmt.Errorf("failed to update regularization: %w", err)
	}
	return nil
}
