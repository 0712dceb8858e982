package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/leave"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

const leaveColumns = `
	l.id, l.employee_id, l.type, l.start_date, l.end_date, l.reason,
	l.status, l.reviewed_by, l.reviewed_at, l.review_note,
	l.created_at, l.updated_at,
	e.name AS employee_name,
	e.department AS department`

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.Type, &l.StartDate, &l.EndDate, &l.Reason,
		&l.Status, &l.ReviewedBy, &l.ReviewedAt, &l.ReviewNote,
		&l.CreatedAt, &l.UpdatedAt,
		&l.EmployeeName, &l.Department,
	)
	return l, err
}

func (r *leaveRepository) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves (id, employee_id, type, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		l.ID, l.EmployeeID, l.Type, l.StartDate, l.EndDate, l.Reason, l.Status,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}
	return l, nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1
	`

	l, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave: %w", err)
	}
	return l, nil
}

func (r *leaveRepository) List(ctx context.Context, filter leave.Filter) ([]leave.Leave, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND l.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.From != nil {
		baseWhere += fmt.Sprintf(" AND l.end_date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		baseWhere += fmt.Sprintf(" AND l.start_date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM leaves l WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leaves: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+leaveColumns+`
		FROM leaves l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE %s
		ORDER BY l.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}
	return leaves, total, rows.Err()
}

func (r *leaveRepository) ListApprovedForRange(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.employee_id = $1
		  AND l.status = 'approved'
		  AND l.start_date <= $3
		  AND l.end_date >= $2
		ORDER BY l.start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

func (r *leaveRepository) HasOverlap(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leaves
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	return exists, nil
}

func (r *leaveRepository) Update(ctx context.Context, l leave.Leave) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET status = $2, reviewed_by = $3, reviewed_at = $4, review_note = $5,
		    updated_at = now()
		WHERE id = $1
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, l.ID, l.Status, l.ReviewedBy, l.ReviewedAt, l.ReviewNote).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveNotFound
		}
		return fmt.Errorf("failed to update leave: %w", err)
	}
	return nil
}
