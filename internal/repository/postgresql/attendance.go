package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// Location, checkout location and geofence outcome are stored as jsonb; pgx
// marshals them through the struct tags.
const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in, a.check_out,
	a.status, a.work_hours, a.is_late,
	a.location, a.checkout_location, a.geofence,
	a.created_at, a.updated_at,
	e.name AS employee_name,
	e.department AS department`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.Status, &att.WorkHours, &att.IsLate,
		&att.Location, &att.CheckoutLocation, &att.Geofence,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName, &att.Department,
	)
	return att, err
}

// Create inserts a new record. A concurrent duplicate for the same
// (employee, day) fails on ux_attendance_employee_day and is surfaced to the
// caller unwrapped so it can map the violation.
func (r *attendanceRepository) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (
			id, employee_id, date, check_in, check_out,
			status, work_hours, is_late,
			location, checkout_location, geofence
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Date, record.CheckIn, record.CheckOut,
		record.Status, record.WorkHours, record.IsLate,
		record.Location, record.CheckoutLocation, record.Geofence,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, err
	}

	return record, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}
	return att, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &att, nil
}

func (r *attendanceRepository) Update(ctx context.Context, record attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance
		SET check_in = $2, check_out = $3, status = $4, work_hours = $5,
		    is_late = $6, location = $7, checkout_location = $8,
		    geofence = $9, updated_at = now()
		WHERE id = $1
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		record.ID, record.CheckIn, record.CheckOut, record.Status, record.WorkHours,
		record.IsLate, record.Location, record.CheckoutLocation, record.Geofence,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	return nil
}

func (r *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.EmployeeName != nil && *filter.EmployeeName != "" {
		baseWhere += fmt.Sprintf(" AND e.name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.EmployeeName+"%")
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND e.department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+attendanceColumns+`
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC, e.name ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	return records, total, rows.Err()
}

func (r *attendanceRepository) ListRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date >= $2 AND a.date <= $3
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance range: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	return records, rows.Err()
}

func (r *attendanceRepository) ListOpenSessions(ctx context.Context, day time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.date = $1 AND a.check_in IS NOT NULL AND a.check_out IS NULL
			AND a.status <> 'absent'
		ORDER BY a.employee_id
	`

	rows, err := q.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query open sessions: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	return records, rows.Err()
}
