package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/taskreport"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
)

type taskReportRepository struct {
	db *database.DB
}

func NewTaskReportRepository(db *database.DB) taskreport.Repository {
	return &taskReportRepository{db: db}
}

func (r *taskReportRepository) Create(ctx context.Context, report taskreport.Report) (taskreport.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO task_reports (id, attendance_id, employee_id, date, tasks)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		report.ID, report.AttendanceID, report.EmployeeID, report.Date, report.Tasks,
	).Scan(&report.CreatedAt)
	if err != nil {
		return taskreport.Report{}, err
	}
	return report, nil
}

func (r *taskReportRepository) GetByAttendanceID(ctx context.Context, attendanceID string) (taskreport.Report, error) {
	q := GetQuerier(ctx, r.db)

	var report taskreport.Report
	err := q.QueryRow(ctx, `
		SELECT id, attendance_id, employee_id, date, tasks, created_at
		FROM task_reports
		WHERE attendance_id = $1
	`, attendanceID).Scan(
		&report.ID, &report.AttendanceID, &report.EmployeeID,
		&report.Date, &report.Tasks, &report.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return taskreport.Report{}, taskreport.ErrReportNotFound
		}
		return taskreport.Report{}, fmt.Errorf("failed to get task report: %w", err)
	}
	return report, nil
}

func (r *taskReportRepository) ListRange(ctx context.Context, employeeID string, from, to time.Time) ([]taskreport.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_id, employee_id, date, tasks, created_at
		FROM task_reports
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query task reports: %w", err)
	}
	defer rows.Close()

	var reports []taskreport.Report
	for rows.Next() {
		var report taskreport.Report
		err := rows.Scan(
			&report.ID, &report.AttendanceID, &report.EmployeeID,
			&report.Date, &report.Tasks, &report.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}
