package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/payroll"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	p.id, p.employee_id, p.year, p.month,
	p.gross_salary, p.deductions, p.net_salary,
	p.working_days, p.present_days, p.half_days, p.leave_days, p.absent_days,
	p.file_path, p.generated_at,
	e.name AS employee_name,
	e.employee_code AS employee_code,
	e.department AS department`

func scanSlip(row pgx.Row) (payroll.Slip, error) {
	var s payroll.Slip
	var month int
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Year, &month,
		&s.GrossSalary, &s.Deductions, &s.NetSalary,
		&s.WorkingDays, &s.PresentDays, &s.HalfDays, &s.LeaveDays, &s.AbsentDays,
		&s.FilePath, &s.GeneratedAt,
		&s.EmployeeName, &s.EmployeeCode, &s.Department,
	)
	s.Month = time.Month(month)
	return s, err
}

func (r *payrollRepository) Create(ctx context.Context, s payroll.Slip) (payroll.Slip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			id, employee_id, year, month,
			gross_salary, deductions, net_salary,
			working_days, present_days, half_days, leave_days, absent_days,
			file_path, generated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		s.ID, s.EmployeeID, s.Year, int(s.Month),
		s.GrossSalary, s.Deductions, s.NetSalary,
		s.WorkingDays, s.PresentDays, s.HalfDays, s.LeaveDays, s.AbsentDays,
		s.FilePath, s.GeneratedAt,
	).Scan(&id)
	if err != nil {
		return payroll.Slip{}, err
	}
	return s, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Slip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payslips p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	s, err := scanSlip(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Slip{}, payroll.ErrSlipNotFound
		}
		return payroll.Slip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return s, nil
}

func (r *payrollRepository) GetByMonth(ctx context.Context, employeeID string, year int, month time.Month) (*payroll.Slip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payslips p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.employee_id = $1 AND p.year = $2 AND p.month = $3
		LIMIT 1
	`

	s, err := scanSlip(q.QueryRow(ctx, query, employeeID, year, int(month)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payslip by month: %w", err)
	}
	return &s, nil
}

func (r *payrollRepository) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Slip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payslips p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.employee_id = $1
		ORDER BY p.year DESC, p.month DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payslips: %w", err)
	}
	defer rows.Close()

	var slips []payroll.Slip
	for rows.Next() {
		s, err := scanSlip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		slips = append(slips, s)
	}
	return slips, rows.Err()
}
