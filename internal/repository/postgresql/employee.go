package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/employee"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, employee_code, name, email, department, joining_date, is_active, base_salary, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.EmployeeCode, &e.Name, &e.Email, &e.Department,
		&e.JoiningDate, &e.IsActive, &e.BaseSalary, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, employee_code, name, email, department, joining_date, is_active, base_salary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.ID, e.EmployeeCode, e.Name, e.Email, e.Department, e.JoiningDate, e.IsActive, e.BaseSalary,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, err
	}

	return e, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE employee_code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.IsActive != nil {
		baseWhere += fmt.Sprintf(" AND is_active = $%d", argIdx)
		args = append(args, *filter.IsActive)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (name ILIKE $%d OR employee_code ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+employeeColumns+`
		FROM employees
		WHERE %s
		ORDER BY employee_code
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

func (r *employeeRepository) SearchByName(ctx context.Context, name string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE name ILIKE $1
		ORDER BY name
		LIMIT 50
	`

	rows, err := q.Query(ctx, query, "%"+name+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET name = $2, email = $3, department = $4, is_active = $5,
		    base_salary = $6, updated_at = now()
		WHERE id = $1
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, e.ID, e.Name, e.Email, e.Department, e.IsActive, e.BaseSalary).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return err
	}
	return nil
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+employeeColumns+` FROM employees WHERE is_active = true ORDER BY employee_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
