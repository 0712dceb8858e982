package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/user"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, role, employee_id, google_id, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.EmployeeID,
		&u.GoogleID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (id, email, password_hash, role, employee_id, google_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Role, u.EmployeeID, u.GoogleID, u.IsActive,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByGoogleID(ctx context.Context, googleID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by google id: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE employee_id = $1`, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by employee id: %w", err)
	}
	return u, nil
}

func (r *userRepository) ListManagers(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role IN ('admin', 'hr') AND is_active = true
		ORDER BY email
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query managers: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET email = $2, password_hash = $3, role = $4, employee_id = $5,
		    google_id = $6, is_active = $7, updated_at = now()
		WHERE id = $1
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Role, u.EmployeeID, u.GoogleID, u.IsActive,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
