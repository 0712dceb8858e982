package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/holiday"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (id, date, title, is_optional)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, h.ID, h.Date, h.Title, h.IsOptional).Scan(&h.CreatedAt)
	if err != nil {
		return holiday.Holiday{}, err
	}
	return h, nil
}

func (r *holidayRepository) GetByID(ctx context.Context, id string) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	var h holiday.Holiday
	err := q.QueryRow(ctx,
		`SELECT id, date, title, is_optional, created_at FROM holidays WHERE id = $1`, id,
	).Scan(&h.ID, &h.Date, &h.Title, &h.IsOptional, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday: %w", err)
	}
	return h, nil
}

func (r *holidayRepository) ListRange(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, title, is_optional, created_at
		FROM holidays
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Title, &h.IsOptional, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
