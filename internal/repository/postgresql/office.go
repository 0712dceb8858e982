package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/office"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
)

type officeRepository struct {
	db *database.DB
}

func NewOfficeRepository(db *database.DB) office.Repository {
	return &officeRepository{db: db}
}

const officeColumns = `id, name, address, latitude, longitude, radius_meters, is_active, created_at, updated_at`

func scanOffice(row pgx.Row) (office.Office, error) {
	var o office.Office
	err := row.Scan(
		&o.ID, &o.Name, &o.Address, &o.Latitude, &o.Longitude,
		&o.RadiusMeters, &o.IsActive, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

func (r *officeRepository) Create(ctx context.Context, o office.Office) (office.Office, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO offices (id, name, address, latitude, longitude, radius_meters, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		o.ID, o.Name, o.Address, o.Latitude, o.Longitude, o.RadiusMeters, o.IsActive,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return office.Office{}, fmt.Errorf("failed to create office: %w", err)
	}
	return o, nil
}

func (r *officeRepository) GetByID(ctx context.Context, id string) (office.Office, error) {
	q := GetQuerier(ctx, r.db)

	o, err := scanOffice(q.QueryRow(ctx, `SELECT `+officeColumns+` FROM offices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.Office{}, office.ErrOfficeNotFound
		}
		return office.Office{}, fmt.Errorf("failed to get office: %w", err)
	}
	return o, nil
}

func (r *officeRepository) ListActive(ctx context.Context) ([]office.Office, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+officeColumns+` FROM offices WHERE is_active = true ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query offices: %w", err)
	}
	defer rows.Close()

	var offices []office.Office
	for rows.Next() {
		o, err := scanOffice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan office: %w", err)
		}
		offices = append(offices, o)
	}
	return offices, rows.Err()
}

func (r *officeRepository) Update(ctx context.Context, o office.Office) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE offices
		SET name = $2, address = $3, latitude = $4, longitude = $5,
		    radius_meters = $6, is_active = $7, updated_at = now()
		WHERE id = $1
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		o.ID, o.Name, o.Address, o.Latitude, o.Longitude, o.RadiusMeters, o.IsActive,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.ErrOfficeNotFound
		}
		return fmt.Errorf("failed to update office: %w", err)
	}
	return nil
}

func (r *officeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM offices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete office: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return office.ErrOfficeNotFound
	}
	return nil
}
