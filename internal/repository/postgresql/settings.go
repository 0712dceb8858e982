package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kriyahr/hrms-backend-go/internal/domain/settings"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.Repository {
	return &settingsRepository{db: db}
}

// Patches are stored as jsonb so absent fields stay absent; the resolver
// distinguishes "not set" from a zero value.
func (r *settingsRepository) GetGlobal(ctx context.Context) (settings.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, scope, department, attendance, geofence, updated_at
		FROM settings
		WHERE scope = 'global'
		LIMIT 1
	`

	var doc settings.Document
	err := q.QueryRow(ctx, query).Scan(
		&doc.ID, &doc.Scope, &doc.Department, &doc.Attendance, &doc.Geofence, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Document{}, settings.ErrSettingsNotFound
		}
		return settings.Document{}, fmt.Errorf("failed to get global settings: %w", err)
	}
	return doc, nil
}

func (r *settingsRepository) GetDepartment(ctx context.Context, department string) (settings.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, scope, department, attendance, geofence, updated_at
		FROM settings
		WHERE scope = 'department' AND department = $1
		LIMIT 1
	`

	var doc settings.Document
	err := q.QueryRow(ctx, query, department).Scan(
		&doc.ID, &doc.Scope, &doc.Department, &doc.Attendance, &doc.Geofence, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Document{}, settings.ErrSettingsNotFound
		}
		return settings.Document{}, fmt.Errorf("failed to get department settings: %w", err)
	}
	return doc, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, doc settings.Document) (settings.Document, error) {
	q := GetQuerier(ctx, r.db)

	// COALESCE keys the conflict on ('global', '') for the global document.
	query := `
		INSERT INTO settings (id, scope, department, attendance, geofence)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (scope, COALESCE(department, ''))
		DO UPDATE SET attendance = EXCLUDED.attendance,
		              geofence = EXCLUDED.geofence,
		              updated_at = now()
		RETURNING id, updated_at
	`

	err := q.QueryRow(ctx, query,
		doc.ID, doc.Scope, doc.Department, doc.Attendance, doc.Geofence,
	).Scan(&doc.ID, &doc.UpdatedAt)
	if err != nil {
		return settings.Document{}, fmt.Errorf("failed to upsert settings: %w", err)
	}
	return doc, nil
}
