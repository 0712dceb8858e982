package settings

import "context"

type Repository interface {
	// GetGlobal returns the global settings document, or ErrSettingsNotFound
	// if none has been written yet.
	GetGlobal(ctx context.Context) (Document, error)

	// GetDepartment returns the sparse override document for a department,
	// or ErrSettingsNotFound if the department has no overrides.
	GetDepartment(ctx context.Context, department string) (Document, error)

	// Upsert creates or replaces a settings document for its scope.
	Upsert(ctx context.Context, doc Document) (Document, error)
}
