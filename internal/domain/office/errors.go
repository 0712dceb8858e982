package office

import "errors"

var (
	ErrOfficeNotFound     = errors.New("office not found")
	ErrNoOfficeConfigured = errors.New("no active office is configured")
)
