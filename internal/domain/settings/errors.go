package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("settings document not found")
	ErrInvalidScope     = errors.New("invalid settings scope")
)
