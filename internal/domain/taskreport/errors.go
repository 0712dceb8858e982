package taskreport

import "errors"

var (
	ErrReportNotFound = errors.New("task report not found")
	ErrReportExists   = errors.New("a task report already exists for this attendance record")
)
