package attendance

import "errors"

var (
	// Check-in/check-out errors
	ErrAlreadyCheckedIn      = errors.New("you have already checked in today")
	ErrNotCheckedIn          = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut     = errors.New("you have already checked out")
	ErrCheckOutBeforeCheckIn = errors.New("check-out must be after check-in")
	ErrTaskReportRequired    = errors.New("task report is required to check out")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidStatus      = errors.New("unrecognized attendance status")
)
