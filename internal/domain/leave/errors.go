package leave

import "errors"

var (
	ErrLeaveNotFound      = errors.New("leave request not found")
	ErrLeaveOverlap       = errors.New("an approved or pending leave already covers this range")
	ErrLeaveNotPending    = errors.New("leave request has already been reviewed")
	ErrLeaveNotCancelable = errors.New("leave request can no longer be canceled")
)
