package regularization

import "errors"

var (
	ErrRequestNotFound   = errors.New("regularization request not found")
	ErrRequestExists     = errors.New("a pending regularization already exists for this date")
	ErrRequestNotPending = errors.New("regularization request has already been reviewed")
	ErrNothingRequested  = errors.New("no corrected times were provided")
)
