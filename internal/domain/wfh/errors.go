package wfh

import "errors"

var (
	ErrRequestNotFound   = errors.New("wfh request not found")
	ErrRequestExists     = errors.New("a wfh request already exists for this date")
	ErrRequestNotPending = errors.New("wfh request has already been reviewed")
)
