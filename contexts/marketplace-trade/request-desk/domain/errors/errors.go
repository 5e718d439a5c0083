package errors

import "errors"

var (
	ErrRequestNotFound     = errors.New("request not found")
	ErrInvalidRequestInput = errors.New("invalid request input")
	ErrInvalidTransition   = errors.New("request state transition not allowed")
	ErrForbidden           = errors.New("caller lacks the required role")
	ErrPreconditionFailed  = errors.New("conditional write precondition failed")
)
