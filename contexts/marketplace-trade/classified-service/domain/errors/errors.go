package errors

import "errors"

var (
	ErrClassifiedNotFound  = errors.New("classified not found")
	ErrInvalidListingInput = errors.New("invalid listing input")
	ErrInvalidTransition   = errors.New("classified state transition not allowed")
	ErrForbidden           = errors.New("caller lacks the required role or ownership")
	ErrPreconditionFailed  = errors.New("conditional write precondition failed")
)
