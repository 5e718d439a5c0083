package errors

import "errors"

var (
	ErrAdNotFound     = errors.New("ad not found")
	ErrNoActivePopup  = errors.New("no active popup ad")
	ErrInvalidAdInput = errors.New("invalid ad input")
	ErrForbidden      = errors.New("caller lacks the required role")
)
