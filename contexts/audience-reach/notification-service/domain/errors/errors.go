package errors

import "errors"

var (
	ErrNotificationNotFound     = errors.New("notification not found")
	ErrUserNotFound             = errors.New("user not found in directory")
	ErrInvalidTarget            = errors.New("invalid notification target")
	ErrInvalidNotificationInput = errors.New("invalid notification input")
	ErrForbidden                = errors.New("caller lacks the required role")
)
