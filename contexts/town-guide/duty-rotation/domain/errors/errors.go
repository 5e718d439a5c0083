package errors

import "errors"

var (
	ErrPharmacyNotFound = errors.New("pharmacy not found")
	ErrNoDutyAssigned   = errors.New("no duty pharmacy assigned for this date")
	ErrInvalidDutyInput = errors.New("invalid duty rotation input")
	ErrForbidden        = errors.New("caller lacks the required role")
)
