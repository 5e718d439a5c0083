package errors

import "errors"

var (
	ErrPollNotFound       = errors.New("poll not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrOptionNotFound     = errors.New("poll option not found")
	ErrInvalidVoteInput   = errors.New("invalid vote input")
	ErrAlreadyVoted       = errors.New("user already voted in this poll")
	ErrPollClosed         = errors.New("poll is closed")
	ErrForbidden          = errors.New("caller lacks the required role")
	ErrPreconditionFailed = errors.New("conditional write precondition failed")
)
