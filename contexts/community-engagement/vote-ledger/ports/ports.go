package ports

import (
	"context"
	"time"

	"kasaba/contexts/community-engagement/vote-ledger/domain/entities"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// AdminPollRepository is the ledger contract for official polls. The vote
// record method is one transaction: tally bump, total bump and the voter
// entry land together or not at all.
type AdminPollRepository interface {
	CreateAdminPoll(ctx context.Context, poll entities.AdminPoll) error
	GetAdminPoll(ctx context.Context, pollID string) (entities.AdminPoll, error)
	ListAdminPolls(ctx context.Context, onlyOpen bool, now time.Time) ([]entities.AdminPoll, error)

	// RecordAdminPollVote re-verifies poll state inside the transaction and
	// returns ErrPollClosed / ErrAlreadyVoted / ErrOptionNotFound when the
	// snapshot the caller saw is stale.
	RecordAdminPollVote(ctx context.Context, pollID string, userID string, optionID string, now time.Time) error

	// CloseAdminPoll flips is_active true->false; a repeated close returns
	// ErrPreconditionFailed.
	CloseAdminPoll(ctx context.Context, pollID string, updatedAt time.Time) error
}

// PublicVoteRepository covers the changeable-vote entities. Both setters
// adjust the two buckets and the per-user entry in a single transaction and
// report whether the stored choice actually changed.
type PublicVoteRepository interface {
	CreatePublicPoll(ctx context.Context, poll entities.PublicPoll) error
	GetPublicPoll(ctx context.Context, pollID string) (entities.PublicPoll, error)
	ListPublicPolls(ctx context.Context, limit int, offset int) ([]entities.PublicPoll, error)
	SetPublicPollVote(ctx context.Context, pollID string, userID string, choice entities.PublicChoice, now time.Time) (bool, error)

	CreatePublicEvent(ctx context.Context, event entities.PublicEvent) error
	GetPublicEvent(ctx context.Context, eventID string) (entities.PublicEvent, error)
	ListPublicEvents(ctx context.Context, limit int, offset int) ([]entities.PublicEvent, error)
	SetEventRSVP(ctx context.Context, eventID string, userID string, status entities.RSVPStatus, now time.Time) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
