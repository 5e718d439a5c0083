package queries

import (
	"context"
	"strings"
	"time"

	"kasaba/contexts/community-engagement/vote-ledger/domain/entities"
	domainerrors "kasaba/contexts/community-engagement/vote-ledger/domain/errors"
	"kasaba/contexts/community-engagement/vote-ledger/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PollsUseCase serves the read side of the ledger. Everything here is
// public within the town; only raw voter identities stay admin-only.
type PollsUseCase struct {
	AdminPolls  ports.AdminPollRepository
	PublicVotes ports.PublicVoteRepository
	Clock       ports.Clock
}

func (uc PollsUseCase) GetAdminPoll(ctx context.Context, pollID string) (entities.AdminPoll, error) {
	return uc.AdminPolls.GetAdminPoll(ctx, strings.TrimSpace(pollID))
}

// ListAdminPolls returns open polls when onlyOpen is set, all polls
// otherwise, newest first.
func (uc PollsUseCase) ListAdminPolls(ctx context.Context, onlyOpen bool) ([]entities.AdminPoll, error) {
	return uc.AdminPolls.ListAdminPolls(ctx, onlyOpen, uc.now())
}

func (uc PollsUseCase) GetPublicPoll(ctx context.Context, pollID string) (entities.PublicPoll, error) {
	return uc.PublicVotes.GetPublicPoll(ctx, strings.TrimSpace(pollID))
}

func (uc PollsUseCase) ListPublicPolls(ctx context.Context, limit int, offset int) ([]entities.PublicPoll, error) {
	limit, offset = clampPage(limit, offset)
	return uc.PublicVotes.ListPublicPolls(ctx, limit, offset)
}

func (uc PollsUseCase) GetPublicEvent(ctx context.Context, eventID string) (entities.PublicEvent, error) {
	return uc.PublicVotes.GetPublicEvent(ctx, strings.TrimSpace(eventID))
}

func (uc PollsUseCase) ListPublicEvents(ctx context.Context, limit int, offset int) ([]entities.PublicEvent, error) {
	limit, offset = clampPage(limit, offset)
	return uc.PublicVotes.ListPublicEvents(ctx, limit, offset)
}

// MyVote reports the caller's recorded choice on a public poll, or an empty
// choice when the caller has not voted.
func (uc PollsUseCase) MyVote(ctx context.Context, actor ports.Actor, pollID string) (entities.PublicChoice, error) {
	userID := strings.TrimSpace(actor.UserID)
	if userID == "" {
		return "", domainerrors.ErrInvalidVoteInput
	}
	poll, err := uc.PublicVotes.GetPublicPoll(ctx, strings.TrimSpace(pollID))
	if err != nil {
		return "", err
	}
	return poll.VotedUsers[userID], nil
}

func (uc PollsUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func clampPage(limit int, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
