package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "kasaba/contexts/community-engagement/vote-ledger/application"
	"kasaba/contexts/community-engagement/vote-ledger/domain/entities"
	domainerrors "kasaba/contexts/community-engagement/vote-ledger/domain/errors"
	"kasaba/contexts/community-engagement/vote-ledger/ports"
)

// casRetryLimit bounds the internal retries after a lost conditional-write
// race. The retried call either lands or returns the now-accurate business
// error, so retrying beyond a few attempts buys nothing.
const casRetryLimit = 3

// CreateEventCommand is the write-model input for community events.
type CreateEventCommand struct {
	Actor       ports.Actor
	UserName    string
	Type        entities.EventType
	Title       string
	Description string
	EventDate   string
	EventTime   string
	Location    string
	ImageURL    string
}

// VoteUseCase orchestrates every vote mutation. Each operation is one
// transactional repository call; nothing here reads-then-writes across two
// round trips without a precondition.
type VoteUseCase struct {
	AdminPolls  ports.AdminPollRepository
	PublicVotes ports.PublicVoteRepository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func (uc VoteUseCase) CreateAdminPoll(
	ctx context.Context,
	actor ports.Actor,
	question string,
	optionTexts []string,
	endDate time.Time,
) (entities.AdminPoll, error) {
	if !actor.IsAdmin() {
		return entities.AdminPoll{}, domainerrors.ErrForbidden
	}
	question = strings.TrimSpace(question)
	if question == "" || len(optionTexts) < 2 {
		return entities.AdminPoll{}, domainerrors.ErrInvalidVoteInput
	}

	now := uc.now()
	if !endDate.After(now) {
		return entities.AdminPoll{}, domainerrors.ErrInvalidVoteInput
	}

	pollID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.AdminPoll{}, err
	}
	options := make([]entities.PollOption, 0, len(optionTexts))
	for _, text := range optionTexts {
		text = strings.TrimSpace(text)
		if text == "" {
			return entities.AdminPoll{}, domainerrors.ErrInvalidVoteInput
		}
		optionID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.AdminPoll{}, err
		}
		options = append(options, entities.PollOption{OptionID: optionID, Text: text})
	}

	poll := entities.AdminPoll{
		PollID:    pollID,
		Question:  question,
		Options:   options,
		EndDate:   endDate.UTC(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.AdminPolls.CreateAdminPoll(ctx, poll); err != nil {
		return entities.AdminPoll{}, err
	}

	application.ResolveLogger(uc.Logger).Info("admin poll created",
		"event", "vote_admin_poll_created",
		"module", "community-engagement/vote-ledger",
		"layer", "application",
		"poll_id", poll.PollID,
		"admin_id", strings.TrimSpace(actor.UserID),
		"option_count", len(options),
	)
	return poll, nil
}

func (uc VoteUseCase) CloseAdminPoll(ctx context.Context, actor ports.Actor, pollID string) (entities.AdminPoll, error) {
	if !actor.IsAdmin() {
		return entities.AdminPoll{}, domainerrors.ErrForbidden
	}
	pollID = strings.TrimSpace(pollID)

	err := uc.AdminPolls.CloseAdminPoll(ctx, pollID, uc.now())
	if errors.Is(err, domainerrors.ErrPreconditionFailed) {
		// Already closed; closing is idempotent from the caller's view.
		return uc.AdminPolls.GetAdminPoll(ctx, pollID)
	}
	if err != nil {
		return entities.AdminPoll{}, err
	}

	application.ResolveLogger(uc.Logger).Info("admin poll closed",
		"event", "vote_admin_poll_closed",
		"module", "community-engagement/vote-ledger",
		"layer", "application",
		"poll_id", pollID,
		"admin_id", strings.TrimSpace(actor.UserID),
	)
	return uc.AdminPolls.GetAdminPoll(ctx, pollID)
}

// CastAdminPollVote is one-shot: the first vote of a user wins and every
// later attempt gets ErrAlreadyVoted. The tally, the total and the voter
// entry are committed by a single repository transaction.
func (uc VoteUseCase) CastAdminPollVote(
	ctx context.Context,
	actor ports.Actor,
	pollID string,
	optionID string,
) (entities.AdminPoll, error) {
	logger := application.ResolveLogger(uc.Logger)
	pollID = strings.TrimSpace(pollID)
	optionID = strings.TrimSpace(optionID)
	userID := strings.TrimSpace(actor.UserID)
	if pollID == "" || optionID == "" || userID == "" {
		return entities.AdminPoll{}, domainerrors.ErrInvalidVoteInput
	}

	var err error
	for attempt := 0; attempt < casRetryLimit; attempt++ {
		err = uc.AdminPolls.RecordAdminPollVote(ctx, pollID, userID, optionID, uc.now())
		if !errors.Is(err, domainerrors.ErrPreconditionFailed) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyVoted) {
			logger.Warn("duplicate admin poll vote rejected",
				"event", "vote_admin_poll_duplicate",
				"module", "community-engagement/vote-ledger",
				"layer", "application",
				"poll_id", pollID,
				"user_id", userID,
			)
		}
		return entities.AdminPoll{}, err
	}

	logger.Info("admin poll vote recorded",
		"event", "vote_admin_poll_recorded",
		"module", "community-engagement/vote-ledger",
		"layer", "application",
		"poll_id", pollID,
		"user_id", userID,
		"option_id", optionID,
	)
	return uc.AdminPolls.GetAdminPoll(ctx, pollID)
}

func (uc VoteUseCase) CreatePublicPoll(
	ctx context.Context,
	actor ports.Actor,
	userName string,
	text string,
) (entities.PublicPoll, error) {
	text = strings.TrimSpace(text)
	userID := strings.TrimSpace(actor.UserID)
	if userID == "" || text == "" {
		return entities.PublicPoll{}, domainerrors.ErrInvalidVoteInput
	}

	pollID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.PublicPoll{}, err
	}
	now := uc.now()
	poll := entities.PublicPoll{
		PollID:     pollID,
		UserID:     userID,
		UserName:   strings.TrimSpace(userName),
		Text:       text,
		VotedUsers: map[string]entities.PublicChoice{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.PublicVotes.CreatePublicPoll(ctx, poll); err != nil {
		return entities.PublicPoll{}, err
	}
	return poll, nil
}

// VotePublicPoll records or flips an agree/disagree vote. Re-submitting the
// same choice is a no-op, never an error; a flip moves one unit between the
// two buckets inside the repository transaction.
func (uc VoteUseCase) VotePublicPoll(
	ctx context.Context,
	actor ports.Actor,
	pollID string,
	choice entities.PublicChoice,
) (entities.PublicPoll, error) {
	pollID = strings.TrimSpace(pollID)
	userID := strings.TrimSpace(actor.UserID)
	if pollID == "" || userID == "" || !entities.ValidPublicChoice(choice) {
		return entities.PublicPoll{}, domainerrors.ErrInvalidVoteInput
	}

	var changed bool
	var err error
	for attempt := 0; attempt < casRetryLimit; attempt++ {
		changed, err = uc.PublicVotes.SetPublicPollVote(ctx, pollID, userID, choice, uc.now())
		if !errors.Is(err, domainerrors.ErrPreconditionFailed) {
			break
		}
	}
	if err != nil {
		return entities.PublicPoll{}, err
	}
	if changed {
		application.ResolveLogger(uc.Logger).Info("public poll vote set",
			"event", "vote_public_poll_set",
			"module", "community-engagement/vote-ledger",
			"layer", "application",
			"poll_id", pollID,
			"user_id", userID,
			"choice", string(choice),
		)
	}
	return uc.PublicVotes.GetPublicPoll(ctx, pollID)
}

func (uc VoteUseCase) CreatePublicEvent(ctx context.Context, cmd CreateEventCommand) (entities.PublicEvent, error) {
	userID := strings.TrimSpace(cmd.Actor.UserID)
	cmd.Title = strings.TrimSpace(cmd.Title)
	if userID == "" || cmd.Title == "" || !entities.ValidEventType(cmd.Type) {
		return entities.PublicEvent{}, domainerrors.ErrInvalidVoteInput
	}
	if _, err := time.Parse("2006-01-02", cmd.EventDate); err != nil {
		return entities.PublicEvent{}, domainerrors.ErrInvalidVoteInput
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.PublicEvent{}, err
	}
	now := uc.now()
	event := entities.PublicEvent{
		EventID:     eventID,
		UserID:      userID,
		UserName:    strings.TrimSpace(cmd.UserName),
		Type:        cmd.Type,
		Title:       cmd.Title,
		Description: strings.TrimSpace(cmd.Description),
		EventDate:   cmd.EventDate,
		EventTime:   strings.TrimSpace(cmd.EventTime),
		Location:    strings.TrimSpace(cmd.Location),
		ImageURL:    strings.TrimSpace(cmd.ImageURL),
		RSVPStatus:  map[string]entities.RSVPStatus{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.PublicVotes.CreatePublicEvent(ctx, event); err != nil {
		return entities.PublicEvent{}, err
	}
	return event, nil
}

// RSVPEvent has the same ledger contract as VotePublicPoll.
func (uc VoteUseCase) RSVPEvent(
	ctx context.Context,
	actor ports.Actor,
	eventID string,
	status entities.RSVPStatus,
) (entities.PublicEvent, error) {
	eventID = strings.TrimSpace(eventID)
	userID := strings.TrimSpace(actor.UserID)
	if eventID == "" || userID == "" || !entities.ValidRSVPStatus(status) {
		return entities.PublicEvent{}, domainerrors.ErrInvalidVoteInput
	}

	var changed bool
	var err error
	for attempt := 0; attempt < casRetryLimit; attempt++ {
		changed, err = uc.PublicVotes.SetEventRSVP(ctx, eventID, userID, status, uc.now())
		if !errors.Is(err, domainerrors.ErrPreconditionFailed) {
			break
		}
	}
	if err != nil {
		return entities.PublicEvent{}, err
	}
	if changed {
		application.ResolveLogger(uc.Logger).Info("event rsvp set",
			"event", "vote_event_rsvp_set",
			"module", "community-engagement/vote-ledger",
			"layer", "application",
			"event_id", eventID,
			"user_id", userID,
			"status", string(status),
		)
	}
	return uc.PublicVotes.GetPublicEvent(ctx, eventID)
}

func (uc VoteUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
