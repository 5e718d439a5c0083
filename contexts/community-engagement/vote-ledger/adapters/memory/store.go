package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"kasaba/contexts/community-engagement/vote-ledger/domain/entities"
	domainerrors "kasaba/contexts/community-engagement/vote-ledger/domain/errors"

	"github.com/google/uuid"
)

// Store is the in-memory vote ledger used by tests and in-memory wiring.
// Every mutating method holds the lock across the whole read-check-write, so
// counters and per-user entries can never drift apart.
type Store struct {
	mu          sync.RWMutex
	adminPolls  map[string]entities.AdminPoll
	publicPolls map[string]entities.PublicPoll
	events      map[string]entities.PublicEvent
}

func NewStore() *Store {
	return &Store{
		adminPolls:  map[string]entities.AdminPoll{},
		publicPolls: map[string]entities.PublicPoll{},
		events:      map[string]entities.PublicEvent{},
	}
}

func (s *Store) CreateAdminPoll(_ context.Context, poll entities.AdminPoll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adminPolls[strings.TrimSpace(poll.PollID)] = cloneAdminPoll(poll)
	return nil
}

func (s *Store) GetAdminPoll(_ context.Context, pollID string) (entities.AdminPoll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	poll, ok := s.adminPolls[strings.TrimSpace(pollID)]
	if !ok {
		return entities.AdminPoll{}, domainerrors.ErrPollNotFound
	}
	return cloneAdminPoll(poll), nil
}

func (s *Store) ListAdminPolls(_ context.Context, onlyOpen bool, now time.Time) ([]entities.AdminPoll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	polls := make([]entities.AdminPoll, 0, len(s.adminPolls))
	for _, poll := range s.adminPolls {
		if onlyOpen && !poll.Open(now) {
			continue
		}
		polls = append(polls, cloneAdminPoll(poll))
	}
	sort.Slice(polls, func(i, j int) bool {
		return polls[i].CreatedAt.After(polls[j].CreatedAt)
	})
	return polls, nil
}

func (s *Store) RecordAdminPollVote(
	_ context.Context,
	pollID string,
	userID string,
	optionID string,
	now time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.adminPolls[strings.TrimSpace(pollID)]
	if !ok {
		return domainerrors.ErrPollNotFound
	}
	if !poll.Open(now) {
		return domainerrors.ErrPollClosed
	}
	if poll.HasVoted(userID) {
		return domainerrors.ErrAlreadyVoted
	}

	found := false
	for i := range poll.Options {
		if poll.Options[i].OptionID == optionID {
			poll.Options[i].VoteCount++
			found = true
			break
		}
	}
	if !found {
		return domainerrors.ErrOptionNotFound
	}

	poll.TotalVotes++
	poll.VotedUserIDs = append(poll.VotedUserIDs, userID)
	poll.UpdatedAt = now
	s.adminPolls[poll.PollID] = poll
	return nil
}

func (s *Store) CloseAdminPoll(_ context.Context, pollID string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.adminPolls[strings.TrimSpace(pollID)]
	if !ok {
		return domainerrors.ErrPollNotFound
	}
	if !poll.IsActive {
		return domainerrors.ErrPreconditionFailed
	}
	poll.IsActive = false
	poll.UpdatedAt = updatedAt
	s.adminPolls[poll.PollID] = poll
	return nil
}

func (s *Store) CreatePublicPoll(_ context.Context, poll entities.PublicPoll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publicPolls[strings.TrimSpace(poll.PollID)] = clonePublicPoll(poll)
	return nil
}

func (s *Store) GetPublicPoll(_ context.Context, pollID string) (entities.PublicPoll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	poll, ok := s.publicPolls[strings.TrimSpace(pollID)]
	if !ok {
		return entities.PublicPoll{}, domainerrors.ErrPollNotFound
	}
	return clonePublicPoll(poll), nil
}

func (s *Store) ListPublicPolls(_ context.Context, limit int, offset int) ([]entities.PublicPoll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	polls := make([]entities.PublicPoll, 0, len(s.publicPolls))
	for _, poll := range s.publicPolls {
		polls = append(polls, clonePublicPoll(poll))
	}
	sort.Slice(polls, func(i, j int) bool {
		return polls[i].CreatedAt.After(polls[j].CreatedAt)
	})
	return pagePublicPolls(polls, limit, offset), nil
}

func (s *Store) SetPublicPollVote(
	_ context.Context,
	pollID string,
	userID string,
	choice entities.PublicChoice,
	now time.Time,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.publicPolls[strings.TrimSpace(pollID)]
	if !ok {
		return false, domainerrors.ErrPollNotFound
	}

	previous, voted := poll.VotedUsers[userID]
	if voted && previous == choice {
		return false, nil
	}

	poll = clonePublicPoll(poll)
	if voted {
		switch previous {
		case entities.ChoiceAgree:
			poll.AgreeCount--
		case entities.ChoiceDisagree:
			poll.DisagreeCount--
		}
	}
	switch choice {
	case entities.ChoiceAgree:
		poll.AgreeCount++
	case entities.ChoiceDisagree:
		poll.DisagreeCount++
	}
	poll.VotedUsers[userID] = choice
	poll.UpdatedAt = now
	s.publicPolls[poll.PollID] = poll
	return true, nil
}

func (s *Store) CreatePublicEvent(_ context.Context, event entities.PublicEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[strings.TrimSpace(event.EventID)] = cloneEvent(event)
	return nil
}

func (s *Store) GetPublicEvent(_ context.Context, eventID string) (entities.PublicEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[strings.TrimSpace(eventID)]
	if !ok {
		return entities.PublicEvent{}, domainerrors.ErrEventNotFound
	}
	return cloneEvent(event), nil
}

func (s *Store) ListPublicEvents(_ context.Context, limit int, offset int) ([]entities.PublicEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]entities.PublicEvent, 0, len(s.events))
	for _, event := range s.events {
		events = append(events, cloneEvent(event))
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].EventDate != events[j].EventDate {
			return events[i].EventDate < events[j].EventDate
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return pageEvents(events, limit, offset), nil
}

func (s *Store) SetEventRSVP(
	_ context.Context,
	eventID string,
	userID string,
	status entities.RSVPStatus,
	now time.Time,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[strings.TrimSpace(eventID)]
	if !ok {
		return false, domainerrors.ErrEventNotFound
	}

	previous, responded := event.RSVPStatus[userID]
	if responded && previous == status {
		return false, nil
	}

	event = cloneEvent(event)
	if responded {
		switch previous {
		case entities.RSVPAttending:
			event.AttendingCount--
		case entities.RSVPNotAttending:
			event.NotAttendingCount--
		}
	}
	switch status {
	case entities.RSVPAttending:
		event.AttendingCount++
	case entities.RSVPNotAttending:
		event.NotAttendingCount++
	}
	event.RSVPStatus[userID] = status
	event.UpdatedAt = now
	s.events[event.EventID] = event
	return true, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func cloneAdminPoll(poll entities.AdminPoll) entities.AdminPoll {
	out := poll
	out.Options = append([]entities.PollOption(nil), poll.Options...)
	out.VotedUserIDs = append([]string(nil), poll.VotedUserIDs...)
	return out
}

func clonePublicPoll(poll entities.PublicPoll) entities.PublicPoll {
	out := poll
	out.VotedUsers = make(map[string]entities.PublicChoice, len(poll.VotedUsers))
	for voter, choice := range poll.VotedUsers {
		out.VotedUsers[voter] = choice
	}
	return out
}

func cloneEvent(event entities.PublicEvent) entities.PublicEvent {
	out := event
	out.RSVPStatus = make(map[string]entities.RSVPStatus, len(event.RSVPStatus))
	for user, status := range event.RSVPStatus {
		out.RSVPStatus[user] = status
	}
	return out
}

func pagePublicPolls(polls []entities.PublicPoll, limit int, offset int) []entities.PublicPoll {
	if offset >= len(polls) {
		return []entities.PublicPoll{}
	}
	end := offset + limit
	if limit <= 0 || end > len(polls) {
		end = len(polls)
	}
	return polls[offset:end]
}

func pageEvents(events []entities.PublicEvent, limit int, offset int) []entities.PublicEvent {
	if offset >= len(events) {
		return []entities.PublicEvent{}
	}
	end := offset + limit
	if limit <= 0 || end > len(events) {
		end = len(events)
	}
	return events[offset:end]
}
