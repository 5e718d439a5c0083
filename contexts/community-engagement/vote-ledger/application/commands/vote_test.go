package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"kasaba/contexts/community-engagement/vote-ledger/adapters/memory"
	"kasaba/contexts/community-engagement/vote-ledger/domain/entities"
	domainerrors "kasaba/contexts/community-engagement/vote-ledger/domain/errors"
	"kasaba/contexts/community-engagement/vote-ledger/ports"
)

type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newVoteUseCase(store *memory.Store, clock *stubClock) VoteUseCase {
	return VoteUseCase{
		AdminPolls:  store,
		PublicVotes: store,
		Clock:       clock,
		IDGen:       store,
	}
}

var (
	admin = ports.Actor{UserID: "admin-1", Role: ports.RoleAdmin}
	voter = ports.Actor{UserID: "user-1", Role: ports.RoleUser}
)

func seedAdminPoll(t *testing.T, uc VoteUseCase, clock *stubClock) entities.AdminPoll {
	t.Helper()
	poll, err := uc.CreateAdminPoll(
		context.Background(),
		admin,
		"Should the market square become pedestrian only?",
		[]string{"Yes", "No", "Weekends only"},
		clock.Now().Add(72*time.Hour),
	)
	if err != nil {
		t.Fatalf("create admin poll failed: %v", err)
	}
	return poll
}

func TestAdminPollVoteIsOneShot(t *testing.T) {
	store := memory.NewStore()
	clock := &stubClock{now: time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)}
	uc := newVoteUseCase(store, clock)
	poll := seedAdminPoll(t, uc, clock)

	first, err := uc.CastAdminPollVote(context.Background(), voter, poll.PollID, poll.Options[0].OptionID)
	if err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if first.TotalVotes != 1 || first.Options[0].VoteCount != 1 {
		t.Fatalf("expected tally (1,1), got total=%d option=%d", first.TotalVotes, first.Options[0].VoteCount)
	}

	// A repeat on any option is rejected, even the one already chosen.
	for _, option := range poll.Options {
		if _, err := uc.CastAdminPollVote(context.Background(), voter, poll.PollID, option.OptionID); !errors.Is(err, domainerrors.ErrAlreadyVoted) {
			t.Fatalf("expected already-voted for option %s, got %v", option.OptionID, err)
		}
	}

	after, err := uc.AdminPolls.GetAdminPoll(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("get poll failed: %v", err)
	}
	if after.TotalVotes != 1 || len(after.VotedUserIDs) != 1 {
		t.Fatalf("rejected repeats must not move the tally: total=%d voters=%d", after.TotalVotes, len(after.VotedUserIDs))
	}
}

func TestAdminPollTotalsMatchDistinctVoters(t *testing.T) {
	store := memory.NewStore()
	clock := &stubClock{now: time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)}
	uc := newVoteUseCase(store, clock)
	poll := seedAdminPoll(t, uc, clock)

	const voters = 12
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := ports.Actor{UserID: fmt.Sprintf("user-%d", i), Role: ports.RoleUser}
			optionID := poll.Options[i%len(poll.Options)].OptionID
			// Each voter fires twice; the duplicate must lose.
			uc.CastAdminPollVote(context.Background(), actor, poll.PollID, optionID)
			uc.CastAdminPollVote(context.Background(), actor, poll.PollID, optionID)
		}(i)
	}
	wg.Wait()

	after, err := uc.AdminPolls.GetAdminPoll(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("get poll failed: %v", err)
	}
	if after.TotalVotes != voters {
		t.Fatalf("expected %d total votes, got %d", voters, after.TotalVotes)
	}
	optionSum := 0
	for _, option := range after.Options {
		optionSum += option.VoteCount
	}
	if optionSum != voters || len(after.VotedUserIDs) != voters {
		t.Fatalf("ledger drifted: option sum=%d voters=%d", optionSum, len(after.VotedUserIDs))
	}
}

func TestAdminPollClosesAtEndDate(t *testing.T) {
	store := memory.NewStore()
	clock := &stubClock{now: time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)}
	uc := newVoteUseCase(store, clock)
	poll := seedAdminPoll(t, uc, clock)

	clock.Advance(73 * time.Hour)
	if _, err := uc.CastAdminPollVote(context.Background(), voter, poll.PollID, poll.Options[0].OptionID); !errors.Is(err, domainerrors.ErrPollClosed) {
		t.Fatalf("expected poll-closed after end date, got %v", err)
	}
}

func TestCloseAdminPollIsIdempotentAndAdminOnly(t *testing.T) {
	store := memory.NewStore()
	clock := &stubClock{now: time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)}
	uc := newVoteUseCase(store, clock)
	poll := seedAdminPoll(t, uc, clock)

	if _, err := uc.CloseAdminPoll(context.Background(), voter, poll.PollID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for non-admin close, got %v", err)
	}

	closed, err := uc.CloseAdminPoll(context.Background(), admin, poll.PollID)
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if closed.IsActive {
		t.Fatal("poll still active after close")
	}

	again, err := uc.CloseAdminPoll(context.Background(), admin, poll.PollID)
	if err != nil {
		t.Fatalf("repeated close must be a no-op: %v", err)
	}
	if again.IsActive {
		t.Fatal("poll reopened by repeated close")
	}

	if _, err := uc.CastAdminPollVote(context.Background(), voter, poll.PollID, poll.Options[0].OptionID); !errors.Is(err, domainerrors.ErrPollClosed) {
		t.Fatalf("expected poll-closed after manual close, got %v", err)
	}
}

func TestPublicPollFlipFlopNetsOneVoter(t *testing.T) {
	store := memory.NewStore()
	clock := &stubClock{now: time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)}
	uc := newVoteUseCase(store, clock)

	poll, err := uc.CreatePublicPoll(context.Background(), voter, "Ayşe", "The new bus line should run on Sundays.")
	if err != nil {
		t.Fatalf("create public poll failed: %v", err)
	}

	sequence := []entities.PublicChoice{
		entities.ChoiceAgree,
		entities.ChoiceDisagree,
		entities.ChoiceAgree,
		entities.ChoiceDisagree,
	}
	var last entities.PublicPoll
	for _, choice := range sequence {
		last, err = uc.VotePublicPoll(context.Background(), voter, poll.PollID, choice)
		if err != nil {
			t.Fatalf("vote %s failed: %v", choice, err)
		}
	}

	if last.AgreeCount+last.DisagreeCount != 1 {
		t.Fatalf("one voter must net one vote, got agree=%d disagree=%d", last.AgreeCount, last.DisagreeCount)
	}
	if last.DisagreeCount != 1 {
		t.Fatalf("last choice was disagree, got agree=%d disagree=%d", last.AgreeCount, last.DisagreeCount)
	}
	if last.VotedUsers[voter.UserID] != entities.ChoiceDisagree {
		t.Fatalf("stored choice is %q, want disagree", last.VotedUsers[voter.UserID])
	}
}

func TestPublicPollSameChoiceIsNoOp(t *testing.T) {
	store := memory.NewStore()
	clock := &stubClock{now: time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)}
	uc := newVoteUseCase(store, clock)

	poll, err := uc.CreatePublicPoll(context.Background(), voter, "Ayşe", "The library should stay open late.")
	if err != nil {
		t.Fatalf("create public poll failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := uc.VotePublicPoll(context.Background(), voter, poll.PollID, entities.ChoiceAgree); err != nil {
			t.Fatalf("vote %d failed: %v", i, err)
		}
	}

	after, err := uc.PublicVotes.GetPublicPoll(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("get poll failed: %v", err)
	}
	if after.AgreeCount != 1 || after.DisagreeCount != 0 {
		t.Fatalf("repeated same choice must not move counters: agree=%d disagree=%d", after.AgreeCount, after.DisagreeCount)
	}
}

func TestEventRSVPScenario(t *testing.T) {
	store := memory.NewStore()
	clock := &stubClock{now: time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)}
	uc := newVoteUseCase(store, clock)

	event, err := uc.CreatePublicEvent(context.Background(), CreateEventCommand{
		Actor:     ports.Actor{UserID: "host-1", Role: ports.RoleUser},
		UserName:  "Mehmet",
		Type:      entities.EventWedding,
		Title:     "Wedding of Mehmet and Elif",
		EventDate: "2026-06-20",
		EventTime: "19:00",
		Location:  "Town hall garden",
	})
	if err != nil {
		t.Fatalf("create event failed: %v", err)
	}

	userA := ports.Actor{UserID: "user-a", Role: ports.RoleUser}
	userB := ports.Actor{UserID: "user-b", Role: ports.RoleUser}

	after, err := uc.RSVPEvent(context.Background(), userA, event.EventID, entities.RSVPAttending)
	if err != nil {
		t.Fatalf("rsvp failed: %v", err)
	}
	if after.AttendingCount != 1 || after.NotAttendingCount != 0 {
		t.Fatalf("after A attends: got (%d,%d), want (1,0)", after.AttendingCount, after.NotAttendingCount)
	}

	after, err = uc.RSVPEvent(context.Background(), userA, event.EventID, entities.RSVPNotAttending)
	if err != nil {
		t.Fatalf("rsvp change failed: %v", err)
	}
	if after.AttendingCount != 0 || after.NotAttendingCount != 1 {
		t.Fatalf("after A flips: got (%d,%d), want (0,1)", after.AttendingCount, after.NotAttendingCount)
	}

	after, err = uc.RSVPEvent(context.Background(), userB, event.EventID, entities.RSVPAttending)
	if err != nil {
		t.Fatalf("rsvp failed: %v", err)
	}
	if after.AttendingCount != 1 || after.NotAttendingCount != 1 {
		t.Fatalf("after B attends: got (%d,%d), want (1,1)", after.AttendingCount, after.NotAttendingCount)
	}
	if len(after.RSVPStatus) != 2 {
		t.Fatalf("expected two rsvp entries, got %d", len(after.RSVPStatus))
	}
}

func TestCreateAdminPollValidation(t *testing.T) {
	store := memory.NewStore()
	clock := &stubClock{now: time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)}
	uc := newVoteUseCase(store, clock)

	if _, err := uc.CreateAdminPoll(context.Background(), voter, "q?", []string{"a", "b"}, clock.Now().Add(time.Hour)); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for non-admin, got %v", err)
	}
	if _, err := uc.CreateAdminPoll(context.Background(), admin, "q?", []string{"only one"}, clock.Now().Add(time.Hour)); !errors.Is(err, domainerrors.ErrInvalidVoteInput) {
		t.Fatalf("expected invalid input for single option, got %v", err)
	}
	if _, err := uc.CreateAdminPoll(context.Background(), admin, "q?", []string{"a", "b"}, clock.Now().Add(-time.Hour)); !errors.Is(err, domainerrors.ErrInvalidVoteInput) {
		t.Fatalf("expected invalid input for past end date, got %v", err)
	}
}
