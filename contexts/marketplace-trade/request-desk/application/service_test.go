package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"kasaba/contexts/marketplace-trade/request-desk/adapters/memory"
	domainerrors "kasaba/contexts/marketplace-trade/request-desk/domain/errors"
	"kasaba/contexts/marketplace-trade/request-desk/ports"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newService(store *memory.Store) Service {
	return Service{
		Requests: store,
		Clock:    fixedClock{now: time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)},
		IDGen:    store,
	}
}

var deskAdmin = ports.Actor{UserID: "admin-1", Role: ports.RoleAdmin}

func TestListingRequestReviewedExactlyOnce(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	request, err := service.SubmitListingRequest(context.Background(), SubmitListingRequestCommand{
		BusinessName: "Köşe Bakkalı",
		Category:     "grocery",
		Phone:        "0312 333 33 33",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	pending, err := service.PendingListingRequests(context.Background(), deskAdmin)
	if err != nil {
		t.Fatalf("pending list failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one pending request, got %d", len(pending))
	}

	if err := service.ReviewListingRequest(context.Background(), deskAdmin, request.RequestID); err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if err := service.ReviewListingRequest(context.Background(), deskAdmin, request.RequestID); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("repeat review must be invalid transition, got %v", err)
	}

	pending, err = service.PendingListingRequests(context.Background(), deskAdmin)
	if err != nil {
		t.Fatalf("pending list failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("reviewed request still pending: %d items", len(pending))
	}
}

func TestConcurrentPollRequestReviewsProduceOneWinner(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	submitter := ports.Actor{UserID: "user-1", Role: ports.RoleUser}
	request, err := service.SubmitPollRequest(context.Background(), submitter, "Ayşe", "Ask about the new bus schedule")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- service.ReviewPollRequest(context.Background(), deskAdmin, request.RequestID)
		}()
	}
	wg.Wait()
	close(results)

	winners, losers := 0, 0
	for err := range results {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, domainerrors.ErrInvalidTransition):
			losers++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if winners != 1 || losers != attempts-1 {
		t.Fatalf("expected 1 winner and %d losers, got %d/%d", attempts-1, winners, losers)
	}
}

func TestReviewRequiresAdmin(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	request, err := service.SubmitListingRequest(context.Background(), SubmitListingRequestCommand{BusinessName: "Çay Ocağı"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	user := ports.Actor{UserID: "user-1", Role: ports.RoleUser}
	if err := service.ReviewListingRequest(context.Background(), user, request.RequestID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := service.PendingListingRequests(context.Background(), user); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for pending list, got %v", err)
	}
}

func TestReviewUnknownRequest(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	if err := service.ReviewListingRequest(context.Background(), deskAdmin, "missing"); !errors.Is(err, domainerrors.ErrRequestNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
