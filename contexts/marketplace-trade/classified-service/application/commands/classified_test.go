package commands

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"kasaba/contexts/marketplace-trade/classified-service/adapters/memory"
	"kasaba/contexts/marketplace-trade/classified-service/application/workers"
	"kasaba/contexts/marketplace-trade/classified-service/domain/entities"
	domainerrors "kasaba/contexts/marketplace-trade/classified-service/domain/errors"
	"kasaba/contexts/marketplace-trade/classified-service/ports"
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

func newUseCase(store *memory.Store, clock *stubClock) ClassifiedUseCase {
	return ClassifiedUseCase{
		Listings: store,
		Clock:    clock,
		IDGen:    store,
	}
}

func TestDecideRequiresModerator(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &stubClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	uc := newUseCase(store, clock)

	classified, err := uc.Submit(context.Background(), SubmitClassifiedCommand{
		Actor:    ports.Actor{UserID: "user-1", Role: ports.RoleUser},
		Title:    "3+1 apartment in the center",
		Category: entities.CategoryRealEstate,
		Price:    950000,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, err = uc.Decide(context.Background(), ports.Actor{UserID: "user-2", Role: ports.RoleUser}, classified.ClassifiedID, "approve")
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for non-moderator, got %v", err)
	}
}

func TestConcurrentDecidesProduceOneWinner(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &stubClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	uc := newUseCase(store, clock)

	classified, err := uc.Submit(context.Background(), SubmitClassifiedCommand{
		Actor:    ports.Actor{UserID: "user-1", Role: ports.RoleUser},
		Title:    "2015 pickup, low mileage",
		Category: entities.CategoryVehicle,
		Price:    420000,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	moderator := ports.Actor{UserID: "mod-1", Role: ports.RoleAdmin}
	const attempts = 16
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		outcome := "approve"
		if i%2 == 1 {
			outcome = "reject"
		}
		wg.Add(1)
		go func(outcome string) {
			defer wg.Done()
			_, err := uc.Decide(context.Background(), moderator, classified.ClassifiedID, outcome)
			results <- err
		}(outcome)
	}
	wg.Wait()
	close(results)

	winners := 0
	for err := range results {
		if err == nil {
			winners++
			continue
		}
		if !errors.Is(err, domainerrors.ErrInvalidTransition) {
			t.Fatalf("loser got unexpected error: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winning decision, got %d", winners)
	}

	final, err := store.GetClassified(context.Background(), classified.ClassifiedID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if final.Status == entities.StatusPending {
		t.Fatalf("record still pending after a winning decision")
	}
}

func TestFeaturedLifecycle(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &stubClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	uc := newUseCase(store, clock)
	owner := ports.Actor{UserID: "user-1", Role: ports.RoleUser}
	moderator := ports.Actor{UserID: "mod-1", Role: ports.RoleAdmin}

	classified, err := uc.Submit(context.Background(), SubmitClassifiedCommand{
		Actor:    owner,
		Title:    "Dairy cows for sale",
		Category: entities.CategoryLivestock,
		Price:    30000,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if classified.Status != entities.StatusPending || classified.FeaturedStatus != entities.FeaturedNone {
		t.Fatalf("unexpected initial state: %s/%s", classified.Status, classified.FeaturedStatus)
	}

	// Promotion before approval must be refused.
	if _, err := uc.RequestFeatured(context.Background(), owner, classified.ClassifiedID, 7); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition before approval, got %v", err)
	}

	if _, err := uc.Decide(context.Background(), moderator, classified.ClassifiedID, "approve"); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	requested, err := uc.RequestFeatured(context.Background(), owner, classified.ClassifiedID, 7)
	if err != nil {
		t.Fatalf("request featured failed: %v", err)
	}
	if requested.FeaturedStatus != entities.FeaturedPending || requested.FeaturedDurationDays != 7 {
		t.Fatalf("unexpected featured request state: %+v", requested)
	}

	// A second request while one is pending must be refused.
	if _, err := uc.RequestFeatured(context.Background(), owner, classified.ClassifiedID, 14); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition on duplicate request, got %v", err)
	}

	activated, err := uc.ActivateFeatured(context.Background(), moderator, classified.ClassifiedID)
	if err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if activated.FeaturedStatus != entities.FeaturedActive {
		t.Fatalf("expected active featured state, got %s", activated.FeaturedStatus)
	}
	wantUntil := clock.Now().Add(7 * 24 * time.Hour)
	if activated.FeaturedUntil == nil || !activated.FeaturedUntil.Equal(wantUntil) {
		t.Fatalf("expected featured_until %v, got %v", wantUntil, activated.FeaturedUntil)
	}

	expirer := workers.FeaturedExpirer{Listings: store, Clock: clock}

	// Deadline not reached: the sweep must leave the record alone.
	clock.Advance(6 * 24 * time.Hour)
	if err := expirer.RunOnce(context.Background()); err != nil {
		t.Fatalf("early sweep failed: %v", err)
	}
	mid, _ := store.GetClassified(context.Background(), classified.ClassifiedID)
	if mid.FeaturedStatus != entities.FeaturedActive {
		t.Fatalf("sweep expired a record before its deadline")
	}

	clock.Advance(2 * 24 * time.Hour)
	if err := expirer.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	expired, _ := store.GetClassified(context.Background(), classified.ClassifiedID)
	if expired.FeaturedStatus != entities.FeaturedExpired {
		t.Fatalf("expected expired featured state, got %s", expired.FeaturedStatus)
	}

	// Running the sweep again must be a silent no-op.
	if err := expirer.RunOnce(context.Background()); err != nil {
		t.Fatalf("second sweep errored: %v", err)
	}

	// An expired listing may be promoted again.
	if _, err := uc.RequestFeatured(context.Background(), owner, classified.ClassifiedID, 3); err != nil {
		t.Fatalf("re-request after expiry failed: %v", err)
	}
}

func TestActivateFeaturedRequiresPendingRequest(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &stubClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	uc := newUseCase(store, clock)
	moderator := ports.Actor{UserID: "mod-1", Role: ports.RoleAdmin}

	classified, err := uc.Submit(context.Background(), SubmitClassifiedCommand{
		Actor:    ports.Actor{UserID: "user-1", Role: ports.RoleUser},
		Title:    "Used phone",
		Category: entities.CategorySpot,
		Price:    4000,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := uc.Decide(context.Background(), moderator, classified.ClassifiedID, "approve"); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	_, err = uc.ActivateFeatured(context.Background(), moderator, classified.ClassifiedID)
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition without a pending request, got %v", err)
	}
}
