package commands

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"kasaba/contexts/audience-reach/ad-service/adapters/memory"
	"kasaba/contexts/audience-reach/ad-service/application/queries"
	"kasaba/contexts/audience-reach/ad-service/application/workers"
	"kasaba/contexts/audience-reach/ad-service/domain/entities"
	domainerrors "kasaba/contexts/audience-reach/ad-service/domain/errors"
	"kasaba/contexts/audience-reach/ad-service/ports"
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

var adAdmin = ports.Actor{UserID: "admin-1", Role: ports.RoleAdmin}

func newAdUseCase(store *memory.Store, clock *stubClock) AdUseCase {
	return AdUseCase{
		Ads:   store,
		Clock: clock,
		IDGen: store,
	}
}

func createAd(t *testing.T, uc AdUseCase, clock *stubClock, title string, kind entities.AdType, startOffset, endOffset time.Duration) entities.Ad {
	t.Helper()
	now := clock.Now()
	ad, err := uc.CreateAd(context.Background(), CreateAdCommand{
		Actor:      adAdmin,
		Title:      title,
		Advertiser: "Kasaba Market",
		Type:       kind,
		StartDate:  now.Add(startOffset),
		EndDate:    now.Add(endOffset),
	})
	if err != nil {
		t.Fatalf("create ad %q failed: %v", title, err)
	}
	return ad
}

func TestConcurrentViewsCountExactly(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &stubClock{now: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)}
	uc := newAdUseCase(store, clock)
	ad := createAd(t, uc, clock, "Summer banner", entities.AdBanner, -time.Hour, 24*time.Hour)

	const viewers = 50
	var wg sync.WaitGroup
	for i := 0; i < viewers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := uc.RecordView(context.Background(), ad.AdID); err != nil {
				t.Errorf("record view failed: %v", err)
			}
		}()
	}
	wg.Wait()

	after, err := store.GetAd(context.Background(), ad.AdID)
	if err != nil {
		t.Fatalf("get ad failed: %v", err)
	}
	if after.Views != viewers {
		t.Fatalf("expected %d views, got %d", viewers, after.Views)
	}
}

func TestRecordClickWithoutViewIsCountedNotRejected(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &stubClock{now: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)}
	uc := newAdUseCase(store, clock)
	ad := createAd(t, uc, clock, "Summer banner", entities.AdBanner, -time.Hour, 24*time.Hour)

	if err := uc.RecordClick(context.Background(), ad.AdID); err != nil {
		t.Fatalf("click without view must not fail: %v", err)
	}
	after, err := store.GetAd(context.Background(), ad.AdID)
	if err != nil {
		t.Fatalf("get ad failed: %v", err)
	}
	if after.Clicks != 1 || after.Views != 0 {
		t.Fatalf("expected clicks=1 views=0, got clicks=%d views=%d", after.Clicks, after.Views)
	}
}

func TestSelectActivePopupIsStable(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &stubClock{now: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)}
	uc := newAdUseCase(store, clock)

	createAd(t, uc, clock, "Late popup", entities.AdPopup, -time.Hour, 48*time.Hour)
	early := createAd(t, uc, clock, "Early popup", entities.AdPopup, -2*time.Hour, 48*time.Hour)
	createAd(t, uc, clock, "Banner", entities.AdBanner, -3*time.Hour, 48*time.Hour)

	catalog := queries.AdsUseCase{Ads: store, Clock: clock}
	first, err := catalog.ActivePopup(context.Background())
	if err != nil {
		t.Fatalf("popup selection failed: %v", err)
	}
	if first.AdID != early.AdID {
		t.Fatalf("expected earliest popup %s, got %s", early.AdID, first.AdID)
	}
	for i := 0; i < 5; i++ {
		again, err := catalog.ActivePopup(context.Background())
		if err != nil {
			t.Fatalf("repeat selection failed: %v", err)
		}
		if again.AdID != first.AdID {
			t.Fatalf("selection flickered: %s then %s", first.AdID, again.AdID)
		}
	}
}

func TestNoActivePopup(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &stubClock{now: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)}
	catalog := queries.AdsUseCase{Ads: store, Clock: clock}

	if _, err := catalog.ActivePopup(context.Background()); !errors.Is(err, domainerrors.ErrNoActivePopup) {
		t.Fatalf("expected no-active-popup, got %v", err)
	}
}

func TestWindowSweepBothDirectionsAndIdempotent(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &stubClock{now: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)}
	uc := newAdUseCase(store, clock)

	running := createAd(t, uc, clock, "Running", entities.AdBanner, -time.Hour, 2*time.Hour)
	upcoming := createAd(t, uc, clock, "Upcoming", entities.AdBanner, 3*time.Hour, 48*time.Hour)
	if !running.IsActive || upcoming.IsActive {
		t.Fatalf("creation windows wrong: running=%v upcoming=%v", running.IsActive, upcoming.IsActive)
	}

	sweeper := workers.WindowSweeper{Ads: store, Clock: clock}

	// Four hours later the first campaign has ended and the second began.
	clock.Advance(4 * time.Hour)
	if err := sweeper.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	afterRunning, _ := store.GetAd(context.Background(), running.AdID)
	afterUpcoming, _ := store.GetAd(context.Background(), upcoming.AdID)
	if afterRunning.IsActive {
		t.Fatal("ended campaign still active after sweep")
	}
	if !afterUpcoming.IsActive {
		t.Fatal("started campaign not activated by sweep")
	}

	// A second sweep at the same instant changes nothing.
	activated, deactivated, err := store.SweepWindows(context.Background(), clock.Now())
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if activated != 0 || deactivated != 0 {
		t.Fatalf("second sweep must no-op, got activated=%d deactivated=%d", activated, deactivated)
	}
}

func TestCreateAdValidation(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &stubClock{now: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)}
	uc := newAdUseCase(store, clock)

	user := ports.Actor{UserID: "user-1", Role: ports.RoleUser}
	if _, err := uc.CreateAd(context.Background(), CreateAdCommand{Actor: user, Title: "x", Type: entities.AdBanner, StartDate: clock.Now(), EndDate: clock.Now().Add(time.Hour)}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := uc.CreateAd(context.Background(), CreateAdCommand{Actor: adAdmin, Title: "x", Type: "interstitial", StartDate: clock.Now(), EndDate: clock.Now().Add(time.Hour)}); !errors.Is(err, domainerrors.ErrInvalidAdInput) {
		t.Fatalf("expected invalid input for unknown type, got %v", err)
	}
	if _, err := uc.CreateAd(context.Background(), CreateAdCommand{Actor: adAdmin, Title: "x", Type: entities.AdBanner, StartDate: clock.Now(), EndDate: clock.Now().Add(-time.Hour)}); !errors.Is(err, domainerrors.ErrInvalidAdInput) {
		t.Fatalf("expected invalid input for inverted window, got %v", err)
	}
}
