package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"kasaba/contexts/audience-reach/ad-service/domain/entities"
	domainerrors "kasaba/contexts/audience-reach/ad-service/domain/errors"

	"github.com/google/uuid"
)

// Store is the in-memory campaign ledger. Counter bumps and window sweeps
// run under one lock, matching the atomic contract of the postgres adapter.
type Store struct {
	mu  sync.RWMutex
	ads map[string]entities.Ad
}

func NewStore(seed []entities.Ad) *Store {
	ads := make(map[string]entities.Ad, len(seed))
	for _, ad := range seed {
		ads[ad.AdID] = ad
	}
	return &Store{ads: ads}
}

func (s *Store) CreateAd(_ context.Context, ad entities.Ad) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ads[strings.TrimSpace(ad.AdID)] = ad
	return nil
}

func (s *Store) GetAd(_ context.Context, adID string) (entities.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ad, ok := s.ads[strings.TrimSpace(adID)]
	if !ok {
		return entities.Ad{}, domainerrors.ErrAdNotFound
	}
	return ad, nil
}

func (s *Store) IncrementViews(_ context.Context, adID string) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ad, ok := s.ads[strings.TrimSpace(adID)]
	if !ok {
		return 0, 0, domainerrors.ErrAdNotFound
	}
	ad.Views++
	s.ads[ad.AdID] = ad
	return ad.Views, ad.Clicks, nil
}

func (s *Store) IncrementClicks(_ context.Context, adID string) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ad, ok := s.ads[strings.TrimSpace(adID)]
	if !ok {
		return 0, 0, domainerrors.ErrAdNotFound
	}
	ad.Clicks++
	s.ads[ad.AdID] = ad
	return ad.Views, ad.Clicks, nil
}

func (s *Store) ListActive(_ context.Context, now time.Time) ([]entities.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ads := make([]entities.Ad, 0)
	for _, ad := range s.ads {
		if ad.Eligible(now) {
			ads = append(ads, ad)
		}
	}
	sortStable(ads)
	return ads, nil
}

func (s *Store) SelectActivePopup(_ context.Context, now time.Time) (entities.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	popups := make([]entities.Ad, 0)
	for _, ad := range s.ads {
		if ad.Type == entities.AdPopup && ad.Eligible(now) {
			popups = append(popups, ad)
		}
	}
	if len(popups) == 0 {
		return entities.Ad{}, domainerrors.ErrNoActivePopup
	}
	sortStable(popups)
	return popups[0], nil
}

func (s *Store) SweepWindows(_ context.Context, now time.Time) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activated, deactivated := 0, 0
	for id, ad := range s.ads {
		inWindow := ad.InWindow(now)
		switch {
		case inWindow && !ad.IsActive:
			ad.IsActive = true
			ad.UpdatedAt = now
			s.ads[id] = ad
			activated++
		case !inWindow && ad.IsActive:
			ad.IsActive = false
			ad.UpdatedAt = now
			s.ads[id] = ad
			deactivated++
		}
	}
	return activated, deactivated, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// sortStable orders by start_date then id, the display tie-break.
func sortStable(ads []entities.Ad) {
	sort.Slice(ads, func(i, j int) bool {
		if !ads[i].StartDate.Equal(ads[j].StartDate) {
			return ads[i].StartDate.Before(ads[j].StartDate)
		}
		return ads[i].AdID < ads[j].AdID
	})
}
