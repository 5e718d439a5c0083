package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"kasaba/contexts/marketplace-trade/classified-service/domain/entities"
	domainerrors "kasaba/contexts/marketplace-trade/classified-service/domain/errors"

	"github.com/google/uuid"
)

// Store is the in-memory ledger used by tests and in-memory wiring. Every
// mutating method holds the lock for the whole compare-and-set, which gives
// it the same conditional-write contract as the postgres adapter.
type Store struct {
	mu          sync.RWMutex
	classifieds map[string]entities.Classified
}

func NewStore(seed []entities.Classified) *Store {
	classifieds := make(map[string]entities.Classified, len(seed))
	for _, classified := range seed {
		classifieds[classified.ClassifiedID] = classified
	}
	return &Store{classifieds: classifieds}
}

func (s *Store) CreateClassified(_ context.Context, classified entities.Classified) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classifieds[strings.TrimSpace(classified.ClassifiedID)] = classified
	return nil
}

func (s *Store) GetClassified(_ context.Context, classifiedID string) (entities.Classified, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	classified, ok := s.classifieds[strings.TrimSpace(classifiedID)]
	if !ok {
		return entities.Classified{}, domainerrors.ErrClassifiedNotFound
	}
	return classified, nil
}

func (s *Store) TransitionStatus(
	_ context.Context,
	classifiedID string,
	from entities.Status,
	to entities.Status,
	updatedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	classified, ok := s.classifieds[strings.TrimSpace(classifiedID)]
	if !ok {
		return domainerrors.ErrClassifiedNotFound
	}
	if classified.Status != from {
		return domainerrors.ErrPreconditionFailed
	}
	classified.Status = to
	classified.UpdatedAt = updatedAt.UTC()
	s.classifieds[strings.TrimSpace(classifiedID)] = classified
	return nil
}

func (s *Store) MarkFeaturedRequested(
	_ context.Context,
	classifiedID string,
	durationDays int,
	updatedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	classified, ok := s.classifieds[strings.TrimSpace(classifiedID)]
	if !ok {
		return domainerrors.ErrClassifiedNotFound
	}
	if classified.Status != entities.StatusApproved || !classified.FeaturedRequestable() {
		return domainerrors.ErrPreconditionFailed
	}
	classified.FeaturedRequested = true
	classified.FeaturedStatus = entities.FeaturedPending
	classified.FeaturedDurationDays = durationDays
	classified.FeaturedUntil = nil
	classified.UpdatedAt = updatedAt.UTC()
	s.classifieds[strings.TrimSpace(classifiedID)] = classified
	return nil
}

func (s *Store) ActivateFeatured(
	_ context.Context,
	classifiedID string,
	until time.Time,
	updatedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	classified, ok := s.classifieds[strings.TrimSpace(classifiedID)]
	if !ok {
		return domainerrors.ErrClassifiedNotFound
	}
	if classified.FeaturedStatus != entities.FeaturedPending {
		return domainerrors.ErrPreconditionFailed
	}
	deadline := until.UTC()
	classified.FeaturedStatus = entities.FeaturedActive
	classified.FeaturedUntil = &deadline
	classified.UpdatedAt = updatedAt.UTC()
	s.classifieds[strings.TrimSpace(classifiedID)] = classified
	return nil
}

func (s *Store) ExpireActiveFeatured(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for key, classified := range s.classifieds {
		if classified.FeaturedStatus != entities.FeaturedActive {
			continue
		}
		if classified.FeaturedUntil == nil || classified.FeaturedUntil.After(now.UTC()) {
			continue
		}
		classified.FeaturedStatus = entities.FeaturedExpired
		classified.UpdatedAt = now.UTC()
		s.classifieds[key] = classified
		expired++
	}
	return expired, nil
}

func (s *Store) ListByStatus(_ context.Context, status entities.Status, limit int, offset int) ([]entities.Classified, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Classified, 0)
	for _, classified := range s.classifieds {
		if classified.Status == status {
			items = append(items, classified)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return page(items, limit, offset), nil
}

func (s *Store) ListApproved(_ context.Context, now time.Time, limit int, offset int) ([]entities.Classified, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Classified, 0)
	for _, classified := range s.classifieds {
		if classified.Status == entities.StatusApproved {
			items = append(items, classified)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		left := featuredLive(items[i], now)
		right := featuredLive(items[j], now)
		if left != right {
			return left
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return page(items, limit, offset), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func featuredLive(classified entities.Classified, now time.Time) bool {
	return classified.FeaturedStatus == entities.FeaturedActive &&
		classified.FeaturedUntil != nil &&
		classified.FeaturedUntil.After(now.UTC())
}

func page(items []entities.Classified, limit int, offset int) []entities.Classified {
	if offset >= len(items) {
		return []entities.Classified{}
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
