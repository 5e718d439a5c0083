package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"kasaba/contexts/marketplace-trade/request-desk/domain/entities"
	domainerrors "kasaba/contexts/marketplace-trade/request-desk/domain/errors"

	"github.com/google/uuid"
)

// Store holds both request kinds in memory; reviews are compare-and-set
// under the lock.
type Store struct {
	mu              sync.RWMutex
	listingRequests map[string]entities.ListingRequest
	pollRequests    map[string]entities.PollRequest
}

func NewStore() *Store {
	return &Store{
		listingRequests: map[string]entities.ListingRequest{},
		pollRequests:    map[string]entities.PollRequest{},
	}
}

func (s *Store) CreateListingRequest(_ context.Context, request entities.ListingRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listingRequests[strings.TrimSpace(request.RequestID)] = request
	return nil
}

func (s *Store) ReviewListingRequest(_ context.Context, requestID string, reviewedBy string, reviewedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.listingRequests[strings.TrimSpace(requestID)]
	if !ok {
		return domainerrors.ErrRequestNotFound
	}
	if request.Status != entities.RequestPending {
		return domainerrors.ErrPreconditionFailed
	}
	reviewedAt = reviewedAt.UTC()
	request.Status = entities.RequestReviewed
	request.ReviewedBy = reviewedBy
	request.ReviewedAt = &reviewedAt
	s.listingRequests[request.RequestID] = request
	return nil
}

func (s *Store) ListPendingListingRequests(_ context.Context) ([]entities.ListingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := make([]entities.ListingRequest, 0)
	for _, request := range s.listingRequests {
		if request.Status == entities.RequestPending {
			requests = append(requests, request)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})
	return requests, nil
}

func (s *Store) CreatePollRequest(_ context.Context, request entities.PollRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pollRequests[strings.TrimSpace(request.RequestID)] = request
	return nil
}

func (s *Store) ReviewPollRequest(_ context.Context, requestID string, reviewedBy string, reviewedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.pollRequests[strings.TrimSpace(requestID)]
	if !ok {
		return domainerrors.ErrRequestNotFound
	}
	if request.Status != entities.RequestPending {
		return domainerrors.ErrPreconditionFailed
	}
	reviewedAt = reviewedAt.UTC()
	request.Status = entities.RequestReviewed
	request.ReviewedBy = reviewedBy
	request.ReviewedAt = &reviewedAt
	s.pollRequests[request.RequestID] = request
	return nil
}

func (s *Store) ListPendingPollRequests(_ context.Context) ([]entities.PollRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := make([]entities.PollRequest, 0)
	for _, request := range s.pollRequests {
		if request.Status == entities.RequestPending {
			requests = append(requests, request)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})
	return requests, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
