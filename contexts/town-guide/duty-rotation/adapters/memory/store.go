package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"kasaba/contexts/town-guide/duty-rotation/domain/entities"
	domainerrors "kasaba/contexts/town-guide/duty-rotation/domain/errors"

	"github.com/google/uuid"
)

// Store keeps the pharmacy directory and duty calendar in maps keyed by
// pharmacy id and date.
type Store struct {
	mu         sync.RWMutex
	pharmacies map[string]entities.Pharmacy
	dutyDays   map[string]entities.DutyDay
}

func NewStore(seed []entities.Pharmacy) *Store {
	pharmacies := make(map[string]entities.Pharmacy, len(seed))
	for _, pharmacy := range seed {
		pharmacies[pharmacy.PharmacyID] = pharmacy
	}
	return &Store{
		pharmacies: pharmacies,
		dutyDays:   map[string]entities.DutyDay{},
	}
}

func (s *Store) CreatePharmacy(_ context.Context, pharmacy entities.Pharmacy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pharmacies[strings.TrimSpace(pharmacy.PharmacyID)] = pharmacy
	return nil
}

func (s *Store) GetPharmacy(_ context.Context, pharmacyID string) (entities.Pharmacy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pharmacy, ok := s.pharmacies[strings.TrimSpace(pharmacyID)]
	if !ok {
		return entities.Pharmacy{}, domainerrors.ErrPharmacyNotFound
	}
	return pharmacy, nil
}

func (s *Store) ListPharmacies(_ context.Context) ([]entities.Pharmacy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pharmacies := make([]entities.Pharmacy, 0, len(s.pharmacies))
	for _, pharmacy := range s.pharmacies {
		pharmacies = append(pharmacies, pharmacy)
	}
	sort.Slice(pharmacies, func(i, j int) bool {
		return pharmacies[i].Name < pharmacies[j].Name
	})
	return pharmacies, nil
}

func (s *Store) UpsertDutyDay(_ context.Context, duty entities.DutyDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dutyDays[duty.Date] = duty
	return nil
}

func (s *Store) GetDutyDay(_ context.Context, date string) (entities.DutyDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	duty, ok := s.dutyDays[date]
	if !ok {
		return entities.DutyDay{}, domainerrors.ErrNoDutyAssigned
	}
	return duty, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
