package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"kasaba/contexts/town-guide/duty-rotation/adapters/memory"
	domainerrors "kasaba/contexts/town-guide/duty-rotation/domain/errors"
	"kasaba/contexts/town-guide/duty-rotation/ports"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newService(store *memory.Store) Service {
	return Service{
		Pharmacies: store,
		Clock:      fixedClock{now: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)},
		IDGen:      store,
	}
}

var dutyAdmin = ports.Actor{UserID: "admin-1", Role: ports.RoleAdmin}

func TestAssignDutyUpsertsByDate(t *testing.T) {
	store := memory.NewStore(nil)
	service := newService(store)

	first, err := service.RegisterPharmacy(context.Background(), dutyAdmin, "Merkez Eczanesi", "0312 111 11 11", "Main square 4")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	second, err := service.RegisterPharmacy(context.Background(), dutyAdmin, "Çarşı Eczanesi", "0312 222 22 22", "Bazaar street 12")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := service.AssignDuty(context.Background(), dutyAdmin, "2026-05-02", first.PharmacyID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	pharmacy, _, err := service.DutyPharmacy(context.Background(), "2026-05-02")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if pharmacy.PharmacyID != first.PharmacyID {
		t.Fatalf("duty pharmacy is %s, want %s", pharmacy.PharmacyID, first.PharmacyID)
	}

	// Re-assigning the same date replaces the pharmacy, never duplicates.
	if _, err := service.AssignDuty(context.Background(), dutyAdmin, "2026-05-02", second.PharmacyID); err != nil {
		t.Fatalf("re-assign failed: %v", err)
	}
	pharmacy, _, err = service.DutyPharmacy(context.Background(), "2026-05-02")
	if err != nil {
		t.Fatalf("lookup after re-assign failed: %v", err)
	}
	if pharmacy.PharmacyID != second.PharmacyID {
		t.Fatalf("duty pharmacy is %s, want %s", pharmacy.PharmacyID, second.PharmacyID)
	}
}

func TestAssignDutyValidation(t *testing.T) {
	store := memory.NewStore(nil)
	service := newService(store)

	pharmacy, err := service.RegisterPharmacy(context.Background(), dutyAdmin, "Merkez Eczanesi", "", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user := ports.Actor{UserID: "user-1", Role: ports.RoleUser}
	if _, err := service.AssignDuty(context.Background(), user, "2026-05-02", pharmacy.PharmacyID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for non-admin, got %v", err)
	}
	if _, err := service.AssignDuty(context.Background(), dutyAdmin, "02.05.2026", pharmacy.PharmacyID); !errors.Is(err, domainerrors.ErrInvalidDutyInput) {
		t.Fatalf("expected invalid input for bad date, got %v", err)
	}
	if _, err := service.AssignDuty(context.Background(), dutyAdmin, "2026-05-02", "missing"); !errors.Is(err, domainerrors.ErrPharmacyNotFound) {
		t.Fatalf("expected pharmacy-not-found, got %v", err)
	}
}

func TestDutyPharmacyAbsentDate(t *testing.T) {
	store := memory.NewStore(nil)
	service := newService(store)

	if _, _, err := service.DutyPharmacy(context.Background(), "2026-05-03"); !errors.Is(err, domainerrors.ErrNoDutyAssigned) {
		t.Fatalf("expected no-duty-assigned, got %v", err)
	}
}
