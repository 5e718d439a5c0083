package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"kasaba/contexts/town-guide/duty-rotation/domain/entities"
	domainerrors "kasaba/contexts/town-guide/duty-rotation/domain/errors"
	"kasaba/contexts/town-guide/duty-rotation/ports"
)

// Service is the whole duty-rotation application layer. The module is small
// enough that commands and queries live on one type.
type Service struct {
	Pharmacies ports.PharmacyRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (s Service) RegisterPharmacy(
	ctx context.Context,
	actor ports.Actor,
	name string,
	phone string,
	address string,
) (entities.Pharmacy, error) {
	if !actor.IsAdmin() {
		return entities.Pharmacy{}, domainerrors.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Pharmacy{}, domainerrors.ErrInvalidDutyInput
	}

	pharmacyID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Pharmacy{}, err
	}
	pharmacy := entities.Pharmacy{
		PharmacyID: pharmacyID,
		Name:       name,
		Phone:      strings.TrimSpace(phone),
		Address:    strings.TrimSpace(address),
		CreatedAt:  s.now(),
	}
	if err := s.Pharmacies.CreatePharmacy(ctx, pharmacy); err != nil {
		return entities.Pharmacy{}, err
	}

	s.logger().Info("pharmacy registered",
		"event", "duty_pharmacy_registered",
		"module", "town-guide/duty-rotation",
		"layer", "application",
		"pharmacy_id", pharmacy.PharmacyID,
		"admin_id", strings.TrimSpace(actor.UserID),
	)
	return pharmacy, nil
}

func (s Service) ListPharmacies(ctx context.Context) ([]entities.Pharmacy, error) {
	return s.Pharmacies.ListPharmacies(ctx)
}

// AssignDuty upserts the duty pharmacy for a date. Assigning a date that
// already has a pharmacy replaces the previous assignment.
func (s Service) AssignDuty(
	ctx context.Context,
	actor ports.Actor,
	date string,
	pharmacyID string,
) (entities.DutyDay, error) {
	if !actor.IsAdmin() {
		return entities.DutyDay{}, domainerrors.ErrForbidden
	}
	date = strings.TrimSpace(date)
	pharmacyID = strings.TrimSpace(pharmacyID)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return entities.DutyDay{}, domainerrors.ErrInvalidDutyInput
	}
	if _, err := s.Pharmacies.GetPharmacy(ctx, pharmacyID); err != nil {
		return entities.DutyDay{}, err
	}

	duty := entities.DutyDay{
		Date:       date,
		PharmacyID: pharmacyID,
		AssignedBy: strings.TrimSpace(actor.UserID),
		UpdatedAt:  s.now(),
	}
	if err := s.Pharmacies.UpsertDutyDay(ctx, duty); err != nil {
		return entities.DutyDay{}, err
	}

	s.logger().Info("duty assigned",
		"event", "duty_assigned",
		"module", "town-guide/duty-rotation",
		"layer", "application",
		"date", date,
		"pharmacy_id", pharmacyID,
		"admin_id", duty.AssignedBy,
	)
	return duty, nil
}

// DutyPharmacy resolves the pharmacy on duty for a date with a single
// keyed lookup.
func (s Service) DutyPharmacy(ctx context.Context, date string) (entities.Pharmacy, entities.DutyDay, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return entities.Pharmacy{}, entities.DutyDay{}, domainerrors.ErrInvalidDutyInput
	}

	duty, err := s.Pharmacies.GetDutyDay(ctx, date)
	if err != nil {
		return entities.Pharmacy{}, entities.DutyDay{}, err
	}
	pharmacy, err := s.Pharmacies.GetPharmacy(ctx, duty.PharmacyID)
	if err != nil {
		return entities.Pharmacy{}, entities.DutyDay{}, err
	}
	return pharmacy, duty, nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
