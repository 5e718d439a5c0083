package ports

import (
	"context"
	"time"

	"kasaba/contexts/town-guide/duty-rotation/domain/entities"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// PharmacyRepository stores the pharmacy directory and the duty calendar.
// UpsertDutyDay replaces any existing assignment for the same date.
type PharmacyRepository interface {
	CreatePharmacy(ctx context.Context, pharmacy entities.Pharmacy) error
	GetPharmacy(ctx context.Context, pharmacyID string) (entities.Pharmacy, error)
	ListPharmacies(ctx context.Context) ([]entities.Pharmacy, error)

	UpsertDutyDay(ctx context.Context, duty entities.DutyDay) error
	GetDutyDay(ctx context.Context, date string) (entities.DutyDay, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
