package ports

import (
	"context"
	"time"

	"kasaba/contexts/marketplace-trade/classified-service/domain/entities"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Actor is the caller identity the presentation shell resolved for us.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsModerator() bool {
	return a.Role == RoleAdmin
}

// ClassifiedRepository is the ledger contract for listings. Every mutating
// method is a single conditional write: the from-state is the precondition
// and ErrPreconditionFailed signals the record no longer matched it.
type ClassifiedRepository interface {
	CreateClassified(ctx context.Context, classified entities.Classified) error
	GetClassified(ctx context.Context, classifiedID string) (entities.Classified, error)

	// TransitionStatus moves status from->to iff the current status is from.
	TransitionStatus(ctx context.Context, classifiedID string, from, to entities.Status, updatedAt time.Time) error

	// MarkFeaturedRequested moves featured state to pending iff status is
	// approved and the featured state currently allows a new request.
	MarkFeaturedRequested(ctx context.Context, classifiedID string, durationDays int, updatedAt time.Time) error

	// ActivateFeatured moves featured state pending->active and stamps the
	// expiry deadline in the same conditional write.
	ActivateFeatured(ctx context.Context, classifiedID string, until time.Time, updatedAt time.Time) error

	// ExpireActiveFeatured sweeps every record with featured state active and
	// a deadline at or before now. Safe to run redundantly.
	ExpireActiveFeatured(ctx context.Context, now time.Time) (int, error)

	ListByStatus(ctx context.Context, status entities.Status, limit int, offset int) ([]entities.Classified, error)
	ListApproved(ctx context.Context, now time.Time, limit int, offset int) ([]entities.Classified, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
