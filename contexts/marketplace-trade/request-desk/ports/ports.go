package ports

import (
	"context"
	"time"

	"kasaba/contexts/marketplace-trade/request-desk/domain/entities"
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

// RequestRepository stores both request kinds. The review methods are
// conditional writes guarded on status = pending; a write that matches no
// row returns ErrRequestNotFound or ErrPreconditionFailed.
type RequestRepository interface {
	CreateListingRequest(ctx context.Context, request entities.ListingRequest) error
	ReviewListingRequest(ctx context.Context, requestID string, reviewedBy string, reviewedAt time.Time) error
	ListPendingListingRequests(ctx context.Context) ([]entities.ListingRequest, error)

	CreatePollRequest(ctx context.Context, request entities.PollRequest) error
	ReviewPollRequest(ctx context.Context, requestID string, reviewedBy string, reviewedAt time.Time) error
	ListPendingPollRequests(ctx context.Context) ([]entities.PollRequest, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
