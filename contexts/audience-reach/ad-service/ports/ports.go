package ports

import (
	"context"
	"time"

	"kasaba/contexts/audience-reach/ad-service/domain/entities"
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

// AdRepository is the campaign ledger. The two increment methods are atomic
// counter bumps; both return the post-increment counters so callers can
// inspect them without a second read.
type AdRepository interface {
	CreateAd(ctx context.Context, ad entities.Ad) error
	GetAd(ctx context.Context, adID string) (entities.Ad, error)

	IncrementViews(ctx context.Context, adID string) (views int64, clicks int64, err error)
	IncrementClicks(ctx context.Context, adID string) (views int64, clicks int64, err error)

	ListActive(ctx context.Context, now time.Time) ([]entities.Ad, error)

	// SelectActivePopup returns the eligible popup with the earliest
	// start_date, ties broken by id, or ErrNoActivePopup.
	SelectActivePopup(ctx context.Context, now time.Time) (entities.Ad, error)

	// SweepWindows recomputes is_active from the campaign window in both
	// directions and reports how many ads changed either way.
	SweepWindows(ctx context.Context, now time.Time) (activated int, deactivated int, err error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
