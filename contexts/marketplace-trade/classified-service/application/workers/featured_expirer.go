package workers

import (
	"context"
	"log/slog"
	"time"

	application "kasaba/contexts/marketplace-trade/classified-service/application"
	"kasaba/contexts/marketplace-trade/classified-service/ports"
)

// FeaturedExpirer sweeps active featured listings that crossed featured_until.
// The sweep is one guarded write, so concurrent runs are harmless: the
// second evaluator finds the precondition already false and no-ops.
type FeaturedExpirer struct {
	Listings ports.ClassifiedRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

func (e FeaturedExpirer) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(e.Logger)
	now := time.Now().UTC()
	if e.Clock != nil {
		now = e.Clock.Now().UTC()
	}

	expired, err := e.Listings.ExpireActiveFeatured(ctx, now)
	if err != nil {
		logger.Error("featured expiry sweep failed",
			"event", "classified_featured_expiry_failed",
			"module", "marketplace-trade/classified-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if expired > 0 {
		logger.Info("featured expiry sweep completed",
			"event", "classified_featured_expiry_completed",
			"module", "marketplace-trade/classified-service",
			"layer", "worker",
			"expired_count", expired,
		)
	}
	return nil
}
