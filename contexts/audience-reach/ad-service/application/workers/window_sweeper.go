package workers

import (
	"context"
	"log/slog"
	"time"

	application "kasaba/contexts/audience-reach/ad-service/application"
	"kasaba/contexts/audience-reach/ad-service/ports"
)

// WindowSweeper recomputes campaign activity from [start_date, end_date]:
// ads entering their window activate, ads past it deactivate. Both updates
// are guarded, so redundant sweeps no-op.
type WindowSweeper struct {
	Ads    ports.AdRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (w WindowSweeper) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(w.Logger)
	now := time.Now().UTC()
	if w.Clock != nil {
		now = w.Clock.Now().UTC()
	}

	activated, deactivated, err := w.Ads.SweepWindows(ctx, now)
	if err != nil {
		logger.Error("ad window sweep failed",
			"event", "ad_window_sweep_failed",
			"module", "audience-reach/ad-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if activated > 0 || deactivated > 0 {
		logger.Info("ad window sweep completed",
			"event", "ad_window_sweep_completed",
			"module", "audience-reach/ad-service",
			"layer", "worker",
			"activated_count", activated,
			"deactivated_count", deactivated,
		)
	}
	return nil
}
