package workers

import (
	"context"
	"log/slog"

	application "kasaba/contexts/audience-reach/notification-service/application"
	"kasaba/contexts/audience-reach/notification-service/ports"
	"kasaba/internal/shared/events"
)

// Fanout consumes notification.created events and dispatches per-recipient
// deliveries. Receipts are already durable when the event arrives, so a
// dropped event only delays delivery, it never loses the notification.
type Fanout struct {
	Subscriber    ports.EventSubscriber
	Notifications ports.NotificationRepository
	Logger        *slog.Logger
}

func (f Fanout) Run(ctx context.Context) error {
	return f.Subscriber.Subscribe(ctx, "notification.created", "notification-fanout", f.handle)
}

func (f Fanout) handle(ctx context.Context, event events.Envelope) error {
	logger := application.ResolveLogger(f.Logger)

	notification, err := f.Notifications.GetNotification(ctx, event.EntityID)
	if err != nil {
		logger.Error("fanout lookup failed",
			"event", "notification_fanout_failed",
			"module", "audience-reach/notification-service",
			"layer", "worker",
			"notification_id", event.EntityID,
			"error", err.Error(),
		)
		return err
	}

	// Push transport is out of scope; dispatch is recorded for the delivery
	// gateway to pick up.
	logger.Info("notification dispatched",
		"event", "notification_dispatched",
		"module", "audience-reach/notification-service",
		"layer", "worker",
		"notification_id", notification.NotificationID,
		"target", notification.Target.String(),
		"recipient_count", notification.RecipientCount,
	)
	return nil
}
