package commands

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	application "kasaba/contexts/audience-reach/notification-service/application"
	"kasaba/contexts/audience-reach/notification-service/domain/entities"
	domainerrors "kasaba/contexts/audience-reach/notification-service/domain/errors"
	"kasaba/contexts/audience-reach/notification-service/ports"
	"kasaba/internal/shared/events"
)

// NotificationCreatedTopic carries one event per created notification; the
// fan-out worker consumes it to dispatch deliveries.
const NotificationCreatedTopic = "notification.created"

type notificationCreatedPayload struct {
	NotificationID string   `json:"notification_id"`
	Target         string   `json:"target"`
	RecipientIDs   []string `json:"recipient_ids"`
	Type           string   `json:"type"`
}

type NotificationUseCase struct {
	Notifications ports.NotificationRepository
	Directory     ports.Directory
	Publisher     ports.EventPublisher
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	Logger        *slog.Logger
}

// CreateNotification resolves the audience up front and persists one
// receipt per recipient in the same write as the notification itself.
func (uc NotificationUseCase) CreateNotification(
	ctx context.Context,
	actor ports.Actor,
	target entities.Target,
	title string,
	message string,
	kind entities.NotificationType,
) (entities.Notification, error) {
	if !actor.IsAdmin() {
		return entities.Notification{}, domainerrors.ErrForbidden
	}
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" || message == "" || !entities.ValidNotificationType(kind) {
		return entities.Notification{}, domainerrors.ErrInvalidNotificationInput
	}

	recipients, err := uc.ResolveRecipients(ctx, target)
	if err != nil {
		return entities.Notification{}, err
	}

	notificationID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Notification{}, err
	}
	now := uc.Clock.Now().UTC()
	notification := entities.Notification{
		NotificationID: notificationID,
		Title:          title,
		Message:        message,
		Type:           kind,
		Target:         target,
		CreatedBy:      strings.TrimSpace(actor.UserID),
		RecipientCount: len(recipients),
		CreatedAt:      now,
	}
	receipts := make([]entities.Receipt, 0, len(recipients))
	for _, userID := range recipients {
		receipts = append(receipts, entities.Receipt{
			NotificationID: notificationID,
			UserID:         userID,
			CreatedAt:      now,
		})
	}
	if err := uc.Notifications.CreateNotification(ctx, notification, receipts); err != nil {
		return entities.Notification{}, err
	}

	logger := application.ResolveLogger(uc.Logger)
	logger.Info("notification created",
		"event", "notification_created",
		"module", "audience-reach/notification-service",
		"layer", "application",
		"notification_id", notificationID,
		"target", target.String(),
		"recipient_count", len(recipients),
	)

	if uc.Publisher != nil {
		eventID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.Notification{}, err
		}
		err = uc.Publisher.Publish(ctx, NotificationCreatedTopic, events.Envelope{
			EventID:        eventID,
			EventType:      NotificationCreatedTopic,
			SourceService:  "notification-service",
			OccurredAtUTC:  now,
			EntityType:     "notification",
			EntityID:       notificationID,
			PayloadVersion: 1,
			Payload: notificationCreatedPayload{
				NotificationID: notificationID,
				Target:         target.String(),
				RecipientIDs:   recipients,
				Type:           string(kind),
			},
		})
		if err != nil {
			// The notification is already durable; delivery catches up on
			// the next worker pass.
			logger.Error("notification event publish failed",
				"event", "notification_publish_failed",
				"module", "audience-reach/notification-service",
				"layer", "application",
				"notification_id", notificationID,
				"error", err.Error(),
			)
		}
	}
	return notification, nil
}

// ResolveRecipients expands a target into a sorted list of user ids. The
// result is deterministic for a fixed directory snapshot. A literal user id
// that is absent from the directory fails rather than silently dropping.
func (uc NotificationUseCase) ResolveRecipients(ctx context.Context, target entities.Target) ([]string, error) {
	switch target.Kind {
	case entities.TargetUser:
		user, err := uc.Directory.GetUser(ctx, strings.TrimSpace(target.UserID))
		if err != nil {
			return nil, err
		}
		return []string{user.UserID}, nil
	case entities.TargetAll:
		users, err := uc.Directory.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(users))
		for _, user := range users {
			ids = append(ids, user.UserID)
		}
		sort.Strings(ids)
		return ids, nil
	case entities.TargetGroup:
		if !entities.ValidLocationType(target.Group) {
			return nil, domainerrors.ErrInvalidTarget
		}
		users, err := uc.Directory.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(users))
		for _, user := range users {
			if user.LocationType == target.Group {
				ids = append(ids, user.UserID)
			}
		}
		sort.Strings(ids)
		return ids, nil
	default:
		return nil, domainerrors.ErrInvalidTarget
	}
}

// MarkRead flips the caller's receipt. Repeats are no-ops.
func (uc NotificationUseCase) MarkRead(ctx context.Context, actor ports.Actor, notificationID string) error {
	notificationID = strings.TrimSpace(notificationID)
	userID := strings.TrimSpace(actor.UserID)
	if notificationID == "" || userID == "" {
		return domainerrors.ErrInvalidNotificationInput
	}

	changed, err := uc.Notifications.MarkRead(ctx, notificationID, userID, uc.Clock.Now().UTC())
	if err != nil {
		return err
	}
	if changed {
		application.ResolveLogger(uc.Logger).Info("notification marked read",
			"event", "notification_marked_read",
			"module", "audience-reach/notification-service",
			"layer", "application",
			"notification_id", notificationID,
			"user_id", userID,
		)
	}
	return nil
}
