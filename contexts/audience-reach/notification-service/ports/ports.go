package ports

import (
	"context"
	"time"

	"kasaba/contexts/audience-reach/notification-service/domain/entities"
	"kasaba/internal/shared/events"
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

// NotificationRepository persists notifications together with their
// per-recipient receipts. CreateNotification writes the record and every
// receipt atomically.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification entities.Notification, receipts []entities.Receipt) error
	GetNotification(ctx context.Context, notificationID string) (entities.Notification, error)
	ListNotifications(ctx context.Context, limit int, offset int) ([]entities.Notification, error)

	Inbox(ctx context.Context, userID string) ([]entities.InboxItem, error)

	// MarkRead flips a recipient's receipt to read. The false return means
	// the receipt was already read; a missing receipt is
	// ErrNotificationNotFound.
	MarkRead(ctx context.Context, notificationID string, userID string, readAt time.Time) (bool, error)
}

// Directory exposes the town's user registry to the targeting resolver.
type Directory interface {
	GetUser(ctx context.Context, userID string) (entities.DirectoryUser, error)
	ListUsers(ctx context.Context) ([]entities.DirectoryUser, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, events.Envelope) error) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
