package queries

import (
	"context"
	"strings"

	"kasaba/contexts/audience-reach/notification-service/domain/entities"
	domainerrors "kasaba/contexts/audience-reach/notification-service/domain/errors"
	"kasaba/contexts/audience-reach/notification-service/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type InboxUseCase struct {
	Notifications ports.NotificationRepository
}

// Inbox lists the caller's receipts newest first.
func (uc InboxUseCase) Inbox(ctx context.Context, actor ports.Actor) ([]entities.InboxItem, error) {
	userID := strings.TrimSpace(actor.UserID)
	if userID == "" {
		return nil, domainerrors.ErrInvalidNotificationInput
	}
	return uc.Notifications.Inbox(ctx, userID)
}

// History lists all notifications for the admin overview.
func (uc InboxUseCase) History(ctx context.Context, actor ports.Actor, limit int, offset int) ([]entities.Notification, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return uc.Notifications.ListNotifications(ctx, limit, offset)
}
