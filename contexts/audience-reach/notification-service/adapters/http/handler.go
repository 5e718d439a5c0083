package httpadapter

import (
	"context"
	"log/slog"

	"kasaba/contexts/audience-reach/notification-service/application/commands"
	"kasaba/contexts/audience-reach/notification-service/application/queries"
	"kasaba/contexts/audience-reach/notification-service/domain/entities"
	domainerrors "kasaba/contexts/audience-reach/notification-service/domain/errors"
	"kasaba/contexts/audience-reach/notification-service/ports"
	httptransport "kasaba/contexts/audience-reach/notification-service/transport/http"
)

type Handler struct {
	Notifications commands.NotificationUseCase
	Inbox         queries.InboxUseCase
	Logger        *slog.Logger
}

func (h Handler) CreateNotificationHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.CreateNotificationRequest,
) (httptransport.NotificationResponse, error) {
	target, ok := entities.ParseTarget(req.Target)
	if !ok {
		return httptransport.NotificationResponse{}, domainerrors.ErrInvalidTarget
	}
	notification, err := h.Notifications.CreateNotification(
		ctx,
		actor,
		target,
		req.Title,
		req.Message,
		entities.NotificationType(req.Type),
	)
	if err != nil {
		return httptransport.NotificationResponse{}, err
	}
	return toNotificationResponse(notification), nil
}

func (h Handler) MarkReadHandler(ctx context.Context, actor ports.Actor, notificationID string) error {
	return h.Notifications.MarkRead(ctx, actor, notificationID)
}

func (h Handler) InboxHandler(ctx context.Context, actor ports.Actor) (httptransport.InboxResponse, error) {
	items, err := h.Inbox.Inbox(ctx, actor)
	if err != nil {
		return httptransport.InboxResponse{}, err
	}
	resp := httptransport.InboxResponse{
		Items: make([]httptransport.InboxItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, httptransport.InboxItemResponse{
			Notification: toNotificationResponse(item.Notification),
			IsRead:       item.IsRead,
			ReadAt:       item.ReadAt,
		})
	}
	return resp, nil
}

func (h Handler) HistoryHandler(
	ctx context.Context,
	actor ports.Actor,
	limit int,
	offset int,
) (httptransport.NotificationListResponse, error) {
	notifications, err := h.Inbox.History(ctx, actor, limit, offset)
	if err != nil {
		return httptransport.NotificationListResponse{}, err
	}
	resp := httptransport.NotificationListResponse{
		Items: make([]httptransport.NotificationResponse, 0, len(notifications)),
	}
	for _, notification := range notifications {
		resp.Items = append(resp.Items, toNotificationResponse(notification))
	}
	return resp, nil
}

func toNotificationResponse(notification entities.Notification) httptransport.NotificationResponse {
	return httptransport.NotificationResponse{
		NotificationID: notification.NotificationID,
		Title:          notification.Title,
		Message:        notification.Message,
		Type:           string(notification.Type),
		Target:         notification.Target.String(),
		RecipientCount: notification.RecipientCount,
		CreatedAt:      notification.CreatedAt,
	}
}
