package httptransport

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateNotificationRequest carries the wire target form: "all",
// "group:<location>" or a user id.
type CreateNotificationRequest struct {
	Target  string `json:"target"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

type NotificationResponse struct {
	NotificationID string    `json:"notification_id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Type           string    `json:"type"`
	Target         string    `json:"target"`
	RecipientCount int       `json:"recipient_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	Items []NotificationResponse `json:"items"`
}

type InboxItemResponse struct {
	Notification NotificationResponse `json:"notification"`
	IsRead       bool                 `json:"is_read"`
	ReadAt       *time.Time           `json:"read_at,omitempty"`
}

type InboxResponse struct {
	Items []InboxItemResponse `json:"items"`
}
