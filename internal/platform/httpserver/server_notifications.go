package httpserver

import (
	"errors"
	"net/http"
	"strings"

	notificationerrors "kasaba/contexts/audience-reach/notification-service/domain/errors"
	notificationports "kasaba/contexts/audience-reach/notification-service/ports"
	notificationhttp "kasaba/contexts/audience-reach/notification-service/transport/http"
)

func writeNotificationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, notificationhttp.ErrorResponse{Code: code, Message: message})
}

func writeNotificationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, notificationerrors.ErrNotificationNotFound):
		writeNotificationError(w, http.StatusNotFound, "notification_not_found", err.Error())
	case errors.Is(err, notificationerrors.ErrUserNotFound):
		writeNotificationError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, notificationerrors.ErrInvalidTarget):
		writeNotificationError(w, http.StatusBadRequest, "invalid_target", err.Error())
	case errors.Is(err, notificationerrors.ErrInvalidNotificationInput):
		writeNotificationError(w, http.StatusBadRequest, "invalid_notification_input", err.Error())
	case errors.Is(err, notificationerrors.ErrForbidden):
		writeNotificationError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeNotificationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireNotificationActor(w http.ResponseWriter, r *http.Request) (notificationports.Actor, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeNotificationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return notificationports.Actor{}, false
	}
	return notificationports.Actor{
		UserID: userID,
		Role:   strings.TrimSpace(r.Header.Get("X-User-Role")),
	}, true
}

func (s *Server) handleCreateNotification(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireNotificationActor(w, r)
	if !ok {
		return
	}

	var req notificationhttp.CreateNotificationRequest
	if !s.decodeJSON(w, r, &req, writeNotificationError) {
		return
	}
	resp, err := s.notifications.Handler.CreateNotificationHandler(r.Context(), actor, req)
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleNotificationHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireNotificationActor(w, r)
	if !ok {
		return
	}
	limit, offset := parsePage(r)
	resp, err := s.notifications.Handler.HistoryHandler(r.Context(), actor, limit, offset)
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireNotificationActor(w, r)
	if !ok {
		return
	}
	resp, err := s.notifications.Handler.InboxHandler(r.Context(), actor)
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireNotificationActor(w, r)
	if !ok {
		return
	}
	if err := s.notifications.Handler.MarkReadHandler(r.Context(), actor, r.PathValue("notification_id")); err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
