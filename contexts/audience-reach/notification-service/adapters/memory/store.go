package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"kasaba/contexts/audience-reach/notification-service/domain/entities"
	domainerrors "kasaba/contexts/audience-reach/notification-service/domain/errors"

	"github.com/google/uuid"
)

type receiptKey struct {
	notificationID string
	userID         string
}

// Store keeps notifications, receipts and the user directory in memory.
// It backs tests and in-memory wiring; the directory is seeded up front.
type Store struct {
	mu            sync.RWMutex
	notifications map[string]entities.Notification
	receipts      map[receiptKey]entities.Receipt
	users         map[string]entities.DirectoryUser
}

func NewStore(directory []entities.DirectoryUser) *Store {
	users := make(map[string]entities.DirectoryUser, len(directory))
	for _, user := range directory {
		users[user.UserID] = user
	}
	return &Store{
		notifications: map[string]entities.Notification{},
		receipts:      map[receiptKey]entities.Receipt{},
		users:         users,
	}
}

func (s *Store) CreateNotification(_ context.Context, notification entities.Notification, receipts []entities.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[notification.NotificationID] = notification
	for _, receipt := range receipts {
		s.receipts[receiptKey{receipt.NotificationID, receipt.UserID}] = receipt
	}
	return nil
}

func (s *Store) GetNotification(_ context.Context, notificationID string) (entities.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notification, ok := s.notifications[strings.TrimSpace(notificationID)]
	if !ok {
		return entities.Notification{}, domainerrors.ErrNotificationNotFound
	}
	return notification, nil
}

func (s *Store) ListNotifications(_ context.Context, limit int, offset int) ([]entities.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notifications := make([]entities.Notification, 0, len(s.notifications))
	for _, notification := range s.notifications {
		notifications = append(notifications, notification)
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	if offset >= len(notifications) {
		return []entities.Notification{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(notifications) {
		end = len(notifications)
	}
	return notifications[offset:end], nil
}

func (s *Store) Inbox(_ context.Context, userID string) ([]entities.InboxItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.InboxItem, 0)
	for key, receipt := range s.receipts {
		if key.userID != userID {
			continue
		}
		notification, ok := s.notifications[key.notificationID]
		if !ok {
			continue
		}
		items = append(items, entities.InboxItem{
			Notification: notification,
			IsRead:       receipt.IsRead,
			ReadAt:       receipt.ReadAt,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Notification.CreatedAt.After(items[j].Notification.CreatedAt)
	})
	return items, nil
}

func (s *Store) MarkRead(_ context.Context, notificationID string, userID string, readAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := receiptKey{strings.TrimSpace(notificationID), strings.TrimSpace(userID)}
	receipt, ok := s.receipts[key]
	if !ok {
		return false, domainerrors.ErrNotificationNotFound
	}
	if receipt.IsRead {
		return false, nil
	}
	readAt = readAt.UTC()
	receipt.IsRead = true
	receipt.ReadAt = &readAt
	s.receipts[key] = receipt
	return true, nil
}

func (s *Store) GetUser(_ context.Context, userID string) (entities.DirectoryUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[strings.TrimSpace(userID)]
	if !ok {
		return entities.DirectoryUser{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) ListUsers(_ context.Context) ([]entities.DirectoryUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]entities.DirectoryUser, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].UserID < users[j].UserID
	})
	return users, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
