package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kasaba/contexts/audience-reach/notification-service/domain/entities"
	domainerrors "kasaba/contexts/audience-reach/notification-service/domain/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateNotification(
	ctx context.Context,
	notification entities.Notification,
	receipts []entities.Receipt,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := notificationModelFromEntity(notification)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if len(receipts) == 0 {
			return nil
		}
		rows := make([]receiptModel, 0, len(receipts))
		for _, receipt := range receipts {
			rows = append(rows, receiptModel{
				NotificationID: receipt.NotificationID,
				UserID:         receipt.UserID,
				IsRead:         receipt.IsRead,
				CreatedAt:      receipt.CreatedAt.UTC(),
			})
		}
		return tx.CreateInBatches(rows, 200).Error
	})
}

func (r *Repository) GetNotification(ctx context.Context, notificationID string) (entities.Notification, error) {
	var row notificationModel
	err := r.db.WithContext(ctx).
		Where("notification_id = ?", notificationID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Notification{}, domainerrors.ErrNotificationNotFound
		}
		return entities.Notification{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListNotifications(ctx context.Context, limit int, offset int) ([]entities.Notification, error) {
	var rows []notificationModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	notifications := make([]entities.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, row.toEntity())
	}
	return notifications, nil
}

func (r *Repository) Inbox(ctx context.Context, userID string) ([]entities.InboxItem, error) {
	var receiptRows []receiptModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&receiptRows).
		Error
	if err != nil {
		return nil, err
	}
	if len(receiptRows) == 0 {
		return []entities.InboxItem{}, nil
	}

	ids := make([]string, 0, len(receiptRows))
	for _, row := range receiptRows {
		ids = append(ids, row.NotificationID)
	}
	var notificationRows []notificationModel
	err = r.db.WithContext(ctx).
		Where("notification_id IN ?", ids).
		Order("created_at DESC").
		Find(&notificationRows).
		Error
	if err != nil {
		return nil, err
	}

	readState := make(map[string]receiptModel, len(receiptRows))
	for _, row := range receiptRows {
		readState[row.NotificationID] = row
	}
	items := make([]entities.InboxItem, 0, len(notificationRows))
	for _, row := range notificationRows {
		receipt := readState[row.NotificationID]
		items = append(items, entities.InboxItem{
			Notification: row.toEntity(),
			IsRead:       receipt.IsRead,
			ReadAt:       receipt.ReadAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkRead(ctx context.Context, notificationID string, userID string, readAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&receiptModel{}).
		Where("notification_id = ? AND user_id = ? AND is_read = ?", notificationID, userID, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": readAt.UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	var row receiptModel
	err := r.db.WithContext(ctx).
		Select("notification_id").
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		First(&row).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, domainerrors.ErrNotificationNotFound
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// Directory reads the shared users table.
type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) GetUser(ctx context.Context, userID string) (entities.DirectoryUser, error) {
	var row userModel
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DirectoryUser{}, domainerrors.ErrUserNotFound
		}
		return entities.DirectoryUser{}, err
	}
	return row.toEntity(), nil
}

func (d *Directory) ListUsers(ctx context.Context) ([]entities.DirectoryUser, error) {
	var rows []userModel
	err := d.db.WithContext(ctx).
		Order("user_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	users := make([]entities.DirectoryUser, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toEntity())
	}
	return users, nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type notificationModel struct {
	NotificationID string    `gorm:"column:notification_id;primaryKey"`
	Title          string    `gorm:"column:title"`
	Message        string    `gorm:"column:message"`
	Type           string    `gorm:"column:type"`
	Target         string    `gorm:"column:target"`
	CreatedBy      string    `gorm:"column:created_by"`
	RecipientCount int       `gorm:"column:recipient_count"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (notificationModel) TableName() string {
	return "notifications"
}

func notificationModelFromEntity(notification entities.Notification) notificationModel {
	return notificationModel{
		NotificationID: notification.NotificationID,
		Title:          notification.Title,
		Message:        notification.Message,
		Type:           string(notification.Type),
		Target:         notification.Target.String(),
		CreatedBy:      notification.CreatedBy,
		RecipientCount: notification.RecipientCount,
		CreatedAt:      notification.CreatedAt.UTC(),
	}
}

func (m notificationModel) toEntity() entities.Notification {
	// Stored targets were validated on the way in.
	target, _ := entities.ParseTarget(m.Target)
	return entities.Notification{
		NotificationID: m.NotificationID,
		Title:          m.Title,
		Message:        m.Message,
		Type:           entities.NotificationType(m.Type),
		Target:         target,
		CreatedBy:      m.CreatedBy,
		RecipientCount: m.RecipientCount,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

type receiptModel struct {
	NotificationID string     `gorm:"column:notification_id;primaryKey"`
	UserID         string     `gorm:"column:user_id;primaryKey"`
	IsRead         bool       `gorm:"column:is_read"`
	ReadAt         *time.Time `gorm:"column:read_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

func (receiptModel) TableName() string {
	return "notification_receipts"
}

type userModel struct {
	UserID       string `gorm:"column:user_id;primaryKey"`
	Name         string `gorm:"column:name"`
	LocationType string `gorm:"column:location_type"`
	Role         string `gorm:"column:role"`
}

func (userModel) TableName() string {
	return "users"
}

func (m userModel) toEntity() entities.DirectoryUser {
	return entities.DirectoryUser{
		UserID:       m.UserID,
		Name:         m.Name,
		LocationType: entities.LocationType(m.LocationType),
		Role:         m.Role,
	}
}
