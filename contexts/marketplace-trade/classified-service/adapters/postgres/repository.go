package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kasaba/contexts/marketplace-trade/classified-service/domain/entities"
	domainerrors "kasaba/contexts/marketplace-trade/classified-service/domain/errors"

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

func (r *Repository) CreateClassified(ctx context.Context, classified entities.Classified) error {
	row := classifiedModelFromEntity(classified)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetClassified(ctx context.Context, classifiedID string) (entities.Classified, error) {
	var row classifiedModel
	err := r.db.WithContext(ctx).
		Where("classified_id = ?", classifiedID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Classified{}, domainerrors.ErrClassifiedNotFound
		}
		return entities.Classified{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) TransitionStatus(
	ctx context.Context,
	classifiedID string,
	from entities.Status,
	to entities.Status,
	updatedAt time.Time,
) error {
	result := r.db.WithContext(ctx).
		Model(&classifiedModel{}).
		Where("classified_id = ? AND status = ?", classifiedID, string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missOrPreconditionFailed(ctx, classifiedID)
	}
	return nil
}

func (r *Repository) MarkFeaturedRequested(
	ctx context.Context,
	classifiedID string,
	durationDays int,
	updatedAt time.Time,
) error {
	result := r.db.WithContext(ctx).
		Model(&classifiedModel{}).
		Where("classified_id = ? AND status = ? AND featured_status IN ?",
			classifiedID,
			string(entities.StatusApproved),
			[]string{string(entities.FeaturedNone), string(entities.FeaturedExpired)},
		).
		Updates(map[string]any{
			"featured_requested":     true,
			"featured_status":        string(entities.FeaturedPending),
			"featured_duration_days": durationDays,
			"featured_until":         nil,
			"updated_at":             updatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missOrPreconditionFailed(ctx, classifiedID)
	}
	return nil
}

func (r *Repository) ActivateFeatured(
	ctx context.Context,
	classifiedID string,
	until time.Time,
	updatedAt time.Time,
) error {
	result := r.db.WithContext(ctx).
		Model(&classifiedModel{}).
		Where("classified_id = ? AND featured_status = ?", classifiedID, string(entities.FeaturedPending)).
		Updates(map[string]any{
			"featured_status": string(entities.FeaturedActive),
			"featured_until":  until.UTC(),
			"updated_at":      updatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missOrPreconditionFailed(ctx, classifiedID)
	}
	return nil
}

func (r *Repository) ExpireActiveFeatured(ctx context.Context, now time.Time) (int, error) {
	result := r.db.WithContext(ctx).
		Model(&classifiedModel{}).
		Where("featured_status = ? AND featured_until <= ?", string(entities.FeaturedActive), now.UTC()).
		Updates(map[string]any{
			"featured_status": string(entities.FeaturedExpired),
			"updated_at":      now.UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (r *Repository) ListByStatus(ctx context.Context, status entities.Status, limit int, offset int) ([]entities.Classified, error) {
	var rows []classifiedModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) ListApproved(ctx context.Context, now time.Time, limit int, offset int) ([]entities.Classified, error) {
	var rows []classifiedModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.StatusApproved)).
		Order("(featured_status = 'active' AND featured_until > NOW()) DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// missOrPreconditionFailed disambiguates a guarded update that touched no
// rows: either the record is gone or another writer changed the state first.
func (r *Repository) missOrPreconditionFailed(ctx context.Context, classifiedID string) error {
	var row classifiedModel
	err := r.db.WithContext(ctx).
		Select("classified_id").
		Where("classified_id = ?", classifiedID).
		First(&row).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.ErrClassifiedNotFound
	}
	if err != nil {
		return err
	}
	return domainerrors.ErrPreconditionFailed
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type classifiedModel struct {
	ClassifiedID         string     `gorm:"column:classified_id;primaryKey"`
	UserID               string     `gorm:"column:user_id"`
	Title                string     `gorm:"column:title"`
	Category             string     `gorm:"column:category"`
	SubCategory          string     `gorm:"column:sub_category"`
	Price                float64    `gorm:"column:price"`
	Description          string     `gorm:"column:description"`
	ImageURL             string     `gorm:"column:image_url"`
	Location             string     `gorm:"column:location"`
	ContactName          string     `gorm:"column:contact_name"`
	ContactPhone         string     `gorm:"column:contact_phone"`
	Status               string     `gorm:"column:status"`
	FeaturedRequested    bool       `gorm:"column:featured_requested"`
	FeaturedStatus       string     `gorm:"column:featured_status"`
	FeaturedUntil        *time.Time `gorm:"column:featured_until"`
	FeaturedDurationDays int        `gorm:"column:featured_duration_days"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at"`
}

func (classifiedModel) TableName() string {
	return "classifieds"
}

func classifiedModelFromEntity(classified entities.Classified) classifiedModel {
	row := classifiedModel{
		ClassifiedID:         classified.ClassifiedID,
		UserID:               classified.UserID,
		Title:                classified.Title,
		Category:             string(classified.Category),
		SubCategory:          classified.SubCategory,
		Price:                classified.Price,
		Description:          classified.Description,
		ImageURL:             classified.ImageURL,
		Location:             classified.Location,
		ContactName:          classified.ContactName,
		ContactPhone:         classified.ContactPhone,
		Status:               string(classified.Status),
		FeaturedRequested:    classified.FeaturedRequested,
		FeaturedStatus:       string(classified.FeaturedStatus),
		FeaturedDurationDays: classified.FeaturedDurationDays,
		CreatedAt:            classified.CreatedAt.UTC(),
		UpdatedAt:            classified.UpdatedAt.UTC(),
	}
	if classified.FeaturedUntil != nil {
		until := classified.FeaturedUntil.UTC()
		row.FeaturedUntil = &until
	}
	return row
}

func (m classifiedModel) toEntity() entities.Classified {
	classified := entities.Classified{
		ClassifiedID:         m.ClassifiedID,
		UserID:               m.UserID,
		Title:                m.Title,
		Category:             entities.Category(m.Category),
		SubCategory:          m.SubCategory,
		Price:                m.Price,
		Description:          m.Description,
		ImageURL:             m.ImageURL,
		Location:             m.Location,
		ContactName:          m.ContactName,
		ContactPhone:         m.ContactPhone,
		Status:               entities.Status(m.Status),
		FeaturedRequested:    m.FeaturedRequested,
		FeaturedStatus:       entities.FeaturedStatus(m.FeaturedStatus),
		FeaturedDurationDays: m.FeaturedDurationDays,
		CreatedAt:            m.CreatedAt.UTC(),
		UpdatedAt:            m.UpdatedAt.UTC(),
	}
	if m.FeaturedUntil != nil {
		until := m.FeaturedUntil.UTC()
		classified.FeaturedUntil = &until
	}
	return classified
}

func toEntities(rows []classifiedModel) []entities.Classified {
	items := make([]entities.Classified, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
