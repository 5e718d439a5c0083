package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kasaba/contexts/audience-reach/ad-service/domain/entities"
	domainerrors "kasaba/contexts/audience-reach/ad-service/domain/errors"

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

func (r *Repository) CreateAd(ctx context.Context, ad entities.Ad) error {
	row := adModelFromEntity(ad)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetAd(ctx context.Context, adID string) (entities.Ad, error) {
	var row adModel
	err := r.db.WithContext(ctx).
		Where("ad_id = ?", adID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Ad{}, domainerrors.ErrAdNotFound
		}
		return entities.Ad{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) IncrementViews(ctx context.Context, adID string) (int64, int64, error) {
	return r.increment(ctx, adID, "views")
}

func (r *Repository) IncrementClicks(ctx context.Context, adID string) (int64, int64, error) {
	return r.increment(ctx, adID, "clicks")
}

// increment bumps one counter atomically and reads the pair back for the
// caller's skew check. The read is outside the update on purpose: the
// counters are monotonic, so a slightly newer snapshot is still correct.
func (r *Repository) increment(ctx context.Context, adID string, column string) (int64, int64, error) {
	result := r.db.WithContext(ctx).
		Model(&adModel{}).
		Where("ad_id = ?", adID).
		Update(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return 0, 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, 0, domainerrors.ErrAdNotFound
	}

	var row adModel
	err := r.db.WithContext(ctx).
		Select("views", "clicks").
		Where("ad_id = ?", adID).
		First(&row).
		Error
	if err != nil {
		return 0, 0, err
	}
	return row.Views, row.Clicks, nil
}

func (r *Repository) ListActive(ctx context.Context, now time.Time) ([]entities.Ad, error) {
	var rows []adModel
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now.UTC(), now.UTC()).
		Order("start_date ASC, ad_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	ads := make([]entities.Ad, 0, len(rows))
	for _, row := range rows {
		ads = append(ads, row.toEntity())
	}
	return ads, nil
}

func (r *Repository) SelectActivePopup(ctx context.Context, now time.Time) (entities.Ad, error) {
	var row adModel
	err := r.db.WithContext(ctx).
		Where("type = ? AND is_active = ? AND start_date <= ? AND end_date >= ?",
			string(entities.AdPopup), true, now.UTC(), now.UTC()).
		Order("start_date ASC, ad_id ASC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Ad{}, domainerrors.ErrNoActivePopup
		}
		return entities.Ad{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) SweepWindows(ctx context.Context, now time.Time) (int, int, error) {
	nowUTC := now.UTC()

	activate := r.db.WithContext(ctx).
		Model(&adModel{}).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", false, nowUTC, nowUTC).
		Updates(map[string]any{
			"is_active":  true,
			"updated_at": nowUTC,
		})
	if activate.Error != nil {
		return 0, 0, activate.Error
	}

	deactivate := r.db.WithContext(ctx).
		Model(&adModel{}).
		Where("is_active = ? AND (start_date > ? OR end_date < ?)", true, nowUTC, nowUTC).
		Updates(map[string]any{
			"is_active":  false,
			"updated_at": nowUTC,
		})
	if deactivate.Error != nil {
		return int(activate.RowsAffected), 0, deactivate.Error
	}
	return int(activate.RowsAffected), int(deactivate.RowsAffected), nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type adModel struct {
	AdID         string    `gorm:"column:ad_id;primaryKey"`
	Title        string    `gorm:"column:title"`
	Advertiser   string    `gorm:"column:advertiser"`
	ImageURL     string    `gorm:"column:image_url"`
	TargetURL    string    `gorm:"column:target_url"`
	Type         string    `gorm:"column:type"`
	StartDate    time.Time `gorm:"column:start_date"`
	EndDate      time.Time `gorm:"column:end_date"`
	IsActive     bool      `gorm:"column:is_active"`
	Views        int64     `gorm:"column:views"`
	Clicks       int64     `gorm:"column:clicks"`
	DurationDays int       `gorm:"column:duration_days"`
	Cost         float64   `gorm:"column:cost"`
	CreatedBy    string    `gorm:"column:created_by"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (adModel) TableName() string {
	return "ads"
}

func adModelFromEntity(ad entities.Ad) adModel {
	return adModel{
		AdID:         ad.AdID,
		Title:        ad.Title,
		Advertiser:   ad.Advertiser,
		ImageURL:     ad.ImageURL,
		TargetURL:    ad.TargetURL,
		Type:         string(ad.Type),
		StartDate:    ad.StartDate.UTC(),
		EndDate:      ad.EndDate.UTC(),
		IsActive:     ad.IsActive,
		Views:        ad.Views,
		Clicks:       ad.Clicks,
		DurationDays: ad.DurationDays,
		Cost:         ad.Cost,
		CreatedBy:    ad.CreatedBy,
		CreatedAt:    ad.CreatedAt.UTC(),
		UpdatedAt:    ad.UpdatedAt.UTC(),
	}
}

func (m adModel) toEntity() entities.Ad {
	return entities.Ad{
		AdID:         m.AdID,
		Title:        m.Title,
		Advertiser:   m.Advertiser,
		ImageURL:     m.ImageURL,
		TargetURL:    m.TargetURL,
		Type:         entities.AdType(m.Type),
		StartDate:    m.StartDate.UTC(),
		EndDate:      m.EndDate.UTC(),
		IsActive:     m.IsActive,
		Views:        m.Views,
		Clicks:       m.Clicks,
		DurationDays: m.DurationDays,
		Cost:         m.Cost,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}
