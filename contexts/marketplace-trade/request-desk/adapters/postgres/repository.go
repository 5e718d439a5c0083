package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kasaba/contexts/marketplace-trade/request-desk/domain/entities"
	domainerrors "kasaba/contexts/marketplace-trade/request-desk/domain/errors"

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

func (r *Repository) CreateListingRequest(ctx context.Context, request entities.ListingRequest) error {
	row := listingRequestModelFromEntity(request)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ReviewListingRequest(ctx context.Context, requestID string, reviewedBy string, reviewedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&listingRequestModel{}).
		Where("request_id = ? AND status = ?", requestID, string(entities.RequestPending)).
		Updates(map[string]any{
			"status":      string(entities.RequestReviewed),
			"reviewed_by": reviewedBy,
			"reviewed_at": reviewedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missOrPreconditionFailed(ctx, &listingRequestModel{}, requestID)
	}
	return nil
}

func (r *Repository) ListPendingListingRequests(ctx context.Context) ([]entities.ListingRequest, error) {
	var rows []listingRequestModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.RequestPending)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	requests := make([]entities.ListingRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, row.toEntity())
	}
	return requests, nil
}

func (r *Repository) CreatePollRequest(ctx context.Context, request entities.PollRequest) error {
	row := pollRequestModelFromEntity(request)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ReviewPollRequest(ctx context.Context, requestID string, reviewedBy string, reviewedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&pollRequestModel{}).
		Where("request_id = ? AND status = ?", requestID, string(entities.RequestPending)).
		Updates(map[string]any{
			"status":      string(entities.RequestReviewed),
			"reviewed_by": reviewedBy,
			"reviewed_at": reviewedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missOrPreconditionFailed(ctx, &pollRequestModel{}, requestID)
	}
	return nil
}

func (r *Repository) ListPendingPollRequests(ctx context.Context) ([]entities.PollRequest, error) {
	var rows []pollRequestModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.RequestPending)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	requests := make([]entities.PollRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, row.toEntity())
	}
	return requests, nil
}

// missOrPreconditionFailed disambiguates a guarded update that touched no
// rows: either the record is gone or another reviewer got there first.
func (r *Repository) missOrPreconditionFailed(ctx context.Context, model any, requestID string) error {
	err := r.db.WithContext(ctx).
		Model(model).
		Select("request_id").
		Where("request_id = ?", requestID).
		First(model).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.ErrRequestNotFound
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

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type listingRequestModel struct {
	RequestID    string     `gorm:"column:request_id;primaryKey"`
	BusinessName string     `gorm:"column:business_name"`
	Category     string     `gorm:"column:category"`
	Phone        string     `gorm:"column:phone"`
	Description  string     `gorm:"column:description"`
	Status       string     `gorm:"column:status"`
	ReviewedBy   string     `gorm:"column:reviewed_by"`
	ReviewedAt   *time.Time `gorm:"column:reviewed_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

func (listingRequestModel) TableName() string {
	return "listing_requests"
}

func listingRequestModelFromEntity(request entities.ListingRequest) listingRequestModel {
	row := listingRequestModel{
		RequestID:    request.RequestID,
		BusinessName: request.BusinessName,
		Category:     request.Category,
		Phone:        request.Phone,
		Description:  request.Description,
		Status:       string(request.Status),
		ReviewedBy:   request.ReviewedBy,
		CreatedAt:    request.CreatedAt.UTC(),
	}
	if request.ReviewedAt != nil {
		reviewedAt := request.ReviewedAt.UTC()
		row.ReviewedAt = &reviewedAt
	}
	return row
}

func (m listingRequestModel) toEntity() entities.ListingRequest {
	request := entities.ListingRequest{
		RequestID:    m.RequestID,
		BusinessName: m.BusinessName,
		Category:     m.Category,
		Phone:        m.Phone,
		Description:  m.Description,
		Status:       entities.RequestStatus(m.Status),
		ReviewedBy:   m.ReviewedBy,
		CreatedAt:    m.CreatedAt.UTC(),
	}
	if m.ReviewedAt != nil {
		reviewedAt := m.ReviewedAt.UTC()
		request.ReviewedAt = &reviewedAt
	}
	return request
}

type pollRequestModel struct {
	RequestID  string     `gorm:"column:request_id;primaryKey"`
	UserID     string     `gorm:"column:user_id"`
	UserName   string     `gorm:"column:user_name"`
	Suggestion string     `gorm:"column:suggestion"`
	Status     string     `gorm:"column:status"`
	ReviewedBy string     `gorm:"column:reviewed_by"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
}

func (pollRequestModel) TableName() string {
	return "poll_requests"
}

func pollRequestModelFromEntity(request entities.PollRequest) pollRequestModel {
	row := pollRequestModel{
		RequestID:  request.RequestID,
		UserID:     request.UserID,
		UserName:   request.UserName,
		Suggestion: request.Suggestion,
		Status:     string(request.Status),
		ReviewedBy: request.ReviewedBy,
		CreatedAt:  request.CreatedAt.UTC(),
	}
	if request.ReviewedAt != nil {
		reviewedAt := request.ReviewedAt.UTC()
		row.ReviewedAt = &reviewedAt
	}
	return row
}

func (m pollRequestModel) toEntity() entities.PollRequest {
	request := entities.PollRequest{
		RequestID:  m.RequestID,
		UserID:     m.UserID,
		UserName:   m.UserName,
		Suggestion: m.Suggestion,
		Status:     entities.RequestStatus(m.Status),
		ReviewedBy: m.ReviewedBy,
		CreatedAt:  m.CreatedAt.UTC(),
	}
	if m.ReviewedAt != nil {
		reviewedAt := m.ReviewedAt.UTC()
		request.ReviewedAt = &reviewedAt
	}
	return request
}
