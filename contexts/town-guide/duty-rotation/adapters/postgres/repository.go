package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kasaba/contexts/town-guide/duty-rotation/domain/entities"
	domainerrors "kasaba/contexts/town-guide/duty-rotation/domain/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r *Repository) CreatePharmacy(ctx context.Context, pharmacy entities.Pharmacy) error {
	row := pharmacyModelFromEntity(pharmacy)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetPharmacy(ctx context.Context, pharmacyID string) (entities.Pharmacy, error) {
	var row pharmacyModel
	err := r.db.WithContext(ctx).
		Where("pharmacy_id = ?", pharmacyID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Pharmacy{}, domainerrors.ErrPharmacyNotFound
		}
		return entities.Pharmacy{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPharmacies(ctx context.Context) ([]entities.Pharmacy, error) {
	var rows []pharmacyModel
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	pharmacies := make([]entities.Pharmacy, 0, len(rows))
	for _, row := range rows {
		pharmacies = append(pharmacies, row.toEntity())
	}
	return pharmacies, nil
}

// UpsertDutyDay relies on the date primary key: a conflicting insert becomes
// an update of the assignment, which keeps one pharmacy per day without a
// separate existence check.
func (r *Repository) UpsertDutyDay(ctx context.Context, duty entities.DutyDay) error {
	row := dutyDayModel{
		Date:       duty.Date,
		PharmacyID: duty.PharmacyID,
		AssignedBy: duty.AssignedBy,
		UpdatedAt:  duty.UpdatedAt.UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"pharmacy_id", "assigned_by", "updated_at"}),
		}).
		Create(&row).
		Error
}

func (r *Repository) GetDutyDay(ctx context.Context, date string) (entities.DutyDay, error) {
	var row dutyDayModel
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DutyDay{}, domainerrors.ErrNoDutyAssigned
		}
		return entities.DutyDay{}, err
	}
	return entities.DutyDay{
		Date:       row.Date,
		PharmacyID: row.PharmacyID,
		AssignedBy: row.AssignedBy,
		UpdatedAt:  row.UpdatedAt.UTC(),
	}, nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type pharmacyModel struct {
	PharmacyID string    `gorm:"column:pharmacy_id;primaryKey"`
	Name       string    `gorm:"column:name"`
	Phone      string    `gorm:"column:phone"`
	Address    string    `gorm:"column:address"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (pharmacyModel) TableName() string {
	return "pharmacies"
}

func pharmacyModelFromEntity(pharmacy entities.Pharmacy) pharmacyModel {
	return pharmacyModel{
		PharmacyID: pharmacy.PharmacyID,
		Name:       pharmacy.Name,
		Phone:      pharmacy.Phone,
		Address:    pharmacy.Address,
		CreatedAt:  pharmacy.CreatedAt.UTC(),
	}
}

func (m pharmacyModel) toEntity() entities.Pharmacy {
	return entities.Pharmacy{
		PharmacyID: m.PharmacyID,
		Name:       m.Name,
		Phone:      m.Phone,
		Address:    m.Address,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

type dutyDayModel struct {
	Date       string    `gorm:"column:date;primaryKey"`
	PharmacyID string    `gorm:"column:pharmacy_id"`
	AssignedBy string    `gorm:"column:assigned_by"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (dutyDayModel) TableName() string {
	return "duty_days"
}
