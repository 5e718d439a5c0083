package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kasaba/contexts/community-engagement/vote-ledger/domain/entities"
	domainerrors "kasaba/contexts/community-engagement/vote-ledger/domain/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists both poll families. Vote mutations run inside a
// transaction holding a row lock on the parent record, so counters and
// per-user entries always move together.
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

func (r *Repository) CreateAdminPoll(ctx context.Context, poll entities.AdminPoll) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := adminPollModelFromEntity(poll)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		for position, option := range poll.Options {
			optionRow := adminPollOptionModel{
				OptionID:  option.OptionID,
				PollID:    poll.PollID,
				Text:      option.Text,
				VoteCount: option.VoteCount,
				Position:  position,
			}
			if err := tx.Create(&optionRow).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) GetAdminPoll(ctx context.Context, pollID string) (entities.AdminPoll, error) {
	var poll entities.AdminPoll
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loaded, err := loadAdminPoll(tx, pollID, false)
		if err != nil {
			return err
		}
		poll = loaded
		return nil
	})
	if err != nil {
		return entities.AdminPoll{}, err
	}
	return poll, nil
}

func (r *Repository) ListAdminPolls(ctx context.Context, onlyOpen bool, now time.Time) ([]entities.AdminPoll, error) {
	query := r.db.WithContext(ctx).Model(&adminPollModel{}).Order("created_at DESC")
	if onlyOpen {
		query = query.Where("is_active = ? AND end_date >= ?", true, now.UTC())
	}
	var rows []adminPollModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	polls := make([]entities.AdminPoll, 0, len(rows))
	for _, row := range rows {
		poll, err := loadAdminPoll(r.db.WithContext(ctx), row.PollID, false)
		if err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}
	return polls, nil
}

func (r *Repository) RecordAdminPollVote(
	ctx context.Context,
	pollID string,
	userID string,
	optionID string,
	now time.Time,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row adminPollModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("poll_id = ?", pollID).
			First(&row).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrPollNotFound
		}
		if err != nil {
			return err
		}
		if !row.IsActive || now.UTC().After(row.EndDate) {
			return domainerrors.ErrPollClosed
		}

		vote := adminPollVoteModel{
			PollID:    pollID,
			UserID:    userID,
			OptionID:  optionID,
			CreatedAt: now.UTC(),
		}
		if err := tx.Create(&vote).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAlreadyVoted
			}
			return err
		}

		result := tx.Model(&adminPollOptionModel{}).
			Where("option_id = ? AND poll_id = ?", optionID, pollID).
			Update("vote_count", gorm.Expr("vote_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrOptionNotFound
		}

		return tx.Model(&adminPollModel{}).
			Where("poll_id = ?", pollID).
			Updates(map[string]any{
				"total_votes": gorm.Expr("total_votes + 1"),
				"updated_at":  now.UTC(),
			}).
			Error
	})
}

func (r *Repository) CloseAdminPoll(ctx context.Context, pollID string, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&adminPollModel{}).
		Where("poll_id = ? AND is_active = ?", pollID, true).
		Updates(map[string]any{
			"is_active":  false,
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var row adminPollModel
		err := r.db.WithContext(ctx).
			Select("poll_id").
			Where("poll_id = ?", pollID).
			First(&row).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrPollNotFound
		}
		if err != nil {
			return err
		}
		return domainerrors.ErrPreconditionFailed
	}
	return nil
}

// loadAdminPoll hydrates one poll with its options and voter list.
func loadAdminPoll(tx *gorm.DB, pollID string, forUpdate bool) (entities.AdminPoll, error) {
	query := tx
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row adminPollModel
	err := query.Where("poll_id = ?", pollID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.AdminPoll{}, domainerrors.ErrPollNotFound
	}
	if err != nil {
		return entities.AdminPoll{}, err
	}

	var optionRows []adminPollOptionModel
	if err := tx.Where("poll_id = ?", pollID).Order("position ASC").Find(&optionRows).Error; err != nil {
		return entities.AdminPoll{}, err
	}
	var voteRows []adminPollVoteModel
	if err := tx.Where("poll_id = ?", pollID).Order("created_at ASC").Find(&voteRows).Error; err != nil {
		return entities.AdminPoll{}, err
	}

	poll := row.toEntity()
	poll.Options = make([]entities.PollOption, 0, len(optionRows))
	for _, optionRow := range optionRows {
		poll.Options = append(poll.Options, entities.PollOption{
			OptionID:  optionRow.OptionID,
			Text:      optionRow.Text,
			VoteCount: optionRow.VoteCount,
		})
	}
	poll.VotedUserIDs = make([]string, 0, len(voteRows))
	for _, voteRow := range voteRows {
		poll.VotedUserIDs = append(poll.VotedUserIDs, voteRow.UserID)
	}
	return poll, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type adminPollModel struct {
	PollID     string    `gorm:"column:poll_id;primaryKey"`
	Question   string    `gorm:"column:question"`
	EndDate    time.Time `gorm:"column:end_date"`
	IsActive   bool      `gorm:"column:is_active"`
	TotalVotes int       `gorm:"column:total_votes"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (adminPollModel) TableName() string {
	return "admin_polls"
}

func adminPollModelFromEntity(poll entities.AdminPoll) adminPollModel {
	return adminPollModel{
		PollID:     poll.PollID,
		Question:   poll.Question,
		EndDate:    poll.EndDate.UTC(),
		IsActive:   poll.IsActive,
		TotalVotes: poll.TotalVotes,
		CreatedAt:  poll.CreatedAt.UTC(),
		UpdatedAt:  poll.UpdatedAt.UTC(),
	}
}

func (m adminPollModel) toEntity() entities.AdminPoll {
	return entities.AdminPoll{
		PollID:     m.PollID,
		Question:   m.Question,
		EndDate:    m.EndDate.UTC(),
		IsActive:   m.IsActive,
		TotalVotes: m.TotalVotes,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
}

type adminPollOptionModel struct {
	OptionID  string `gorm:"column:option_id;primaryKey"`
	PollID    string `gorm:"column:poll_id;index"`
	Text      string `gorm:"column:text"`
	VoteCount int    `gorm:"column:vote_count"`
	Position  int    `gorm:"column:position"`
}

func (adminPollOptionModel) TableName() string {
	return "admin_poll_options"
}

type adminPollVoteModel struct {
	PollID    string    `gorm:"column:poll_id;primaryKey"`
	UserID    string    `gorm:"column:user_id;primaryKey"`
	OptionID  string    `gorm:"column:option_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (adminPollVoteModel) TableName() string {
	return "admin_poll_votes"
}
