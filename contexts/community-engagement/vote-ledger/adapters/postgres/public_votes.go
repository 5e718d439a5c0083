package postgresadapter

import (
	"context"
	"errors"
	"time"

	"kasaba/contexts/community-engagement/vote-ledger/domain/entities"
	domainerrors "kasaba/contexts/community-engagement/vote-ledger/domain/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repository) CreatePublicPoll(ctx context.Context, poll entities.PublicPoll) error {
	row := publicPollModelFromEntity(poll)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetPublicPoll(ctx context.Context, pollID string) (entities.PublicPoll, error) {
	var poll entities.PublicPoll
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loaded, err := loadPublicPoll(tx, pollID, false)
		if err != nil {
			return err
		}
		poll = loaded
		return nil
	})
	if err != nil {
		return entities.PublicPoll{}, err
	}
	return poll, nil
}

func (r *Repository) ListPublicPolls(ctx context.Context, limit int, offset int) ([]entities.PublicPoll, error) {
	var rows []publicPollModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	polls := make([]entities.PublicPoll, 0, len(rows))
	for _, row := range rows {
		poll, err := loadPublicPoll(r.db.WithContext(ctx), row.PollID, false)
		if err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}
	return polls, nil
}

func (r *Repository) SetPublicPollVote(
	ctx context.Context,
	pollID string,
	userID string,
	choice entities.PublicChoice,
	now time.Time,
) (bool, error) {
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row publicPollModel
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

		var vote publicPollVoteModel
		err = tx.Where("poll_id = ? AND user_id = ?", pollID, userID).First(&vote).Error
		hadVote := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if hadVote && entities.PublicChoice(vote.Choice) == choice {
			return nil
		}

		updates := map[string]any{"updated_at": now.UTC()}
		if hadVote {
			switch entities.PublicChoice(vote.Choice) {
			case entities.ChoiceAgree:
				updates["agree_count"] = gorm.Expr("agree_count - 1")
			case entities.ChoiceDisagree:
				updates["disagree_count"] = gorm.Expr("disagree_count - 1")
			}
		}
		switch choice {
		case entities.ChoiceAgree:
			updates["agree_count"] = gorm.Expr("agree_count + 1")
		case entities.ChoiceDisagree:
			updates["disagree_count"] = gorm.Expr("disagree_count + 1")
		}

		voteRow := publicPollVoteModel{
			PollID:    pollID,
			UserID:    userID,
			Choice:    string(choice),
			UpdatedAt: now.UTC(),
		}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "poll_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"choice", "updated_at"}),
		}).Create(&voteRow).Error
		if err != nil {
			return err
		}

		if err := tx.Model(&publicPollModel{}).Where("poll_id = ?", pollID).Updates(updates).Error; err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

func (r *Repository) CreatePublicEvent(ctx context.Context, event entities.PublicEvent) error {
	row := publicEventModelFromEntity(event)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetPublicEvent(ctx context.Context, eventID string) (entities.PublicEvent, error) {
	var event entities.PublicEvent
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loaded, err := loadPublicEvent(tx, eventID)
		if err != nil {
			return err
		}
		event = loaded
		return nil
	})
	if err != nil {
		return entities.PublicEvent{}, err
	}
	return event, nil
}

func (r *Repository) ListPublicEvents(ctx context.Context, limit int, offset int) ([]entities.PublicEvent, error) {
	var rows []publicEventModel
	err := r.db.WithContext(ctx).
		Order("event_date ASC, created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	events := make([]entities.PublicEvent, 0, len(rows))
	for _, row := range rows {
		event, err := loadPublicEvent(r.db.WithContext(ctx), row.EventID)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func (r *Repository) SetEventRSVP(
	ctx context.Context,
	eventID string,
	userID string,
	status entities.RSVPStatus,
	now time.Time,
) (bool, error) {
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row publicEventModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ?", eventID).
			First(&row).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrEventNotFound
		}
		if err != nil {
			return err
		}

		var rsvp eventRSVPModel
		err = tx.Where("event_id = ? AND user_id = ?", eventID, userID).First(&rsvp).Error
		hadRSVP := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if hadRSVP && entities.RSVPStatus(rsvp.Status) == status {
			return nil
		}

		updates := map[string]any{"updated_at": now.UTC()}
		if hadRSVP {
			switch entities.RSVPStatus(rsvp.Status) {
			case entities.RSVPAttending:
				updates["attending_count"] = gorm.Expr("attending_count - 1")
			case entities.RSVPNotAttending:
				updates["not_attending_count"] = gorm.Expr("not_attending_count - 1")
			}
		}
		switch status {
		case entities.RSVPAttending:
			updates["attending_count"] = gorm.Expr("attending_count + 1")
		case entities.RSVPNotAttending:
			updates["not_attending_count"] = gorm.Expr("not_attending_count + 1")
		}

		rsvpRow := eventRSVPModel{
			EventID:   eventID,
			UserID:    userID,
			Status:    string(status),
			UpdatedAt: now.UTC(),
		}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).Create(&rsvpRow).Error
		if err != nil {
			return err
		}

		if err := tx.Model(&publicEventModel{}).Where("event_id = ?", eventID).Updates(updates).Error; err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

func loadPublicPoll(tx *gorm.DB, pollID string, forUpdate bool) (entities.PublicPoll, error) {
	query := tx
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row publicPollModel
	err := query.Where("poll_id = ?", pollID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.PublicPoll{}, domainerrors.ErrPollNotFound
	}
	if err != nil {
		return entities.PublicPoll{}, err
	}

	var voteRows []publicPollVoteModel
	if err := tx.Where("poll_id = ?", pollID).Find(&voteRows).Error; err != nil {
		return entities.PublicPoll{}, err
	}

	poll := row.toEntity()
	poll.VotedUsers = make(map[string]entities.PublicChoice, len(voteRows))
	for _, voteRow := range voteRows {
		poll.VotedUsers[voteRow.UserID] = entities.PublicChoice(voteRow.Choice)
	}
	return poll, nil
}

func loadPublicEvent(tx *gorm.DB, eventID string) (entities.PublicEvent, error) {
	var row publicEventModel
	err := tx.Where("event_id = ?", eventID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.PublicEvent{}, domainerrors.ErrEventNotFound
	}
	if err != nil {
		return entities.PublicEvent{}, err
	}

	var rsvpRows []eventRSVPModel
	if err := tx.Where("event_id = ?", eventID).Find(&rsvpRows).Error; err != nil {
		return entities.PublicEvent{}, err
	}

	event := row.toEntity()
	event.RSVPStatus = make(map[string]entities.RSVPStatus, len(rsvpRows))
	for _, rsvpRow := range rsvpRows {
		event.RSVPStatus[rsvpRow.UserID] = entities.RSVPStatus(rsvpRow.Status)
	}
	return event, nil
}

type publicPollModel struct {
	PollID        string    `gorm:"column:poll_id;primaryKey"`
	UserID        string    `gorm:"column:user_id"`
	UserName      string    `gorm:"column:user_name"`
	Text          string    `gorm:"column:text"`
	AgreeCount    int       `gorm:"column:agree_count"`
	DisagreeCount int       `gorm:"column:disagree_count"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (publicPollModel) TableName() string {
	return "public_polls"
}

func publicPollModelFromEntity(poll entities.PublicPoll) publicPollModel {
	return publicPollModel{
		PollID:        poll.PollID,
		UserID:        poll.UserID,
		UserName:      poll.UserName,
		Text:          poll.Text,
		AgreeCount:    poll.AgreeCount,
		DisagreeCount: poll.DisagreeCount,
		CreatedAt:     poll.CreatedAt.UTC(),
		UpdatedAt:     poll.UpdatedAt.UTC(),
	}
}

func (m publicPollModel) toEntity() entities.PublicPoll {
	return entities.PublicPoll{
		PollID:        m.PollID,
		UserID:        m.UserID,
		UserName:      m.UserName,
		Text:          m.Text,
		AgreeCount:    m.AgreeCount,
		DisagreeCount: m.DisagreeCount,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

type publicPollVoteModel struct {
	PollID    string    `gorm:"column:poll_id;primaryKey"`
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Choice    string    `gorm:"column:choice"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (publicPollVoteModel) TableName() string {
	return "public_poll_votes"
}

type publicEventModel struct {
	EventID           string    `gorm:"column:event_id;primaryKey"`
	UserID            string    `gorm:"column:user_id"`
	UserName          string    `gorm:"column:user_name"`
	Type              string    `gorm:"column:type"`
	Title             string    `gorm:"column:title"`
	Description       string    `gorm:"column:description"`
	EventDate         string    `gorm:"column:event_date"`
	EventTime         string    `gorm:"column:event_time"`
	Location          string    `gorm:"column:location"`
	ImageURL          string    `gorm:"column:image_url"`
	AttendingCount    int       `gorm:"column:attending_count"`
	NotAttendingCount int       `gorm:"column:not_attending_count"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (publicEventModel) TableName() string {
	return "public_events"
}

func publicEventModelFromEntity(event entities.PublicEvent) publicEventModel {
	return publicEventModel{
		EventID:           event.EventID,
		UserID:            event.UserID,
		UserName:          event.UserName,
		Type:              string(event.Type),
		Title:             event.Title,
		Description:       event.Description,
		EventDate:         event.EventDate,
		EventTime:         event.EventTime,
		Location:          event.Location,
		ImageURL:          event.ImageURL,
		AttendingCount:    event.AttendingCount,
		NotAttendingCount: event.NotAttendingCount,
		CreatedAt:         event.CreatedAt.UTC(),
		UpdatedAt:         event.UpdatedAt.UTC(),
	}
}

func (m publicEventModel) toEntity() entities.PublicEvent {
	return entities.PublicEvent{
		EventID:           m.EventID,
		UserID:            m.UserID,
		UserName:          m.UserName,
		Type:              entities.EventType(m.Type),
		Title:             m.Title,
		Description:       m.Description,
		EventDate:         m.EventDate,
		EventTime:         m.EventTime,
		Location:          m.Location,
		ImageURL:          m.ImageURL,
		AttendingCount:    m.AttendingCount,
		NotAttendingCount: m.NotAttendingCount,
		CreatedAt:         m.CreatedAt.UTC(),
		UpdatedAt:         m.UpdatedAt.UTC(),
	}
}

type eventRSVPModel struct {
	EventID   string    `gorm:"column:event_id;primaryKey"`
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Status    string    `gorm:"column:status"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (eventRSVPModel) TableName() string {
	return "event_rsvps"
}
