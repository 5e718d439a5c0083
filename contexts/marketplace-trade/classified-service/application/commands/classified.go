package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "kasaba/contexts/marketplace-trade/classified-service/application"
	"kasaba/contexts/marketplace-trade/classified-service/domain/entities"
	domainerrors "kasaba/contexts/marketplace-trade/classified-service/domain/errors"
	"kasaba/contexts/marketplace-trade/classified-service/ports"
)

// SubmitClassifiedCommand is the write-model input for listing creation.
type SubmitClassifiedCommand struct {
	Actor        ports.Actor
	Title        string
	Category     entities.Category
	SubCategory  string
	Price        float64
	Description  string
	ImageURL     string
	Location     string
	ContactName  string
	ContactPhone string
}

// ClassifiedUseCase orchestrates the listing lifecycle: submission, the
// moderator decision, and the featured promotion chain. Every transition is
// one conditional write; a failed precondition means another writer won the
// race and the caller gets the now-accurate transition error.
type ClassifiedUseCase struct {
	Listings        ports.ClassifiedRepository
	Clock           ports.Clock
	IDGen           ports.IDGenerator
	MaxFeaturedDays int
	Logger          *slog.Logger
}

func (uc ClassifiedUseCase) Submit(ctx context.Context, cmd SubmitClassifiedCommand) (entities.Classified, error) {
	logger := application.ResolveLogger(uc.Logger)

	cmd.Title = strings.TrimSpace(cmd.Title)
	if strings.TrimSpace(cmd.Actor.UserID) == "" || cmd.Title == "" || cmd.Price < 0 {
		return entities.Classified{}, domainerrors.ErrInvalidListingInput
	}
	if !entities.ValidCategory(cmd.Category) {
		return entities.Classified{}, domainerrors.ErrInvalidListingInput
	}

	classifiedID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Classified{}, err
	}
	now := uc.now()
	classified := entities.Classified{
		ClassifiedID:   classifiedID,
		UserID:         strings.TrimSpace(cmd.Actor.UserID),
		Title:          cmd.Title,
		Category:       cmd.Category,
		SubCategory:    strings.TrimSpace(cmd.SubCategory),
		Price:          cmd.Price,
		Description:    strings.TrimSpace(cmd.Description),
		ImageURL:       strings.TrimSpace(cmd.ImageURL),
		Location:       strings.TrimSpace(cmd.Location),
		ContactName:    strings.TrimSpace(cmd.ContactName),
		ContactPhone:   strings.TrimSpace(cmd.ContactPhone),
		Status:         entities.StatusPending,
		FeaturedStatus: entities.FeaturedNone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.Listings.CreateClassified(ctx, classified); err != nil {
		return entities.Classified{}, err
	}

	logger.Info("classified submitted",
		"event", "classified_submitted",
		"module", "marketplace-trade/classified-service",
		"layer", "application",
		"classified_id", classified.ClassifiedID,
		"user_id", classified.UserID,
		"category", string(classified.Category),
	)
	return classified, nil
}

// Decide applies the moderator verdict. The pending precondition rides on
// the write itself, so two concurrent decisions produce exactly one winner.
func (uc ClassifiedUseCase) Decide(ctx context.Context, actor ports.Actor, classifiedID string, outcome string) (entities.Classified, error) {
	logger := application.ResolveLogger(uc.Logger)

	if !actor.IsModerator() {
		logger.Warn("classified decision rejected for non-moderator",
			"event", "classified_decision_forbidden",
			"module", "marketplace-trade/classified-service",
			"layer", "application",
			"classified_id", strings.TrimSpace(classifiedID),
			"actor_id", strings.TrimSpace(actor.UserID),
		)
		return entities.Classified{}, domainerrors.ErrForbidden
	}

	var to entities.Status
	switch strings.ToLower(strings.TrimSpace(outcome)) {
	case "approve", "approved":
		to = entities.StatusApproved
	case "reject", "rejected":
		to = entities.StatusRejected
	default:
		return entities.Classified{}, domainerrors.ErrInvalidListingInput
	}

	classifiedID = strings.TrimSpace(classifiedID)
	current, err := uc.Listings.GetClassified(ctx, classifiedID)
	if err != nil {
		return entities.Classified{}, err
	}
	if current.Status != entities.StatusPending {
		return entities.Classified{}, domainerrors.ErrInvalidTransition
	}

	err = uc.Listings.TransitionStatus(ctx, classifiedID, entities.StatusPending, to, uc.now())
	if errors.Is(err, domainerrors.ErrPreconditionFailed) {
		// Another moderator's decision landed first.
		return entities.Classified{}, domainerrors.ErrInvalidTransition
	}
	if err != nil {
		return entities.Classified{}, err
	}

	logger.Info("classified decided",
		"event", "classified_decided",
		"module", "marketplace-trade/classified-service",
		"layer", "application",
		"classified_id", classifiedID,
		"moderator_id", strings.TrimSpace(actor.UserID),
		"outcome", string(to),
	)
	return uc.Listings.GetClassified(ctx, classifiedID)
}

// RequestFeatured records the owner's promotion request. Allowed only on an
// approved listing whose featured state is none or expired, which blocks
// duplicate concurrent requests.
func (uc ClassifiedUseCase) RequestFeatured(ctx context.Context, actor ports.Actor, classifiedID string, durationDays int) (entities.Classified, error) {
	logger := application.ResolveLogger(uc.Logger)

	classifiedID = strings.TrimSpace(classifiedID)
	if durationDays <= 0 || durationDays > uc.maxFeaturedDays() {
		return entities.Classified{}, domainerrors.ErrInvalidListingInput
	}

	current, err := uc.Listings.GetClassified(ctx, classifiedID)
	if err != nil {
		return entities.Classified{}, err
	}
	if current.UserID != strings.TrimSpace(actor.UserID) {
		return entities.Classified{}, domainerrors.ErrForbidden
	}
	if current.Status != entities.StatusApproved {
		return entities.Classified{}, domainerrors.ErrInvalidTransition
	}
	if !current.FeaturedRequestable() {
		return entities.Classified{}, domainerrors.ErrInvalidTransition
	}

	err = uc.Listings.MarkFeaturedRequested(ctx, classifiedID, durationDays, uc.now())
	if errors.Is(err, domainerrors.ErrPreconditionFailed) {
		return entities.Classified{}, domainerrors.ErrInvalidTransition
	}
	if err != nil {
		return entities.Classified{}, err
	}

	logger.Info("featured promotion requested",
		"event", "classified_featured_requested",
		"module", "marketplace-trade/classified-service",
		"layer", "application",
		"classified_id", classifiedID,
		"user_id", current.UserID,
		"duration_days", durationDays,
	)
	return uc.Listings.GetClassified(ctx, classifiedID)
}

// ActivateFeatured is the moderator confirmation. The expiry deadline is
// computed here and stamped by the same conditional write that flips the
// state, so an active record always carries its deadline.
func (uc ClassifiedUseCase) ActivateFeatured(ctx context.Context, actor ports.Actor, classifiedID string) (entities.Classified, error) {
	logger := application.ResolveLogger(uc.Logger)

	if !actor.IsModerator() {
		return entities.Classified{}, domainerrors.ErrForbidden
	}

	classifiedID = strings.TrimSpace(classifiedID)
	current, err := uc.Listings.GetClassified(ctx, classifiedID)
	if err != nil {
		return entities.Classified{}, err
	}
	if current.FeaturedStatus != entities.FeaturedPending {
		return entities.Classified{}, domainerrors.ErrInvalidTransition
	}
	if current.FeaturedDurationDays <= 0 {
		return entities.Classified{}, domainerrors.ErrInvalidTransition
	}

	now := uc.now()
	until := now.Add(time.Duration(current.FeaturedDurationDays) * 24 * time.Hour)
	err = uc.Listings.ActivateFeatured(ctx, classifiedID, until, now)
	if errors.Is(err, domainerrors.ErrPreconditionFailed) {
		return entities.Classified{}, domainerrors.ErrInvalidTransition
	}
	if err != nil {
		return entities.Classified{}, err
	}

	logger.Info("featured promotion activated",
		"event", "classified_featured_activated",
		"module", "marketplace-trade/classified-service",
		"layer", "application",
		"classified_id", classifiedID,
		"moderator_id", strings.TrimSpace(actor.UserID),
		"featured_until", until.Format(time.RFC3339),
	)
	return uc.Listings.GetClassified(ctx, classifiedID)
}

func (uc ClassifiedUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (uc ClassifiedUseCase) maxFeaturedDays() int {
	if uc.MaxFeaturedDays <= 0 {
		return 90
	}
	return uc.MaxFeaturedDays
}
