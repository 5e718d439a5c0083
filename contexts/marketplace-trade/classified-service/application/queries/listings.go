package queries

import (
	"context"
	"strings"
	"time"

	"kasaba/contexts/marketplace-trade/classified-service/domain/entities"
	domainerrors "kasaba/contexts/marketplace-trade/classified-service/domain/errors"
	"kasaba/contexts/marketplace-trade/classified-service/ports"
)

type ListingsUseCase struct {
	Listings ports.ClassifiedRepository
	Clock    ports.Clock
}

func (uc ListingsUseCase) GetClassified(ctx context.Context, actor ports.Actor, classifiedID string) (entities.Classified, error) {
	classified, err := uc.Listings.GetClassified(ctx, strings.TrimSpace(classifiedID))
	if err != nil {
		return entities.Classified{}, err
	}
	// Unreviewed and rejected listings are visible to their owner and to
	// moderators only.
	if classified.Status != entities.StatusApproved &&
		classified.UserID != strings.TrimSpace(actor.UserID) &&
		!actor.IsModerator() {
		return entities.Classified{}, domainerrors.ErrClassifiedNotFound
	}
	return classified, nil
}

// PublicFeed lists approved listings, featured-active records first.
func (uc ListingsUseCase) PublicFeed(ctx context.Context, limit int, offset int) ([]entities.Classified, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		return nil, domainerrors.ErrInvalidListingInput
	}
	return uc.Listings.ListApproved(ctx, uc.now(), limit, offset)
}

// ModerationQueue lists pending listings for review.
func (uc ListingsUseCase) ModerationQueue(ctx context.Context, actor ports.Actor, limit int, offset int) ([]entities.Classified, error) {
	if !actor.IsModerator() {
		return nil, domainerrors.ErrForbidden
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		return nil, domainerrors.ErrInvalidListingInput
	}
	return uc.Listings.ListByStatus(ctx, entities.StatusPending, limit, offset)
}

func (uc ListingsUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
