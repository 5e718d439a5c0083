package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "kasaba/contexts/audience-reach/ad-service/application"
	"kasaba/contexts/audience-reach/ad-service/domain/entities"
	domainerrors "kasaba/contexts/audience-reach/ad-service/domain/errors"
	"kasaba/contexts/audience-reach/ad-service/ports"
)

// CreateAdCommand is the write-model input for campaign creation.
type CreateAdCommand struct {
	Actor        ports.Actor
	Title        string
	Advertiser   string
	ImageURL     string
	TargetURL    string
	Type         entities.AdType
	StartDate    time.Time
	EndDate      time.Time
	DurationDays int
	Cost         float64
}

type AdUseCase struct {
	Ads    ports.AdRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc AdUseCase) CreateAd(ctx context.Context, cmd CreateAdCommand) (entities.Ad, error) {
	if !cmd.Actor.IsAdmin() {
		return entities.Ad{}, domainerrors.ErrForbidden
	}
	cmd.Title = strings.TrimSpace(cmd.Title)
	if cmd.Title == "" || !entities.ValidAdType(cmd.Type) {
		return entities.Ad{}, domainerrors.ErrInvalidAdInput
	}
	if cmd.EndDate.Before(cmd.StartDate) {
		return entities.Ad{}, domainerrors.ErrInvalidAdInput
	}

	adID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Ad{}, err
	}
	now := uc.Clock.Now().UTC()
	ad := entities.Ad{
		AdID:         adID,
		Title:        cmd.Title,
		Advertiser:   strings.TrimSpace(cmd.Advertiser),
		ImageURL:     strings.TrimSpace(cmd.ImageURL),
		TargetURL:    strings.TrimSpace(cmd.TargetURL),
		Type:         cmd.Type,
		StartDate:    cmd.StartDate.UTC(),
		EndDate:      cmd.EndDate.UTC(),
		IsActive:     !now.Before(cmd.StartDate.UTC()) && !now.After(cmd.EndDate.UTC()),
		DurationDays: cmd.DurationDays,
		Cost:         cmd.Cost,
		CreatedBy:    strings.TrimSpace(cmd.Actor.UserID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.Ads.CreateAd(ctx, ad); err != nil {
		return entities.Ad{}, err
	}

	application.ResolveLogger(uc.Logger).Info("ad created",
		"event", "ad_created",
		"module", "audience-reach/ad-service",
		"layer", "application",
		"ad_id", ad.AdID,
		"ad_type", string(ad.Type),
		"is_active", ad.IsActive,
	)
	return ad, nil
}

// RecordView bumps the impression counter.
func (uc AdUseCase) RecordView(ctx context.Context, adID string) error {
	adID = strings.TrimSpace(adID)
	if adID == "" {
		return domainerrors.ErrInvalidAdInput
	}
	_, _, err := uc.Ads.IncrementViews(ctx, adID)
	return err
}

// RecordClick bumps the click counter. A click count running ahead of the
// view count means the caller skipped the impression call; the count is
// kept and the skew is logged as a data-quality signal.
func (uc AdUseCase) RecordClick(ctx context.Context, adID string) error {
	adID = strings.TrimSpace(adID)
	if adID == "" {
		return domainerrors.ErrInvalidAdInput
	}
	views, clicks, err := uc.Ads.IncrementClicks(ctx, adID)
	if err != nil {
		return err
	}
	if clicks > views {
		application.ResolveLogger(uc.Logger).Warn("ad clicks exceed views",
			"event", "ad_click_view_skew",
			"module", "audience-reach/ad-service",
			"layer", "application",
			"ad_id", adID,
			"views", views,
			"clicks", clicks,
		)
	}
	return nil
}
