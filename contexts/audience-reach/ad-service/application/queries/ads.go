package queries

import (
	"context"
	"strings"
	"time"

	"kasaba/contexts/audience-reach/ad-service/domain/entities"
	"kasaba/contexts/audience-reach/ad-service/ports"
)

type AdsUseCase struct {
	Ads   ports.AdRepository
	Clock ports.Clock
}

func (uc AdsUseCase) GetAd(ctx context.Context, adID string) (entities.Ad, error) {
	return uc.Ads.GetAd(ctx, strings.TrimSpace(adID))
}

// ActivePopup returns the popup to display right now. The selection is
// stable within an eligibility window so re-renders keep showing the same
// ad.
func (uc AdsUseCase) ActivePopup(ctx context.Context) (entities.Ad, error) {
	return uc.Ads.SelectActivePopup(ctx, uc.now())
}

// ActiveAds returns the banner feed of currently eligible ads.
func (uc AdsUseCase) ActiveAds(ctx context.Context) ([]entities.Ad, error) {
	return uc.Ads.ListActive(ctx, uc.now())
}

func (uc AdsUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
