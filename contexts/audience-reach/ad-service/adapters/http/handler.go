package httpadapter

import (
	"context"
	"log/slog"

	"kasaba/contexts/audience-reach/ad-service/application/commands"
	"kasaba/contexts/audience-reach/ad-service/application/queries"
	"kasaba/contexts/audience-reach/ad-service/domain/entities"
	"kasaba/contexts/audience-reach/ad-service/ports"
	httptransport "kasaba/contexts/audience-reach/ad-service/transport/http"
)

type Handler struct {
	Ads     commands.AdUseCase
	Catalog queries.AdsUseCase
	Logger  *slog.Logger
}

func (h Handler) CreateAdHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.CreateAdRequest,
) (httptransport.AdResponse, error) {
	ad, err := h.Ads.CreateAd(ctx, commands.CreateAdCommand{
		Actor:        actor,
		Title:        req.Title,
		Advertiser:   req.Advertiser,
		ImageURL:     req.ImageURL,
		TargetURL:    req.TargetURL,
		Type:         entities.AdType(req.Type),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		DurationDays: req.DurationDays,
		Cost:         req.Cost,
	})
	if err != nil {
		return httptransport.AdResponse{}, err
	}
	return toAdResponse(ad), nil
}

func (h Handler) RecordViewHandler(ctx context.Context, adID string) error {
	return h.Ads.RecordView(ctx, adID)
}

func (h Handler) RecordClickHandler(ctx context.Context, adID string) error {
	return h.Ads.RecordClick(ctx, adID)
}

func (h Handler) GetAdHandler(ctx context.Context, adID string) (httptransport.AdResponse, error) {
	ad, err := h.Catalog.GetAd(ctx, adID)
	if err != nil {
		return httptransport.AdResponse{}, err
	}
	return toAdResponse(ad), nil
}

func (h Handler) ActivePopupHandler(ctx context.Context) (httptransport.AdResponse, error) {
	ad, err := h.Catalog.ActivePopup(ctx)
	if err != nil {
		return httptransport.AdResponse{}, err
	}
	return toAdResponse(ad), nil
}

func (h Handler) ActiveAdsHandler(ctx context.Context) (httptransport.AdListResponse, error) {
	ads, err := h.Catalog.ActiveAds(ctx)
	if err != nil {
		return httptransport.AdListResponse{}, err
	}
	resp := httptransport.AdListResponse{
		Items: make([]httptransport.AdResponse, 0, len(ads)),
	}
	for _, ad := range ads {
		resp.Items = append(resp.Items, toAdResponse(ad))
	}
	return resp, nil
}

func toAdResponse(ad entities.Ad) httptransport.AdResponse {
	return httptransport.AdResponse{
		AdID:         ad.AdID,
		Title:        ad.Title,
		Advertiser:   ad.Advertiser,
		ImageURL:     ad.ImageURL,
		TargetURL:    ad.TargetURL,
		Type:         string(ad.Type),
		StartDate:    ad.StartDate,
		EndDate:      ad.EndDate,
		IsActive:     ad.IsActive,
		Views:        ad.Views,
		Clicks:       ad.Clicks,
		DurationDays: ad.DurationDays,
		Cost:         ad.Cost,
		CreatedAt:    ad.CreatedAt,
	}
}
