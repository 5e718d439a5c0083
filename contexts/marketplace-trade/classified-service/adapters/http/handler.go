package httpadapter

import (
	"context"
	"log/slog"

	"kasaba/contexts/marketplace-trade/classified-service/application/commands"
	"kasaba/contexts/marketplace-trade/classified-service/application/queries"
	"kasaba/contexts/marketplace-trade/classified-service/domain/entities"
	"kasaba/contexts/marketplace-trade/classified-service/ports"
	httptransport "kasaba/contexts/marketplace-trade/classified-service/transport/http"
)

type Handler struct {
	Classifieds commands.ClassifiedUseCase
	Listings    queries.ListingsUseCase
	Logger      *slog.Logger
}

func (h Handler) SubmitClassifiedHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.SubmitClassifiedRequest,
) (httptransport.ClassifiedResponse, error) {
	classified, err := h.Classifieds.Submit(ctx, commands.SubmitClassifiedCommand{
		Actor:        actor,
		Title:        req.Title,
		Category:     entities.Category(req.Category),
		SubCategory:  req.SubCategory,
		Price:        req.Price,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Location:     req.Location,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		return httptransport.ClassifiedResponse{}, err
	}
	return toResponse(classified), nil
}

func (h Handler) DecideClassifiedHandler(
	ctx context.Context,
	actor ports.Actor,
	classifiedID string,
	req httptransport.DecideClassifiedRequest,
) (httptransport.ClassifiedResponse, error) {
	classified, err := h.Classifieds.Decide(ctx, actor, classifiedID, req.Outcome)
	if err != nil {
		return httptransport.ClassifiedResponse{}, err
	}
	return toResponse(classified), nil
}

func (h Handler) RequestFeaturedHandler(
	ctx context.Context,
	actor ports.Actor,
	classifiedID string,
	req httptransport.RequestFeaturedRequest,
) (httptransport.ClassifiedResponse, error) {
	classified, err := h.Classifieds.RequestFeatured(ctx, actor, classifiedID, req.DurationDays)
	if err != nil {
		return httptransport.ClassifiedResponse{}, err
	}
	return toResponse(classified), nil
}

func (h Handler) ActivateFeaturedHandler(
	ctx context.Context,
	actor ports.Actor,
	classifiedID string,
) (httptransport.ClassifiedResponse, error) {
	classified, err := h.Classifieds.ActivateFeatured(ctx, actor, classifiedID)
	if err != nil {
		return httptransport.ClassifiedResponse{}, err
	}
	return toResponse(classified), nil
}

func (h Handler) GetClassifiedHandler(
	ctx context.Context,
	actor ports.Actor,
	classifiedID string,
) (httptransport.ClassifiedResponse, error) {
	classified, err := h.Listings.GetClassified(ctx, actor, classifiedID)
	if err != nil {
		return httptransport.ClassifiedResponse{}, err
	}
	return toResponse(classified), nil
}

func (h Handler) PublicFeedHandler(
	ctx context.Context,
	limit int,
	offset int,
) (httptransport.ClassifiedListResponse, error) {
	items, err := h.Listings.PublicFeed(ctx, limit, offset)
	if err != nil {
		return httptransport.ClassifiedListResponse{}, err
	}
	return toListResponse(items), nil
}

func (h Handler) ModerationQueueHandler(
	ctx context.Context,
	actor ports.Actor,
	limit int,
	offset int,
) (httptransport.ClassifiedListResponse, error) {
	items, err := h.Listings.ModerationQueue(ctx, actor, limit, offset)
	if err != nil {
		return httptransport.ClassifiedListResponse{}, err
	}
	return toListResponse(items), nil
}

func toResponse(classified entities.Classified) httptransport.ClassifiedResponse {
	return httptransport.ClassifiedResponse{
		ClassifiedID:         classified.ClassifiedID,
		UserID:               classified.UserID,
		Title:                classified.Title,
		Category:             string(classified.Category),
		SubCategory:          classified.SubCategory,
		Price:                classified.Price,
		Description:          classified.Description,
		ImageURL:             classified.ImageURL,
		Location:             classified.Location,
		ContactName:          classified.ContactName,
		ContactPhone:         classified.ContactPhone,
		Status:               string(classified.Status),
		FeaturedRequested:    classified.FeaturedRequested,
		FeaturedStatus:       string(classified.FeaturedStatus),
		FeaturedUntil:        classified.FeaturedUntil,
		FeaturedDurationDays: classified.FeaturedDurationDays,
		CreatedAt:            classified.CreatedAt,
	}
}

func toListResponse(items []entities.Classified) httptransport.ClassifiedListResponse {
	resp := httptransport.ClassifiedListResponse{
		Items: make([]httptransport.ClassifiedResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toResponse(item))
	}
	return resp
}
