package httpadapter

import (
	"context"
	"log/slog"

	"kasaba/contexts/marketplace-trade/request-desk/application"
	"kasaba/contexts/marketplace-trade/request-desk/domain/entities"
	"kasaba/contexts/marketplace-trade/request-desk/ports"
	httptransport "kasaba/contexts/marketplace-trade/request-desk/transport/http"
)

type Handler struct {
	Desk   application.Service
	Logger *slog.Logger
}

func (h Handler) SubmitListingRequestHandler(
	ctx context.Context,
	req httptransport.SubmitListingRequestRequest,
) (httptransport.ListingRequestResponse, error) {
	request, err := h.Desk.SubmitListingRequest(ctx, application.SubmitListingRequestCommand{
		BusinessName: req.BusinessName,
		Category:     req.Category,
		Phone:        req.Phone,
		Description:  req.Description,
	})
	if err != nil {
		return httptransport.ListingRequestResponse{}, err
	}
	return toListingRequestResponse(request), nil
}

func (h Handler) SubmitPollRequestHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.SubmitPollRequestRequest,
) (httptransport.PollRequestResponse, error) {
	request, err := h.Desk.SubmitPollRequest(ctx, actor, req.UserName, req.Suggestion)
	if err != nil {
		return httptransport.PollRequestResponse{}, err
	}
	return toPollRequestResponse(request), nil
}

func (h Handler) ReviewListingRequestHandler(ctx context.Context, actor ports.Actor, requestID string) error {
	return h.Desk.ReviewListingRequest(ctx, actor, requestID)
}

func (h Handler) ReviewPollRequestHandler(ctx context.Context, actor ports.Actor, requestID string) error {
	return h.Desk.ReviewPollRequest(ctx, actor, requestID)
}

func (h Handler) PendingListingRequestsHandler(
	ctx context.Context,
	actor ports.Actor,
) (httptransport.ListingRequestListResponse, error) {
	requests, err := h.Desk.PendingListingRequests(ctx, actor)
	if err != nil {
		return httptransport.ListingRequestListResponse{}, err
	}
	resp := httptransport.ListingRequestListResponse{
		Items: make([]httptransport.ListingRequestResponse, 0, len(requests)),
	}
	for _, request := range requests {
		resp.Items = append(resp.Items, toListingRequestResponse(request))
	}
	return resp, nil
}

func (h Handler) PendingPollRequestsHandler(
	ctx context.Context,
	actor ports.Actor,
) (httptransport.PollRequestListResponse, error) {
	requests, err := h.Desk.PendingPollRequests(ctx, actor)
	if err != nil {
		return httptransport.PollRequestListResponse{}, err
	}
	resp := httptransport.PollRequestListResponse{
		Items: make([]httptransport.PollRequestResponse, 0, len(requests)),
	}
	for _, request := range requests {
		resp.Items = append(resp.Items, toPollRequestResponse(request))
	}
	return resp, nil
}

func toListingRequestResponse(request entities.ListingRequest) httptransport.ListingRequestResponse {
	return httptransport.ListingRequestResponse{
		RequestID:    request.RequestID,
		BusinessName: request.BusinessName,
		Category:     request.Category,
		Phone:        request.Phone,
		Description:  request.Description,
		Status:       string(request.Status),
		CreatedAt:    request.CreatedAt,
	}
}

func toPollRequestResponse(request entities.PollRequest) httptransport.PollRequestResponse {
	return httptransport.PollRequestResponse{
		RequestID:  request.RequestID,
		UserID:     request.UserID,
		UserName:   request.UserName,
		Suggestion: request.Suggestion,
		Status:     string(request.Status),
		CreatedAt:  request.CreatedAt,
	}
}
