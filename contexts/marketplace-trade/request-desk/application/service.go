package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"kasaba/contexts/marketplace-trade/request-desk/domain/entities"
	domainerrors "kasaba/contexts/marketplace-trade/request-desk/domain/errors"
	"kasaba/contexts/marketplace-trade/request-desk/ports"
)

// Service is the request-desk application layer.
type Service struct {
	Requests ports.RequestRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

type SubmitListingRequestCommand struct {
	BusinessName string
	Category     string
	Phone        string
	Description  string
}

func (s Service) SubmitListingRequest(ctx context.Context, cmd SubmitListingRequestCommand) (entities.ListingRequest, error) {
	cmd.BusinessName = strings.TrimSpace(cmd.BusinessName)
	if cmd.BusinessName == "" {
		return entities.ListingRequest{}, domainerrors.ErrInvalidRequestInput
	}

	requestID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.ListingRequest{}, err
	}
	request := entities.ListingRequest{
		RequestID:    requestID,
		BusinessName: cmd.BusinessName,
		Category:     strings.TrimSpace(cmd.Category),
		Phone:        strings.TrimSpace(cmd.Phone),
		Description:  strings.TrimSpace(cmd.Description),
		Status:       entities.RequestPending,
		CreatedAt:    s.now(),
	}
	if err := s.Requests.CreateListingRequest(ctx, request); err != nil {
		return entities.ListingRequest{}, err
	}

	s.logger().Info("listing request submitted",
		"event", "request_listing_submitted",
		"module", "marketplace-trade/request-desk",
		"layer", "application",
		"request_id", request.RequestID,
	)
	return request, nil
}

func (s Service) SubmitPollRequest(ctx context.Context, actor ports.Actor, userName string, suggestion string) (entities.PollRequest, error) {
	userID := strings.TrimSpace(actor.UserID)
	suggestion = strings.TrimSpace(suggestion)
	if userID == "" || suggestion == "" {
		return entities.PollRequest{}, domainerrors.ErrInvalidRequestInput
	}

	requestID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.PollRequest{}, err
	}
	request := entities.PollRequest{
		RequestID:  requestID,
		UserID:     userID,
		UserName:   strings.TrimSpace(userName),
		Suggestion: suggestion,
		Status:     entities.RequestPending,
		CreatedAt:  s.now(),
	}
	if err := s.Requests.CreatePollRequest(ctx, request); err != nil {
		return entities.PollRequest{}, err
	}

	s.logger().Info("poll request submitted",
		"event", "request_poll_submitted",
		"module", "marketplace-trade/request-desk",
		"layer", "application",
		"request_id", request.RequestID,
		"user_id", userID,
	)
	return request, nil
}

// ReviewListingRequest moves pending to reviewed once; a repeated review
// loses the conditional write and surfaces as an invalid transition.
func (s Service) ReviewListingRequest(ctx context.Context, actor ports.Actor, requestID string) error {
	if !actor.IsAdmin() {
		return domainerrors.ErrForbidden
	}
	requestID = strings.TrimSpace(requestID)

	err := s.Requests.ReviewListingRequest(ctx, requestID, strings.TrimSpace(actor.UserID), s.now())
	if errors.Is(err, domainerrors.ErrPreconditionFailed) {
		return domainerrors.ErrInvalidTransition
	}
	if err != nil {
		return err
	}

	s.logger().Info("listing request reviewed",
		"event", "request_listing_reviewed",
		"module", "marketplace-trade/request-desk",
		"layer", "application",
		"request_id", requestID,
		"admin_id", strings.TrimSpace(actor.UserID),
	)
	return nil
}

func (s Service) ReviewPollRequest(ctx context.Context, actor ports.Actor, requestID string) error {
	if !actor.IsAdmin() {
		return domainerrors.ErrForbidden
	}
	requestID = strings.TrimSpace(requestID)

	err := s.Requests.ReviewPollRequest(ctx, requestID, strings.TrimSpace(actor.UserID), s.now())
	if errors.Is(err, domainerrors.ErrPreconditionFailed) {
		return domainerrors.ErrInvalidTransition
	}
	if err != nil {
		return err
	}

	s.logger().Info("poll request reviewed",
		"event", "request_poll_reviewed",
		"module", "marketplace-trade/request-desk",
		"layer", "application",
		"request_id", requestID,
		"admin_id", strings.TrimSpace(actor.UserID),
	)
	return nil
}

func (s Service) PendingListingRequests(ctx context.Context, actor ports.Actor) ([]entities.ListingRequest, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}
	return s.Requests.ListPendingListingRequests(ctx)
}

func (s Service) PendingPollRequests(ctx context.Context, actor ports.Actor) ([]entities.PollRequest, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}
	return s.Requests.ListPendingPollRequests(ctx)
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
