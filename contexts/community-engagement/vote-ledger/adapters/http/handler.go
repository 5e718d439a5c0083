package httpadapter

import (
	"context"
	"log/slog"

	"kasaba/contexts/community-engagement/vote-ledger/application/commands"
	"kasaba/contexts/community-engagement/vote-ledger/application/queries"
	"kasaba/contexts/community-engagement/vote-ledger/domain/entities"
	"kasaba/contexts/community-engagement/vote-ledger/ports"
	httptransport "kasaba/contexts/community-engagement/vote-ledger/transport/http"
)

type Handler struct {
	Votes  commands.VoteUseCase
	Polls  queries.PollsUseCase
	Logger *slog.Logger
}

func (h Handler) CreateAdminPollHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.CreateAdminPollRequest,
) (httptransport.AdminPollResponse, error) {
	poll, err := h.Votes.CreateAdminPoll(ctx, actor, req.Question, req.Options, req.EndDate)
	if err != nil {
		return httptransport.AdminPollResponse{}, err
	}
	return toAdminPollResponse(poll), nil
}

func (h Handler) CloseAdminPollHandler(
	ctx context.Context,
	actor ports.Actor,
	pollID string,
) (httptransport.AdminPollResponse, error) {
	poll, err := h.Votes.CloseAdminPoll(ctx, actor, pollID)
	if err != nil {
		return httptransport.AdminPollResponse{}, err
	}
	return toAdminPollResponse(poll), nil
}

func (h Handler) CastAdminPollVoteHandler(
	ctx context.Context,
	actor ports.Actor,
	pollID string,
	req httptransport.CastAdminPollVoteRequest,
) (httptransport.AdminPollResponse, error) {
	poll, err := h.Votes.CastAdminPollVote(ctx, actor, pollID, req.OptionID)
	if err != nil {
		return httptransport.AdminPollResponse{}, err
	}
	return toAdminPollResponse(poll), nil
}

func (h Handler) GetAdminPollHandler(ctx context.Context, pollID string) (httptransport.AdminPollResponse, error) {
	poll, err := h.Polls.GetAdminPoll(ctx, pollID)
	if err != nil {
		return httptransport.AdminPollResponse{}, err
	}
	return toAdminPollResponse(poll), nil
}

func (h Handler) ListAdminPollsHandler(ctx context.Context, onlyOpen bool) (httptransport.AdminPollListResponse, error) {
	polls, err := h.Polls.ListAdminPolls(ctx, onlyOpen)
	if err != nil {
		return httptransport.AdminPollListResponse{}, err
	}
	resp := httptransport.AdminPollListResponse{
		Items: make([]httptransport.AdminPollResponse, 0, len(polls)),
	}
	for _, poll := range polls {
		resp.Items = append(resp.Items, toAdminPollResponse(poll))
	}
	return resp, nil
}

func (h Handler) CreatePublicPollHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.CreatePublicPollRequest,
) (httptransport.PublicPollResponse, error) {
	poll, err := h.Votes.CreatePublicPoll(ctx, actor, req.UserName, req.Text)
	if err != nil {
		return httptransport.PublicPollResponse{}, err
	}
	return toPublicPollResponse(poll, actor), nil
}

func (h Handler) VotePublicPollHandler(
	ctx context.Context,
	actor ports.Actor,
	pollID string,
	req httptransport.VotePublicPollRequest,
) (httptransport.PublicPollResponse, error) {
	poll, err := h.Votes.VotePublicPoll(ctx, actor, pollID, entities.PublicChoice(req.Choice))
	if err != nil {
		return httptransport.PublicPollResponse{}, err
	}
	return toPublicPollResponse(poll, actor), nil
}

func (h Handler) ListPublicPollsHandler(
	ctx context.Context,
	actor ports.Actor,
	limit int,
	offset int,
) (httptransport.PublicPollListResponse, error) {
	polls, err := h.Polls.ListPublicPolls(ctx, limit, offset)
	if err != nil {
		return httptransport.PublicPollListResponse{}, err
	}
	resp := httptransport.PublicPollListResponse{
		Items: make([]httptransport.PublicPollResponse, 0, len(polls)),
	}
	for _, poll := range polls {
		resp.Items = append(resp.Items, toPublicPollResponse(poll, actor))
	}
	return resp, nil
}

func (h Handler) GetPublicPollHandler(
	ctx context.Context,
	actor ports.Actor,
	pollID string,
) (httptransport.PublicPollResponse, error) {
	poll, err := h.Polls.GetPublicPoll(ctx, pollID)
	if err != nil {
		return httptransport.PublicPollResponse{}, err
	}
	return toPublicPollResponse(poll, actor), nil
}

func (h Handler) MyVoteHandler(
	ctx context.Context,
	actor ports.Actor,
	pollID string,
) (httptransport.MyVoteResponse, error) {
	choice, err := h.Polls.MyVote(ctx, actor, pollID)
	if err != nil {
		return httptransport.MyVoteResponse{}, err
	}
	return httptransport.MyVoteResponse{Choice: string(choice)}, nil
}

func (h Handler) CreateEventHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.CreateEventRequest,
) (httptransport.PublicEventResponse, error) {
	event, err := h.Votes.CreatePublicEvent(ctx, commands.CreateEventCommand{
		Actor:       actor,
		UserName:    req.UserName,
		Type:        entities.EventType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		EventTime:   req.EventTime,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return httptransport.PublicEventResponse{}, err
	}
	return toEventResponse(event, actor), nil
}

func (h Handler) RSVPEventHandler(
	ctx context.Context,
	actor ports.Actor,
	eventID string,
	req httptransport.RSVPEventRequest,
) (httptransport.PublicEventResponse, error) {
	event, err := h.Votes.RSVPEvent(ctx, actor, eventID, entities.RSVPStatus(req.Status))
	if err != nil {
		return httptransport.PublicEventResponse{}, err
	}
	return toEventResponse(event, actor), nil
}

func (h Handler) GetEventHandler(
	ctx context.Context,
	actor ports.Actor,
	eventID string,
) (httptransport.PublicEventResponse, error) {
	event, err := h.Polls.GetPublicEvent(ctx, eventID)
	if err != nil {
		return httptransport.PublicEventResponse{}, err
	}
	return toEventResponse(event, actor), nil
}

func (h Handler) ListEventsHandler(
	ctx context.Context,
	actor ports.Actor,
	limit int,
	offset int,
) (httptransport.PublicEventListResponse, error) {
	events, err := h.Polls.ListPublicEvents(ctx, limit, offset)
	if err != nil {
		return httptransport.PublicEventListResponse{}, err
	}
	resp := httptransport.PublicEventListResponse{
		Items: make([]httptransport.PublicEventResponse, 0, len(events)),
	}
	for _, event := range events {
		resp.Items = append(resp.Items, toEventResponse(event, actor))
	}
	return resp, nil
}

func toAdminPollResponse(poll entities.AdminPoll) httptransport.AdminPollResponse {
	options := make([]httptransport.PollOptionResponse, 0, len(poll.Options))
	for _, option := range poll.Options {
		options = append(options, httptransport.PollOptionResponse{
			OptionID:  option.OptionID,
			Text:      option.Text,
			VoteCount: option.VoteCount,
		})
	}
	return httptransport.AdminPollResponse{
		PollID:     poll.PollID,
		Question:   poll.Question,
		Options:    options,
		EndDate:    poll.EndDate,
		IsActive:   poll.IsActive,
		TotalVotes: poll.TotalVotes,
		CreatedAt:  poll.CreatedAt,
	}
}

func toPublicPollResponse(poll entities.PublicPoll, actor ports.Actor) httptransport.PublicPollResponse {
	return httptransport.PublicPollResponse{
		PollID:        poll.PollID,
		UserID:        poll.UserID,
		UserName:      poll.UserName,
		Text:          poll.Text,
		AgreeCount:    poll.AgreeCount,
		DisagreeCount: poll.DisagreeCount,
		MyChoice:      string(poll.VotedUsers[actor.UserID]),
		CreatedAt:     poll.CreatedAt,
	}
}

func toEventResponse(event entities.PublicEvent, actor ports.Actor) httptransport.PublicEventResponse {
	return httptransport.PublicEventResponse{
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
		MyStatus:          string(event.RSVPStatus[actor.UserID]),
		CreatedAt:         event.CreatedAt,
	}
}
