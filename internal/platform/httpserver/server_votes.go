package httpserver

import (
	"errors"
	"net/http"
	"strings"

	voteerrors "kasaba/contexts/community-engagement/vote-ledger/domain/errors"
	voteports "kasaba/contexts/community-engagement/vote-ledger/ports"
	votehttp "kasaba/contexts/community-engagement/vote-ledger/transport/http"
)

func writeVoteError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, votehttp.ErrorResponse{Code: code, Message: message})
}

func writeVoteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, voteerrors.ErrPollNotFound),
		errors.Is(err, voteerrors.ErrEventNotFound),
		errors.Is(err, voteerrors.ErrOptionNotFound):
		writeVoteError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, voteerrors.ErrInvalidVoteInput):
		writeVoteError(w, http.StatusBadRequest, "invalid_vote_input", err.Error())
	case errors.Is(err, voteerrors.ErrAlreadyVoted):
		writeVoteError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, voteerrors.ErrPollClosed):
		writeVoteError(w, http.StatusGone, "poll_closed", err.Error())
	case errors.Is(err, voteerrors.ErrPreconditionFailed):
		writeVoteError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, voteerrors.ErrForbidden):
		writeVoteError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeVoteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireVoteActor(w http.ResponseWriter, r *http.Request) (voteports.Actor, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeVoteError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return voteports.Actor{}, false
	}
	return voteports.Actor{
		UserID: userID,
		Role:   strings.TrimSpace(r.Header.Get("X-User-Role")),
	}, true
}

// resolveVoteActor never rejects: list endpoints work for anonymous
// readers, the actor only personalizes my_choice and my_status fields.
func resolveVoteActor(r *http.Request) voteports.Actor {
	return voteports.Actor{
		UserID: strings.TrimSpace(r.Header.Get("X-User-Id")),
		Role:   strings.TrimSpace(r.Header.Get("X-User-Role")),
	}
}

func (s *Server) handleCreateAdminPoll(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireVoteActor(w, r)
	if !ok {
		return
	}

	var req votehttp.CreateAdminPollRequest
	if !s.decodeJSON(w, r, &req, writeVoteError) {
		return
	}
	resp, err := s.votes.Handler.CreateAdminPollHandler(r.Context(), actor, req)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListAdminPolls(w http.ResponseWriter, r *http.Request) {
	onlyOpen := r.URL.Query().Get("only_open") == "true"
	resp, err := s.votes.Handler.ListAdminPollsHandler(r.Context(), onlyOpen)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetAdminPoll(w http.ResponseWriter, r *http.Request) {
	resp, err := s.votes.Handler.GetAdminPollHandler(r.Context(), r.PathValue("poll_id"))
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseAdminPoll(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireVoteActor(w, r)
	if !ok {
		return
	}
	resp, err := s.votes.Handler.CloseAdminPollHandler(r.Context(), actor, r.PathValue("poll_id"))
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastAdminPollVote(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireVoteActor(w, r)
	if !ok {
		return
	}

	var req votehttp.CastAdminPollVoteRequest
	if !s.decodeJSON(w, r, &req, writeVoteError) {
		return
	}
	resp, err := s.votes.Handler.CastAdminPollVoteHandler(r.Context(), actor, r.PathValue("poll_id"), req)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePublicPoll(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireVoteActor(w, r)
	if !ok {
		return
	}

	var req votehttp.CreatePublicPollRequest
	if !s.decodeJSON(w, r, &req, writeVoteError) {
		return
	}
	resp, err := s.votes.Handler.CreatePublicPollHandler(r.Context(), actor, req)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPublicPolls(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePage(r)
	resp, err := s.votes.Handler.ListPublicPollsHandler(r.Context(), resolveVoteActor(r), limit, offset)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPublicPoll(w http.ResponseWriter, r *http.Request) {
	resp, err := s.votes.Handler.GetPublicPollHandler(r.Context(), resolveVoteActor(r), r.PathValue("poll_id"))
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMyVote(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireVoteActor(w, r)
	if !ok {
		return
	}
	resp, err := s.votes.Handler.MyVoteHandler(r.Context(), actor, r.PathValue("poll_id"))
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVotePublicPoll(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireVoteActor(w, r)
	if !ok {
		return
	}

	var req votehttp.VotePublicPollRequest
	if !s.decodeJSON(w, r, &req, writeVoteError) {
		return
	}
	resp, err := s.votes.Handler.VotePublicPollHandler(r.Context(), actor, r.PathValue("poll_id"), req)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireVoteActor(w, r)
	if !ok {
		return
	}

	var req votehttp.CreateEventRequest
	if !s.decodeJSON(w, r, &req, writeVoteError) {
		return
	}
	resp, err := s.votes.Handler.CreateEventHandler(r.Context(), actor, req)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePage(r)
	resp, err := s.votes.Handler.ListEventsHandler(r.Context(), resolveVoteActor(r), limit, offset)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	resp, err := s.votes.Handler.GetEventHandler(r.Context(), resolveVoteActor(r), r.PathValue("event_id"))
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRSVPEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireVoteActor(w, r)
	if !ok {
		return
	}

	var req votehttp.RSVPEventRequest
	if !s.decodeJSON(w, r, &req, writeVoteError) {
		return
	}
	resp, err := s.votes.Handler.RSVPEventHandler(r.Context(), actor, r.PathValue("event_id"), req)
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
