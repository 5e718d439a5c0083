package httpserver

import (
	"errors"
	"net/http"
	"strings"

	requesterrors "kasaba/contexts/marketplace-trade/request-desk/domain/errors"
	requestports "kasaba/contexts/marketplace-trade/request-desk/ports"
	requesthttp "kasaba/contexts/marketplace-trade/request-desk/transport/http"
)

func writeRequestError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, requesthttp.ErrorResponse{Code: code, Message: message})
}

func writeRequestDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, requesterrors.ErrRequestNotFound):
		writeRequestError(w, http.StatusNotFound, "request_not_found", err.Error())
	case errors.Is(err, requesterrors.ErrInvalidRequestInput):
		writeRequestError(w, http.StatusBadRequest, "invalid_request_input", err.Error())
	case errors.Is(err, requesterrors.ErrInvalidTransition),
		errors.Is(err, requesterrors.ErrPreconditionFailed):
		writeRequestError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, requesterrors.ErrForbidden):
		writeRequestError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeRequestError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireRequestActor(w http.ResponseWriter, r *http.Request) (requestports.Actor, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeRequestError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return requestports.Actor{}, false
	}
	return requestports.Actor{
		UserID: userID,
		Role:   strings.TrimSpace(r.Header.Get("X-User-Role")),
	}, true
}

// Listing requests come from the public site, no account needed.
func (s *Server) handleSubmitListingRequest(w http.ResponseWriter, r *http.Request) {
	var req requesthttp.SubmitListingRequestRequest
	if !s.decodeJSON(w, r, &req, writeRequestError) {
		return
	}
	resp, err := s.requests.Handler.SubmitListingRequestHandler(r.Context(), req)
	if err != nil {
		writeRequestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleSubmitPollRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRequestActor(w, r)
	if !ok {
		return
	}

	var req requesthttp.SubmitPollRequestRequest
	if !s.decodeJSON(w, r, &req, writeRequestError) {
		return
	}
	resp, err := s.requests.Handler.SubmitPollRequestHandler(r.Context(), actor, req)
	if err != nil {
		writeRequestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handlePendingListingRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRequestActor(w, r)
	if !ok {
		return
	}
	resp, err := s.requests.Handler.PendingListingRequestsHandler(r.Context(), actor)
	if err != nil {
		writeRequestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePendingPollRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRequestActor(w, r)
	if !ok {
		return
	}
	resp, err := s.requests.Handler.PendingPollRequestsHandler(r.Context(), actor)
	if err != nil {
		writeRequestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReviewListingRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRequestActor(w, r)
	if !ok {
		return
	}
	if err := s.requests.Handler.ReviewListingRequestHandler(r.Context(), actor, r.PathValue("request_id")); err != nil {
		writeRequestDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReviewPollRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRequestActor(w, r)
	if !ok {
		return
	}
	if err := s.requests.Handler.ReviewPollRequestHandler(r.Context(), actor, r.PathValue("request_id")); err != nil {
		writeRequestDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
