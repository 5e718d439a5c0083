package httpserver

import (
	"errors"
	"net/http"
	"strings"

	classifiederrors "kasaba/contexts/marketplace-trade/classified-service/domain/errors"
	classifiedports "kasaba/contexts/marketplace-trade/classified-service/ports"
	classifiedhttp "kasaba/contexts/marketplace-trade/classified-service/transport/http"
)

func writeClassifiedError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, classifiedhttp.ErrorResponse{Code: code, Message: message})
}

func writeClassifiedDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, classifiederrors.ErrClassifiedNotFound):
		writeClassifiedError(w, http.StatusNotFound, "classified_not_found", err.Error())
	case errors.Is(err, classifiederrors.ErrInvalidListingInput):
		writeClassifiedError(w, http.StatusBadRequest, "invalid_listing_input", err.Error())
	case errors.Is(err, classifiederrors.ErrInvalidTransition),
		errors.Is(err, classifiederrors.ErrPreconditionFailed):
		writeClassifiedError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, classifiederrors.ErrForbidden):
		writeClassifiedError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeClassifiedError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireClassifiedActor(w http.ResponseWriter, r *http.Request) (classifiedports.Actor, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeClassifiedError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return classifiedports.Actor{}, false
	}
	return classifiedports.Actor{
		UserID: userID,
		Role:   strings.TrimSpace(r.Header.Get("X-User-Role")),
	}, true
}

func (s *Server) handleSubmitClassified(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireClassifiedActor(w, r)
	if !ok {
		return
	}

	var req classifiedhttp.SubmitClassifiedRequest
	if !s.decodeJSON(w, r, &req, writeClassifiedError) {
		return
	}
	resp, err := s.classifieds.Handler.SubmitClassifiedHandler(r.Context(), actor, req)
	if err != nil {
		writeClassifiedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handlePublicFeed(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePage(r)
	resp, err := s.classifieds.Handler.PublicFeedHandler(r.Context(), limit, offset)
	if err != nil {
		writeClassifiedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetClassified(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireClassifiedActor(w, r)
	if !ok {
		return
	}
	resp, err := s.classifieds.Handler.GetClassifiedHandler(r.Context(), actor, r.PathValue("classified_id"))
	if err != nil {
		writeClassifiedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDecideClassified(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireClassifiedActor(w, r)
	if !ok {
		return
	}

	var req classifiedhttp.DecideClassifiedRequest
	if !s.decodeJSON(w, r, &req, writeClassifiedError) {
		return
	}
	resp, err := s.classifieds.Handler.DecideClassifiedHandler(r.Context(), actor, r.PathValue("classified_id"), req)
	if err != nil {
		writeClassifiedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRequestFeatured(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireClassifiedActor(w, r)
	if !ok {
		return
	}

	var req classifiedhttp.RequestFeaturedRequest
	if !s.decodeJSON(w, r, &req, writeClassifiedError) {
		return
	}
	resp, err := s.classifieds.Handler.RequestFeaturedHandler(r.Context(), actor, r.PathValue("classified_id"), req)
	if err != nil {
		writeClassifiedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActivateFeatured(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireClassifiedActor(w, r)
	if !ok {
		return
	}
	resp, err := s.classifieds.Handler.ActivateFeaturedHandler(r.Context(), actor, r.PathValue("classified_id"))
	if err != nil {
		writeClassifiedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleModerationQueue(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireClassifiedActor(w, r)
	if !ok {
		return
	}
	limit, offset := parsePage(r)
	resp, err := s.classifieds.Handler.ModerationQueueHandler(r.Context(), actor, limit, offset)
	if err != nil {
		writeClassifiedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
