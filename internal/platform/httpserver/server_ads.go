package httpserver

import (
	"errors"
	"net/http"
	"strings"

	aderrors "kasaba/contexts/audience-reach/ad-service/domain/errors"
	adports "kasaba/contexts/audience-reach/ad-service/ports"
	adhttp "kasaba/contexts/audience-reach/ad-service/transport/http"
)

func writeAdError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, adhttp.ErrorResponse{Code: code, Message: message})
}

func writeAdDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, aderrors.ErrAdNotFound):
		writeAdError(w, http.StatusNotFound, "ad_not_found", err.Error())
	case errors.Is(err, aderrors.ErrNoActivePopup):
		writeAdError(w, http.StatusNotFound, "no_active_popup", err.Error())
	case errors.Is(err, aderrors.ErrInvalidAdInput):
		writeAdError(w, http.StatusBadRequest, "invalid_ad_input", err.Error())
	case errors.Is(err, aderrors.ErrForbidden):
		writeAdError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeAdError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireAdActor(w http.ResponseWriter, r *http.Request) (adports.Actor, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeAdError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return adports.Actor{}, false
	}
	return adports.Actor{
		UserID: userID,
		Role:   strings.TrimSpace(r.Header.Get("X-User-Role")),
	}, true
}

func (s *Server) handleCreateAd(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireAdActor(w, r)
	if !ok {
		return
	}

	var req adhttp.CreateAdRequest
	if !s.decodeJSON(w, r, &req, writeAdError) {
		return
	}
	resp, err := s.ads.Handler.CreateAdHandler(r.Context(), actor, req)
	if err != nil {
		writeAdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleActiveAds(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ads.Handler.ActiveAdsHandler(r.Context())
	if err != nil {
		writeAdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActivePopup(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ads.Handler.ActivePopupHandler(r.Context())
	if err != nil {
		writeAdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetAd(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ads.Handler.GetAdHandler(r.Context(), r.PathValue("ad_id"))
	if err != nil {
		writeAdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecordAdView(w http.ResponseWriter, r *http.Request) {
	if err := s.ads.Handler.RecordViewHandler(r.Context(), r.PathValue("ad_id")); err != nil {
		writeAdDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecordAdClick(w http.ResponseWriter, r *http.Request) {
	if err := s.ads.Handler.RecordClickHandler(r.Context(), r.PathValue("ad_id")); err != nil {
		writeAdDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
