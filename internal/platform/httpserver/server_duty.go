package httpserver

import (
	"errors"
	"net/http"
	"strings"

	dutyerrors "kasaba/contexts/town-guide/duty-rotation/domain/errors"
	dutyports "kasaba/contexts/town-guide/duty-rotation/ports"
	dutyhttp "kasaba/contexts/town-guide/duty-rotation/transport/http"
)

func writeDutyError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, dutyhttp.ErrorResponse{Code: code, Message: message})
}

func writeDutyDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dutyerrors.ErrPharmacyNotFound):
		writeDutyError(w, http.StatusNotFound, "pharmacy_not_found", err.Error())
	case errors.Is(err, dutyerrors.ErrNoDutyAssigned):
		writeDutyError(w, http.StatusNotFound, "no_duty_assigned", err.Error())
	case errors.Is(err, dutyerrors.ErrInvalidDutyInput):
		writeDutyError(w, http.StatusBadRequest, "invalid_duty_input", err.Error())
	case errors.Is(err, dutyerrors.ErrForbidden):
		writeDutyError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeDutyError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireDutyActor(w http.ResponseWriter, r *http.Request) (dutyports.Actor, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeDutyError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return dutyports.Actor{}, false
	}
	return dutyports.Actor{
		UserID: userID,
		Role:   strings.TrimSpace(r.Header.Get("X-User-Role")),
	}, true
}

func (s *Server) handleRegisterPharmacy(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireDutyActor(w, r)
	if !ok {
		return
	}

	var req dutyhttp.RegisterPharmacyRequest
	if !s.decodeJSON(w, r, &req, writeDutyError) {
		return
	}
	resp, err := s.duty.Handler.RegisterPharmacyHandler(r.Context(), actor, req)
	if err != nil {
		writeDutyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPharmacies(w http.ResponseWriter, r *http.Request) {
	resp, err := s.duty.Handler.ListPharmaciesHandler(r.Context())
	if err != nil {
		writeDutyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAssignDuty(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireDutyActor(w, r)
	if !ok {
		return
	}

	var req dutyhttp.AssignDutyRequest
	if !s.decodeJSON(w, r, &req, writeDutyError) {
		return
	}
	resp, err := s.duty.Handler.AssignDutyHandler(r.Context(), actor, req)
	if err != nil {
		writeDutyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDutyPharmacy(w http.ResponseWriter, r *http.Request) {
	resp, err := s.duty.Handler.DutyPharmacyHandler(r.Context(), r.PathValue("date"))
	if err != nil {
		writeDutyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
