package httpserver

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	adservice "kasaba/contexts/audience-reach/ad-service"
	notificationservice "kasaba/contexts/audience-reach/notification-service"
	voteledger "kasaba/contexts/community-engagement/vote-ledger"
	classifiedservice "kasaba/contexts/marketplace-trade/classified-service"
	requestdesk "kasaba/contexts/marketplace-trade/request-desk"
	dutyrotation "kasaba/contexts/town-guide/duty-rotation"
)

func newTestServer() *Server {
	return New(
		classifiedservice.NewInMemoryModule(nil, slog.Default()),
		voteledger.NewInMemoryModule(slog.Default()),
		dutyrotation.NewInMemoryModule(nil, slog.Default()),
		notificationservice.NewInMemoryModule(nil, slog.Default()),
		adservice.NewInMemoryModule(nil, slog.Default()),
		requestdesk.NewInMemoryModule(slog.Default()),
		slog.Default(),
		":0",
	)
}

func TestSubmitClassifiedRequiresUser(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"title":"Tractor for sale","category":"vehicle","price":120000}`)
	req := httptest.NewRequest(http.MethodPost, "/classifieds", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSubmitClassifiedCreated(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"title":"Tractor for sale","category":"vehicle","price":120000}`)
	req := httptest.NewRequest(http.MethodPost, "/classifieds", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestDecideClassifiedRejectsNonAdmin(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"outcome":"approved"}`)
	req := httptest.NewRequest(http.MethodPost, "/classifieds/listing-1/decision", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-1")
	req.Header.Set("X-User-Role", "member")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateAdminPollRejectsInvalidJSON(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/polls/admin", bytes.NewReader([]byte(`{"question":`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "admin-1")
	req.Header.Set("X-User-Role", "admin")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAssignDutyRequiresAdmin(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"date":"2026-09-01","pharmacy_id":"pharmacy-1"}`)
	req := httptest.NewRequest(http.MethodPut, "/pharmacies/duty", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestActivePopupWithoutAdsIsNotFound(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/ads/popup", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestListingRequestSubmitIsAnonymous(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"business_name":"Corner Bakery","category":"food","phone":"5551234"}`)
	req := httptest.NewRequest(http.MethodPost, "/requests/listings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestMarkReadUnknownNotificationIsNotFound(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/notifications/notif-404/read", nil)
	req.Header.Set("X-User-Id", "user-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}
