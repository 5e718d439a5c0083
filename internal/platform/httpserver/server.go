package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	adservice "kasaba/contexts/audience-reach/ad-service"
	notificationservice "kasaba/contexts/audience-reach/notification-service"
	voteledger "kasaba/contexts/community-engagement/vote-ledger"
	classifiedservice "kasaba/contexts/marketplace-trade/classified-service"
	requestdesk "kasaba/contexts/marketplace-trade/request-desk"
	dutyrotation "kasaba/contexts/town-guide/duty-rotation"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "kasaba/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	classifieds   classifiedservice.Module
	votes         voteledger.Module
	duty          dutyrotation.Module
	notifications notificationservice.Module
	ads           adservice.Module
	requests      requestdesk.Module
}

func New(
	classifieds classifiedservice.Module,
	votes voteledger.Module,
	duty dutyrotation.Module,
	notifications notificationservice.Module,
	ads adservice.Module,
	requests requestdesk.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		classifieds:   classifieds,
		votes:         votes,
		duty:          duty,
		notifications: notifications,
		ads:           ads,
		requests:      requests,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /classifieds", s.handleSubmitClassified)
	s.mux.HandleFunc("GET /classifieds", s.handlePublicFeed)
	s.mux.HandleFunc("GET /classifieds/{classified_id}", s.handleGetClassified)
	s.mux.HandleFunc("POST /classifieds/{classified_id}/decision", s.handleDecideClassified)
	s.mux.HandleFunc("POST /classifieds/{classified_id}/featured", s.handleRequestFeatured)
	s.mux.HandleFunc("POST /classifieds/{classified_id}/featured/activate", s.handleActivateFeatured)
	s.mux.HandleFunc("GET /moderation/classifieds", s.handleModerationQueue)

	s.mux.HandleFunc("POST /polls/admin", s.handleCreateAdminPoll)
	s.mux.HandleFunc("GET /polls/admin", s.handleListAdminPolls)
	s.mux.HandleFunc("GET /polls/admin/{poll_id}", s.handleGetAdminPoll)
	s.mux.HandleFunc("POST /polls/admin/{poll_id}/close", s.handleCloseAdminPoll)
	s.mux.HandleFunc("POST /polls/admin/{poll_id}/votes", s.handleCastAdminPollVote)
	s.mux.HandleFunc("POST /polls/public", s.handleCreatePublicPoll)
	s.mux.HandleFunc("GET /polls/public", s.handleListPublicPolls)
	s.mux.HandleFunc("GET /polls/public/{poll_id}", s.handleGetPublicPoll)
	s.mux.HandleFunc("POST /polls/public/{poll_id}/votes", s.handleVotePublicPoll)
	s.mux.HandleFunc("GET /polls/public/{poll_id}/votes/me", s.handleMyVote)
	s.mux.HandleFunc("POST /events", s.handleCreateEvent)
	s.mux.HandleFunc("GET /events", s.handleListEvents)
	s.mux.HandleFunc("GET /events/{event_id}", s.handleGetEvent)
	s.mux.HandleFunc("POST /events/{event_id}/rsvp", s.handleRSVPEvent)

	s.mux.HandleFunc("POST /pharmacies", s.handleRegisterPharmacy)
	s.mux.HandleFunc("GET /pharmacies", s.handleListPharmacies)
	s.mux.HandleFunc("PUT /pharmacies/duty", s.handleAssignDuty)
	s.mux.HandleFunc("GET /pharmacies/duty/{date}", s.handleDutyPharmacy)

	s.mux.HandleFunc("POST /notifications", s.handleCreateNotification)
	s.mux.HandleFunc("GET /notifications", s.handleNotificationHistory)
	s.mux.HandleFunc("GET /notifications/inbox", s.handleInbox)
	s.mux.HandleFunc("POST /notifications/{notification_id}/read", s.handleMarkRead)

	s.mux.HandleFunc("POST /ads", s.handleCreateAd)
	s.mux.HandleFunc("GET /ads/active", s.handleActiveAds)
	s.mux.HandleFunc("GET /ads/popup", s.handleActivePopup)
	s.mux.HandleFunc("GET /ads/{ad_id}", s.handleGetAd)
	s.mux.HandleFunc("POST /ads/{ad_id}/view", s.handleRecordAdView)
	s.mux.HandleFunc("POST /ads/{ad_id}/click", s.handleRecordAdClick)

	s.mux.HandleFunc("POST /requests/listings", s.handleSubmitListingRequest)
	s.mux.HandleFunc("GET /requests/listings/pending", s.handlePendingListingRequests)
	s.mux.HandleFunc("POST /requests/listings/{request_id}/review", s.handleReviewListingRequest)
	s.mux.HandleFunc("POST /requests/polls", s.handleSubmitPollRequest)
	s.mux.HandleFunc("GET /requests/polls/pending", s.handlePendingPollRequests)
	s.mux.HandleFunc("POST /requests/polls/{request_id}/review", s.handleReviewPollRequest)
}

func (s *Server) decodeJSON(
	w http.ResponseWriter,
	r *http.Request,
	target any,
	writeError func(http.ResponseWriter, int, string, string),
) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func parsePage(r *http.Request) (int, int) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))
	return limit, offset
}
