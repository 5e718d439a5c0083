package httptransport

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateAdminPollRequest struct {
	Question string    `json:"question"`
	Options  []string  `json:"options"`
	EndDate  time.Time `json:"end_date"`
}

type CastAdminPollVoteRequest struct {
	OptionID string `json:"option_id"`
}

type PollOptionResponse struct {
	OptionID  string `json:"option_id"`
	Text      string `json:"text"`
	VoteCount int    `json:"vote_count"`
}

type AdminPollResponse struct {
	PollID     string               `json:"poll_id"`
	Question   string               `json:"question"`
	Options    []PollOptionResponse `json:"options"`
	EndDate    time.Time            `json:"end_date"`
	IsActive   bool                 `json:"is_active"`
	TotalVotes int                  `json:"total_votes"`
	CreatedAt  time.Time            `json:"created_at"`
}

type AdminPollListResponse struct {
	Items []AdminPollResponse `json:"items"`
}

type CreatePublicPollRequest struct {
	UserName string `json:"user_name"`
	Text     string `json:"text"`
}

type VotePublicPollRequest struct {
	Choice string `json:"choice"`
}

type MyVoteResponse struct {
	Choice string `json:"choice,omitempty"`
}

type PublicPollResponse struct {
	PollID        string    `json:"poll_id"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	Text          string    `json:"text"`
	AgreeCount    int       `json:"agree_count"`
	DisagreeCount int       `json:"disagree_count"`
	MyChoice      string    `json:"my_choice,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type PublicPollListResponse struct {
	Items []PublicPollResponse `json:"items"`
}

type CreateEventRequest struct {
	UserName    string `json:"user_name"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"event_date"`
	EventTime   string `json:"event_time"`
	Location    string `json:"location"`
	ImageURL    string `json:"image_url"`
}

type RSVPEventRequest struct {
	Status string `json:"status"`
}

type PublicEventResponse struct {
	EventID           string    `json:"event_id"`
	UserID            string    `json:"user_id"`
	UserName          string    `json:"user_name"`
	Type              string    `json:"type"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	EventDate         string    `json:"event_date"`
	EventTime         string    `json:"event_time"`
	Location          string    `json:"location"`
	ImageURL          string    `json:"image_url"`
	AttendingCount    int       `json:"attending_count"`
	NotAttendingCount int       `json:"not_attending_count"`
	MyStatus          string    `json:"my_status,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type PublicEventListResponse struct {
	Items []PublicEventResponse `json:"items"`
}
