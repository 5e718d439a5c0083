package httptransport

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitListingRequestRequest struct {
	BusinessName string `json:"business_name"`
	Category     string `json:"category"`
	Phone        string `json:"phone"`
	Description  string `json:"description"`
}

type SubmitPollRequestRequest struct {
	UserName   string `json:"user_name"`
	Suggestion string `json:"suggestion"`
}

type ListingRequestResponse struct {
	RequestID    string    `json:"request_id"`
	BusinessName string    `json:"business_name"`
	Category     string    `json:"category"`
	Phone        string    `json:"phone"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListingRequestListResponse struct {
	Items []ListingRequestResponse `json:"items"`
}

type PollRequestResponse struct {
	RequestID  string    `json:"request_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	Suggestion string    `json:"suggestion"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type PollRequestListResponse struct {
	Items []PollRequestResponse `json:"items"`
}
