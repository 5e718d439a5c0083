package entities

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestReviewed RequestStatus = "reviewed"
)

// ListingRequest is a business asking to be added to the town directory.
type ListingRequest struct {
	RequestID    string
	BusinessName string
	Category     string
	Phone        string
	Description  string
	Status       RequestStatus
	ReviewedBy   string
	ReviewedAt   *time.Time
	CreatedAt    time.Time
}

// PollRequest is a user suggestion for a future official poll.
type PollRequest struct {
	RequestID  string
	UserID     string
	UserName   string
	Suggestion string
	Status     RequestStatus
	ReviewedBy string
	ReviewedAt *time.Time
	CreatedAt  time.Time
}
