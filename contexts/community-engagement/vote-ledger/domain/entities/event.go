package entities

import "time"

type EventType string

const (
	EventWedding      EventType = "wedding"
	EventEngagement   EventType = "engagement"
	EventCircumcision EventType = "circumcision"
	EventReligious    EventType = "religious"
	EventOther        EventType = "other"
)

func ValidEventType(value EventType) bool {
	switch value {
	case EventWedding, EventEngagement, EventCircumcision, EventReligious, EventOther:
		return true
	default:
		return false
	}
}

type RSVPStatus string

const (
	RSVPAttending    RSVPStatus = "attending"
	RSVPNotAttending RSVPStatus = "not_attending"
)

func ValidRSVPStatus(status RSVPStatus) bool {
	return status == RSVPAttending || status == RSVPNotAttending
}

// PublicEvent is a community invitation with RSVP tallies. Same ledger rule
// as PublicPoll: counters and the per-user map move together or not at all.
type PublicEvent struct {
	EventID           string
	UserID            string
	UserName          string
	Type              EventType
	Title             string
	Description       string
	EventDate         string // YYYY-MM-DD
	EventTime         string // HH:MM
	Location          string
	ImageURL          string
	AttendingCount    int
	NotAttendingCount int
	RSVPStatus        map[string]RSVPStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
