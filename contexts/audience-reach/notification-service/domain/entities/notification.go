package entities

import (
	"strings"
	"time"
)

type LocationType string

const (
	LocationCenter  LocationType = "center"
	LocationVillage LocationType = "village"
	LocationAbroad  LocationType = "abroad"
)

func ValidLocationType(value LocationType) bool {
	switch value {
	case LocationCenter, LocationVillage, LocationAbroad:
		return true
	default:
		return false
	}
}

type NotificationType string

const (
	NotificationAnnouncement NotificationType = "announcement"
	NotificationEvent        NotificationType = "event"
	NotificationAlert        NotificationType = "alert"
	NotificationGeneral      NotificationType = "general"
)

func ValidNotificationType(value NotificationType) bool {
	switch value {
	case NotificationAnnouncement, NotificationEvent, NotificationAlert, NotificationGeneral:
		return true
	default:
		return false
	}
}

type TargetKind string

const (
	TargetUser  TargetKind = "user"
	TargetAll   TargetKind = "all"
	TargetGroup TargetKind = "group"
)

// Target is the closed set of audiences a notification can address: one
// user, everyone, or a residence group.
type Target struct {
	Kind   TargetKind
	UserID string
	Group  LocationType
}

func UserTarget(userID string) Target {
	return Target{Kind: TargetUser, UserID: userID}
}

func AllTarget() Target {
	return Target{Kind: TargetAll}
}

func GroupTarget(group LocationType) Target {
	return Target{Kind: TargetGroup, Group: group}
}

// String renders the stored wire form: "all", "group:<location>" or the
// bare user id.
func (t Target) String() string {
	switch t.Kind {
	case TargetAll:
		return "all"
	case TargetGroup:
		return "group:" + string(t.Group)
	default:
		return t.UserID
	}
}

// ParseTarget decodes the stored wire form. A "group:" value with an
// unknown location and an empty value both fail.
func ParseTarget(value string) (Target, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Target{}, false
	}
	if value == "all" {
		return AllTarget(), true
	}
	if suffix, ok := strings.CutPrefix(value, "group:"); ok {
		group := LocationType(suffix)
		if !ValidLocationType(group) {
			return Target{}, false
		}
		return GroupTarget(group), true
	}
	return UserTarget(value), true
}

// Notification is the announcement record shared by all its recipients.
type Notification struct {
	NotificationID string
	Title          string
	Message        string
	Type           NotificationType
	Target         Target
	CreatedBy      string
	RecipientCount int
	CreatedAt      time.Time
}

// Receipt is one recipient's copy of a notification with their read state.
type Receipt struct {
	NotificationID string
	UserID         string
	IsRead         bool
	ReadAt         *time.Time
	CreatedAt      time.Time
}

// InboxItem joins a receipt with its notification for the inbox view.
type InboxItem struct {
	Notification Notification
	IsRead       bool
	ReadAt       *time.Time
}

// DirectoryUser is the slice of the town directory the resolver needs.
type DirectoryUser struct {
	UserID       string
	Name         string
	LocationType LocationType
	Role         string
}
