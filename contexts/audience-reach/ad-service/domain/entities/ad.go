package entities

import "time"

type AdType string

const (
	AdBanner AdType = "banner"
	AdPopup  AdType = "popup"
)

func ValidAdType(value AdType) bool {
	return value == AdBanner || value == AdPopup
}

// Ad is one advertisement campaign. Views and Clicks only ever grow, and
// eligibility for display requires is_active plus now inside
// [StartDate, EndDate].
type Ad struct {
	AdID         string
	Title        string
	Advertiser   string
	ImageURL     string
	TargetURL    string
	Type         AdType
	StartDate    time.Time
	EndDate      time.Time
	IsActive     bool
	Views        int64
	Clicks       int64
	DurationDays int
	Cost         float64
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InWindow reports whether the instant falls inside the campaign window,
// boundaries included.
func (a Ad) InWindow(now time.Time) bool {
	return !now.Before(a.StartDate) && !now.After(a.EndDate)
}

// Eligible reports whether the ad may be shown at the given instant.
func (a Ad) Eligible(now time.Time) bool {
	return a.IsActive && a.InWindow(now)
}
