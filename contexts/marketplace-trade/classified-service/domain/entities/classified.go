package entities

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type FeaturedStatus string

const (
	FeaturedNone    FeaturedStatus = "none"
	FeaturedPending FeaturedStatus = "pending"
	FeaturedActive  FeaturedStatus = "active"
	FeaturedExpired FeaturedStatus = "expired"
)

type Category string

const (
	CategoryRealEstate Category = "real_estate"
	CategoryVehicle    Category = "vehicle"
	CategoryMarket     Category = "market"
	CategorySpot       Category = "spot"
	CategoryLivestock  Category = "livestock"
)

func ValidCategory(value Category) bool {
	switch value {
	case CategoryRealEstate, CategoryVehicle, CategoryMarket, CategorySpot, CategoryLivestock:
		return true
	default:
		return false
	}
}

// Classified is a marketplace listing. Records are never deleted; both
// lifecycle fields only move forward through their state machines.
// FeaturedUntil is set exactly while FeaturedStatus is active or expired.
type Classified struct {
	ClassifiedID string
	UserID       string
	Title        string
	Category     Category
	SubCategory  string
	Price        float64
	Description  string
	ImageURL     string
	Location     string
	ContactName  string
	ContactPhone string

	Status Status

	FeaturedRequested    bool
	FeaturedStatus       FeaturedStatus
	FeaturedUntil        *time.Time
	FeaturedDurationDays int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FeaturedRequestable reports whether the owner may ask for promotion again.
func (c Classified) FeaturedRequestable() bool {
	return c.FeaturedStatus == FeaturedNone || c.FeaturedStatus == FeaturedExpired
}
