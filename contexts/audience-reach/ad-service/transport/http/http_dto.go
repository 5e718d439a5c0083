package httptransport

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateAdRequest struct {
	Title        string    `json:"title"`
	Advertiser   string    `json:"advertiser"`
	ImageURL     string    `json:"image_url"`
	TargetURL    string    `json:"target_url"`
	Type         string    `json:"type"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	DurationDays int       `json:"duration_days"`
	Cost         float64   `json:"cost"`
}

type AdResponse struct {
	AdID         string    `json:"ad_id"`
	Title        string    `json:"title"`
	Advertiser   string    `json:"advertiser"`
	ImageURL     string    `json:"image_url"`
	TargetURL    string    `json:"target_url"`
	Type         string    `json:"type"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	IsActive     bool      `json:"is_active"`
	Views        int64     `json:"views"`
	Clicks       int64     `json:"clicks"`
	DurationDays int       `json:"duration_days"`
	Cost         float64   `json:"cost"`
	CreatedAt    time.Time `json:"created_at"`
}

type AdListResponse struct {
	Items []AdResponse `json:"items"`
}
