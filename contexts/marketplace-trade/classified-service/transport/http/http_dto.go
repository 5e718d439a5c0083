package httptransport

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitClassifiedRequest struct {
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	SubCategory  string  `json:"sub_category,omitempty"`
	Price        float64 `json:"price"`
	Description  string  `json:"description,omitempty"`
	ImageURL     string  `json:"image_url,omitempty"`
	Location     string  `json:"location,omitempty"`
	ContactName  string  `json:"contact_name,omitempty"`
	ContactPhone string  `json:"contact_phone,omitempty"`
}

type DecideClassifiedRequest struct {
	Outcome string `json:"outcome"`
}

type RequestFeaturedRequest struct {
	DurationDays int `json:"duration_days"`
}

type ClassifiedResponse struct {
	ClassifiedID         string     `json:"classified_id"`
	UserID               string     `json:"user_id"`
	Title                string     `json:"title"`
	Category             string     `json:"category"`
	SubCategory          string     `json:"sub_category,omitempty"`
	Price                float64    `json:"price"`
	Description          string     `json:"description,omitempty"`
	ImageURL             string     `json:"image_url,omitempty"`
	Location             string     `json:"location,omitempty"`
	ContactName          string     `json:"contact_name,omitempty"`
	ContactPhone         string     `json:"contact_phone,omitempty"`
	Status               string     `json:"status"`
	FeaturedRequested    bool       `json:"featured_requested"`
	FeaturedStatus       string     `json:"featured_status"`
	FeaturedUntil        *time.Time `json:"featured_until,omitempty"`
	FeaturedDurationDays int        `json:"featured_duration_days,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

type ClassifiedListResponse struct {
	Items []ClassifiedResponse `json:"items"`
}
