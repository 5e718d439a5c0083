package httptransport

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterPharmacyRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type AssignDutyRequest struct {
	Date       string `json:"date"`
	PharmacyID string `json:"pharmacy_id"`
}

type PharmacyResponse struct {
	PharmacyID string    `json:"pharmacy_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"created_at"`
}

type PharmacyListResponse struct {
	Items []PharmacyResponse `json:"items"`
}

type DutyResponse struct {
	Date     string           `json:"date"`
	Pharmacy PharmacyResponse `json:"pharmacy"`
}
