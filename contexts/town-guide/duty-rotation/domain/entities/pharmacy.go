package entities

import "time"

// Pharmacy is a registered pharmacy in the town directory.
type Pharmacy struct {
	PharmacyID string
	Name       string
	Phone      string
	Address    string
	CreatedAt  time.Time
}

// DutyDay binds a calendar date to the pharmacy on duty. Date is the
// primary key in YYYY-MM-DD form; re-assignment replaces the previous
// pharmacy for that date.
type DutyDay struct {
	Date       string
	PharmacyID string
	AssignedBy string
	UpdatedAt  time.Time
}
