package domain

import "time"

// Event is a single entry within a trip: a visit, a meal, a leg of travel.
// Optional fields are pointers; nil means the author left them blank.
// Date is stored in UTC.
type Event struct {
	ID                     int
	TripID                 int
	Name                   string
	Note                   *string
	Date                   time.Time
	Location               *Location
	TransitionFromPrevious *string
	CreatedAt              time.Time
	UpdatedAt              time.Time

	// Medias is populated on reads, ordered by creation time.
	// Events without media carry an empty (non-nil) slice.
	Medias []Media
}

// Location is a geographic point with an optional reverse-geocoded address.
type Location struct {
	Latitude  float64
	Longitude float64
	Address   *string
}
