// Package domain contains the core data types for the Trip Journal server.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// Trip represents a journey between two dates.
// A trip is the top-level aggregate; events belong to a trip, and every trip
// belongs to the user who created it. Dates are stored in UTC.
type Trip struct {
	ID        int
	UserID    int
	Name      string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Events is populated on single-trip and list reads, ordered by date.
	// Empty trips carry an empty (non-nil) slice.
	Events []Event
}
