package domain

// ExportRow is a single row in a flat journal export.
// It is a denormalized view: one row per event, with trip fields repeated
// for every event on that trip. Trips with no events yield one row with
// empty values for all event fields.
//
// MediaURLs holds the URLs of the event's attachments in wire order.
// Callers that need a joined string (e.g. CSV) should join with ",".
type ExportRow struct {
	// Trip fields, repeated for every event on the trip.
	TripID        int
	TripName      string
	TripStartDate string // wire-format timestamp
	TripEndDate   string

	// Event fields, zero values when the trip has no events.
	EventID    int
	EventName  string
	EventDate  string
	EventNote  string
	Transition string

	MediaURLs []string
}
