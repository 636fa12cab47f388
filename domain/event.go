package domain

import "encoding/json"

// Event is a dated entry within a trip: a name, an optional note, an optional
// location, attached media, and an optional label describing the transition
// from the previous event ("flight", "drive", ...). An event belongs to
// exactly one trip; the trip id is supplied at creation time and not stored
// back on the object.
type Event struct {
	ID                     int       `json:"id"`
	Name                   string    `json:"name"`
	Note                   *string   `json:"note,omitempty"`
	Date                   WireTime  `json:"date"`
	Location               *Location `json:"location,omitempty"`
	Medias                 []Media   `json:"medias"`
	TransitionFromPrevious *string   `json:"transition_from_previous,omitempty"`
}

// UnmarshalJSON decodes an event strictly, mirroring Trip.UnmarshalJSON:
// id, name, date, and medias are required; note, location, and
// transition_from_previous may be absent or null.
func (e *Event) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID                     *int      `json:"id"`
		Name                   *string   `json:"name"`
		Note                   *string   `json:"note"`
		Date                   *WireTime `json:"date"`
		Location               *Location `json:"location"`
		Medias                 *[]Media  `json:"medias"`
		TransitionFromPrevious *string   `json:"transition_from_previous"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch {
	case raw.ID == nil:
		return missingKeyError{"event", "id"}
	case raw.Name == nil:
		return missingKeyError{"event", "name"}
	case raw.Date == nil:
		return missingKeyError{"event", "date"}
	case raw.Medias == nil:
		return missingKeyError{"event", "medias"}
	}

	e.ID = *raw.ID
	e.Name = *raw.Name
	e.Note = raw.Note
	e.Date = *raw.Date
	e.Location = raw.Location
	e.Medias = *raw.Medias
	if e.Medias == nil {
		e.Medias = []Media{}
	}
	e.TransitionFromPrevious = raw.TransitionFromPrevious
	return nil
}

// Location is a point attached to an event. Latitude and longitude are plain
// decimal degrees; no range validation is performed anywhere in the system.
// A Location is always embedded in an Event, never persisted on its own.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   *string `json:"address,omitempty"`
}

// Media is a persisted attachment, represented by URL only once stored.
// The URL may be empty when the backing object is gone or not yet resolvable.
type Media struct {
	ID  int    `json:"id"`
	URL string `json:"url,omitempty"`
}
