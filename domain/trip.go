// Package domain contains the core data types for the Trip Journal product
// and the codec rules for their wire representation. It is shared by the
// client SDK (journal), the reference API server (internal/...), and the CLI,
// and depends on nothing outside the standard library.
package domain

import (
	"encoding/json"
	"fmt"
)

// Trip is the top-level aggregate: a named date range with an ordered list
// of events. The ID is assigned by the server and immutable after creation.
type Trip struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	StartDate WireTime `json:"start_date"`
	EndDate   WireTime `json:"end_date"`
	Events    []Event  `json:"events"`
}

// UnmarshalJSON decodes a trip strictly: a body missing any of the required
// keys (id, name, start_date, end_date, events) is rejected rather than
// silently zero-filled. The client relies on this to distinguish a malformed
// success body from a valid one.
func (t *Trip) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID        *int      `json:"id"`
		Name      *string   `json:"name"`
		StartDate *WireTime `json:"start_date"`
		EndDate   *WireTime `json:"end_date"`
		Events    *[]Event  `json:"events"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch {
	case raw.ID == nil:
		return missingKeyError{"trip", "id"}
	case raw.Name == nil:
		return missingKeyError{"trip", "name"}
	case raw.StartDate == nil:
		return missingKeyError{"trip", "start_date"}
	case raw.EndDate == nil:
		return missingKeyError{"trip", "end_date"}
	case raw.Events == nil:
		return missingKeyError{"trip", "events"}
	}

	t.ID = *raw.ID
	t.Name = *raw.Name
	t.StartDate = *raw.StartDate
	t.EndDate = *raw.EndDate
	t.Events = *raw.Events
	if t.Events == nil {
		t.Events = []Event{}
	}
	return nil
}

// missingKeyError reports a required JSON key absent from a decoded object.
type missingKeyError struct {
	object string
	key    string
}

func (e missingKeyError) Error() string {
	return fmt.Sprintf("%s: required key %q missing", e.object, e.key)
}
