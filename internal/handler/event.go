package handler

import (
	"encoding/json"
	"net/http"

	wire "github.com/tripjournal/tripjournal-go/domain"
	"github.com/tripjournal/tripjournal-go/internal/domain"
)

// eventRequest is the JSON body for POST /events and PUT /events/{id}.
// trip_id is only honored on create; an event can never move between trips.
type eventRequest struct {
	TripID                 int           `json:"trip_id"`
	Name                   string        `json:"name"`
	Note                   *string       `json:"note"`
	Date                   wire.WireTime `json:"date"`
	Location               *locationBody `json:"location"`
	TransitionFromPrevious *string       `json:"transition_from_previous"`
}

type locationBody struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   *string `json:"address"`
}

// CreateEvent handles POST /events.
func (s *Server) CreateEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := decodeEvent(w, r)
	if !ok {
		return
	}

	created, err := s.events.Create(r.Context(), userID(r), event)
	if err != nil {
		serviceError(w, r, err, "event")
		return
	}

	writeJSON(w, r, http.StatusCreated, eventToWire(created))
}

// UpdateEvent handles PUT /events/{id}.
func (s *Server) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	event, ok := decodeEvent(w, r)
	if !ok {
		return
	}
	event.ID = id

	updated, err := s.events.Update(r.Context(), userID(r), event)
	if err != nil {
		serviceError(w, r, err, "event")
		return
	}

	writeJSON(w, r, http.StatusOK, eventToWire(updated))
}

// DeleteEvent handles DELETE /events/{id}.
func (s *Server) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.events.Delete(r.Context(), userID(r), id); err != nil {
		serviceError(w, r, err, "event")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeEvent parses an eventRequest body into a domain.Event.
func decodeEvent(w http.ResponseWriter, r *http.Request) (domain.Event, bool) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, r, "request body must be valid JSON with name and date")
		return domain.Event{}, false
	}

	event := domain.Event{
		TripID:                 req.TripID,
		Name:                   req.Name,
		Note:                   req.Note,
		Date:                   req.Date.Time,
		TransitionFromPrevious: req.TransitionFromPrevious,
	}
	if req.Location != nil {
		event.Location = &domain.Location{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
			Address:   req.Location.Address,
		}
	}
	return event, true
}

// eventToWire converts a domain.Event into its wire representation.
func eventToWire(e domain.Event) wire.Event {
	medias := make([]wire.Media, len(e.Medias))
	for i, m := range e.Medias {
		medias[i] = mediaToWire(m)
	}

	out := wire.Event{
		ID:                     e.ID,
		Name:                   e.Name,
		Note:                   e.Note,
		Date:                   wire.NewWireTime(e.Date),
		TransitionFromPrevious: e.TransitionFromPrevious,
		Medias:                 medias,
	}
	if e.Location != nil {
		out.Location = &wire.Location{
			Latitude:  e.Location.Latitude,
			Longitude: e.Location.Longitude,
			Address:   e.Location.Address,
		}
	}
	return out
}

// mediaToWire converts a domain.Media into its wire representation. Only the
// id and the presigned URL are part of the wire shape.
func mediaToWire(m domain.Media) wire.Media {
	return wire.Media{ID: m.ID, URL: m.URL}
}
