package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	wire "github.com/tripjournal/tripjournal-go/domain"
	"github.com/tripjournal/tripjournal-go/internal/domain"
)

// tripRequest is the JSON body for POST /trips and PUT /trips/{id}.
// Dates arrive as ISO-8601 UTC strings; WireTime handles the codec.
type tripRequest struct {
	Name      string        `json:"name"`
	StartDate wire.WireTime `json:"start_date"`
	EndDate   wire.WireTime `json:"end_date"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := decodeTrip(w, r)
	if !ok {
		return
	}

	created, err := s.trips.Create(r.Context(), userID(r), trip)
	if err != nil {
		serviceError(w, r, err, "trip")
		return
	}

	writeJSON(w, r, http.StatusCreated, tripToWire(created))
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context(), userID(r))
	if err != nil {
		serviceError(w, r, err, "trip")
		return
	}

	out := make([]wire.Trip, len(trips))
	for i, t := range trips {
		out[i] = tripToWire(t)
	}
	writeJSON(w, r, http.StatusOK, out)
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), userID(r), id)
	if err != nil {
		serviceError(w, r, err, "trip")
		return
	}

	writeJSON(w, r, http.StatusOK, tripToWire(trip))
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	trip, ok := decodeTrip(w, r)
	if !ok {
		return
	}
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), userID(r), trip)
	if err != nil {
		serviceError(w, r, err, "trip")
		return
	}

	writeJSON(w, r, http.StatusOK, tripToWire(updated))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), userID(r), id); err != nil {
		serviceError(w, r, err, "trip")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- helpers ----------------------------------------------------------------

// pathID parses the {id} path parameter, rejecting non-numeric values as a
// not-found rather than a server error.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusNotFound, "not_found", "resource not found")
		return 0, false
	}
	return id, true
}

// decodeTrip parses a tripRequest body into a domain.Trip.
func decodeTrip(w http.ResponseWriter, r *http.Request) (domain.Trip, bool) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, r, "request body must be valid JSON with name, start_date, and end_date")
		return domain.Trip{}, false
	}
	return domain.Trip{
		Name:      req.Name,
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.Time,
	}, true
}

// tripToWire converts a domain.Trip into its wire representation.
func tripToWire(t domain.Trip) wire.Trip {
	events := make([]wire.Event, len(t.Events))
	for i, e := range t.Events {
		events[i] = eventToWire(e)
	}
	return wire.Trip{
		ID:        t.ID,
		Name:      t.Name,
		StartDate: wire.NewWireTime(t.StartDate),
		EndDate:   wire.NewWireTime(t.EndDate),
		Events:    events,
	}
}
