package journal

import (
	"fmt"
	"net/http"
)

// operation enumerates the client's operation catalogue. Each value resolves
// to exactly one request target.
type operation int

const (
	opRegister operation = iota
	opLogin
	opListTrips
	opCreateTrip
	opGetTrip
	opUpdateTrip
	opDeleteTrip
	opCreateEvent
	opUpdateEvent
	opDeleteEvent
	opUploadMedia
	opDeleteMedia
)

// endpoint is a concrete request target: method, path relative to the base
// URL, and whether the call carries the bearer token.
type endpoint struct {
	method string
	path   string
	auth   bool
}

// resolve maps an operation (and, for item-addressed operations, an id) to
// its endpoint. It is a pure function with no failure modes: an unknown
// operation is a programming error and panics.
func resolve(op operation, id int) endpoint {
	switch op {
	case opRegister:
		return endpoint{http.MethodPost, "/register", false}
	case opLogin:
		return endpoint{http.MethodPost, "/token", false}
	case opListTrips:
		return endpoint{http.MethodGet, "/trips", true}
	case opCreateTrip:
		return endpoint{http.MethodPost, "/trips", true}
	case opGetTrip:
		return endpoint{http.MethodGet, fmt.Sprintf("/trips/%d", id), true}
	case opUpdateTrip:
		return endpoint{http.MethodPut, fmt.Sprintf("/trips/%d", id), true}
	case opDeleteTrip:
		return endpoint{http.MethodDelete, fmt.Sprintf("/trips/%d", id), true}
	case opCreateEvent:
		return endpoint{http.MethodPost, "/events", true}
	case opUpdateEvent:
		return endpoint{http.MethodPut, fmt.Sprintf("/events/%d", id), true}
	case opDeleteEvent:
		return endpoint{http.MethodDelete, fmt.Sprintf("/events/%d", id), true}
	case opUploadMedia:
		return endpoint{http.MethodPost, "/media", true}
	case opDeleteMedia:
		return endpoint{http.MethodDelete, fmt.Sprintf("/media/%d", id), true}
	default:
		panic(fmt.Sprintf("journal: unknown operation %d", op))
	}
}
