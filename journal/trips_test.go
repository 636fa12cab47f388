package journal_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripjournal/tripjournal-go/journal"
)

// fixedZone gives tests a deterministic offset independent of the machine's
// local zone.
var fixedZone = time.FixedZone("UTC+2", 2*60*60)

// TestCreateTrip_EchoedID: a create against a server
// answering 201 with id 7 yields Trip{ID: 7, ...} and leaves the session
// untouched.
func TestCreateTrip_EchoedID(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/trips", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Paris", body["name"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"id": 7,
			"name": "Paris",
			"start_date": "2024-05-01T00:00:00Z",
			"end_date": "2024-05-05T00:00:00Z",
			"events": []
		}`))
	}, journal.WithCredentialStore(authedStore(t)), journal.WithTimeZone(time.UTC))

	trip, err := c.CreateTrip(context.Background(), journal.TripForm{
		Name:  "Paris",
		Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, 7, trip.ID)
	assert.Equal(t, "Paris", trip.Name)
	assert.True(t, c.Session().Authenticated(), "a trip call must not touch session state")
}

// TestCreateTrip_DatesCrossWireInUTC: form dates are given in the local
// representation; the wire must carry the UTC instant.
func TestCreateTrip_DatesCrossWireInUTC(t *testing.T) {
	var wireStart string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		wireStart, _ = body["start_date"].(string)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"id": 1,
			"name": "x",
			"start_date": "2024-05-01T00:00:00Z",
			"end_date": "2024-05-05T00:00:00Z",
			"events": []
		}`))
	}, journal.WithCredentialStore(authedStore(t)), journal.WithTimeZone(fixedZone))

	// Local representation of midnight May 1 in UTC+2: the instant shifted
	// forward by two hours.
	localMidnight := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).Add(2 * time.Hour)

	_, err := c.CreateTrip(context.Background(), journal.TripForm{
		Name:  "x",
		Start: localMidnight,
		End:   localMidnight,
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T00:00:00Z", wireStart)
}

// TestTrips_DecodedDatesAreLocalized: UTC wire timestamps come back shifted
// into the configured zone's local representation.
func TestTrips_DecodedDatesAreLocalized(t *testing.T) {
	c := newClient(t, status(http.StatusOK, `[{
		"id": 7,
		"name": "Paris",
		"start_date": "2024-05-01T00:00:00Z",
		"end_date": "2024-05-05T00:00:00Z",
		"events": [{
			"id": 12,
			"name": "Louvre",
			"date": "2024-05-02T09:00:00Z",
			"medias": []
		}]
	}]`), journal.WithCredentialStore(authedStore(t)), journal.WithTimeZone(fixedZone))

	trips, err := c.Trips(context.Background())

	require.NoError(t, err)
	require.Len(t, trips, 1)

	wantStart := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).Add(2 * time.Hour)
	assert.True(t, trips[0].StartDate.Time.Equal(wantStart),
		"got %v, want %v", trips[0].StartDate.Time, wantStart)

	require.Len(t, trips[0].Events, 1)
	wantEvent := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC).Add(2 * time.Hour)
	assert.True(t, trips[0].Events[0].Date.Time.Equal(wantEvent))
}

// TestTrips_MissingRequiredFieldIsDecodingError: a 2xx listing whose
// elements lack a required key classifies as ErrDecoding.
func TestTrips_MissingRequiredFieldIsDecodingError(t *testing.T) {
	c := newClient(t, status(http.StatusOK,
		`[{"name":"Paris","start_date":"2024-05-01T00:00:00Z","end_date":"2024-05-05T00:00:00Z","events":[]}]`),
		journal.WithCredentialStore(authedStore(t)))

	_, err := c.Trips(context.Background())

	assert.ErrorIs(t, err, journal.ErrDecoding)
}

func TestTrip_GetByID(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trips/42", r.URL.Path)
		w.Write([]byte(`{
			"id": 42,
			"name": "Alps",
			"start_date": "2024-02-01T00:00:00Z",
			"end_date": "2024-02-08T00:00:00Z",
			"events": []
		}`))
	}, journal.WithCredentialStore(authedStore(t)), journal.WithTimeZone(time.UTC))

	trip, err := c.Trip(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, 42, trip.ID)
}

func TestUpdateTrip_UsesPut(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/trips/42", r.URL.Path)
		w.Write([]byte(`{
			"id": 42,
			"name": "Alps v2",
			"start_date": "2024-02-01T00:00:00Z",
			"end_date": "2024-02-09T00:00:00Z",
			"events": []
		}`))
	}, journal.WithCredentialStore(authedStore(t)), journal.WithTimeZone(time.UTC))

	trip, err := c.UpdateTrip(context.Background(), 42, journal.TripForm{
		Name:  "Alps v2",
		Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "Alps v2", trip.Name)
}

func TestDeleteTrip_UsesDelete(t *testing.T) {
	var method, path string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}, journal.WithCredentialStore(authedStore(t)))

	require.NoError(t, c.DeleteTrip(context.Background(), 42))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/trips/42", path)
}
