package journal

import (
	"context"
	"time"

	"github.com/tripjournal/tripjournal-go/domain"
)

// TripForm carries the caller-supplied fields for creating or updating a
// trip. Start and End are in the local representation (what a form shows);
// the client converts them to UTC before they cross the wire.
type TripForm struct {
	Name  string
	Start time.Time
	End   time.Time
}

// tripPayload is the wire shape of a trip create/update body.
type tripPayload struct {
	Name      string          `json:"name"`
	StartDate domain.WireTime `json:"start_date"`
	EndDate   domain.WireTime `json:"end_date"`
}

func (c *Client) tripPayload(f TripForm) tripPayload {
	return tripPayload{
		Name:      f.Name,
		StartDate: domain.NewWireTime(domain.ToUTC(f.Start, c.loc)),
		EndDate:   domain.NewWireTime(domain.ToUTC(f.End, c.loc)),
	}
}

// Trips returns all of the user's trips, most recent first as ordered by the
// server, with events and media embedded.
func (c *Client) Trips(ctx context.Context) ([]domain.Trip, error) {
	var trips []domain.Trip
	if err := c.do(ctx, opListTrips, 0, nil, &trips); err != nil {
		return nil, err
	}
	for i := range trips {
		c.localizeTrip(&trips[i])
	}
	return trips, nil
}

// Trip returns a single trip by id.
func (c *Client) Trip(ctx context.Context, id int) (domain.Trip, error) {
	var trip domain.Trip
	if err := c.do(ctx, opGetTrip, id, nil, &trip); err != nil {
		return domain.Trip{}, err
	}
	c.localizeTrip(&trip)
	return trip, nil
}

// CreateTrip creates a trip and returns the server's record of it,
// including the assigned id.
func (c *Client) CreateTrip(ctx context.Context, form TripForm) (domain.Trip, error) {
	var trip domain.Trip
	if err := c.do(ctx, opCreateTrip, 0, c.tripPayload(form), &trip); err != nil {
		return domain.Trip{}, err
	}
	c.localizeTrip(&trip)
	return trip, nil
}

// UpdateTrip overwrites the mutable fields of an existing trip.
func (c *Client) UpdateTrip(ctx context.Context, id int, form TripForm) (domain.Trip, error) {
	var trip domain.Trip
	if err := c.do(ctx, opUpdateTrip, id, c.tripPayload(form), &trip); err != nil {
		return domain.Trip{}, err
	}
	c.localizeTrip(&trip)
	return trip, nil
}

// DeleteTrip deletes a trip and everything nested under it.
func (c *Client) DeleteTrip(ctx context.Context, id int) error {
	return c.do(ctx, opDeleteTrip, id, nil, nil)
}

// localizeTrip converts every date on a decoded trip from the wire's UTC to
// the local representation, including nested event dates.
func (c *Client) localizeTrip(t *domain.Trip) {
	t.StartDate = domain.NewWireTime(domain.ToLocal(t.StartDate.Time, c.loc))
	t.EndDate = domain.NewWireTime(domain.ToLocal(t.EndDate.Time, c.loc))
	for i := range t.Events {
		c.localizeEvent(&t.Events[i])
	}
}
