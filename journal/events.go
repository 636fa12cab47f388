package journal

import (
	"context"
	"time"

	"github.com/tripjournal/tripjournal-go/domain"
)

// EventForm carries the caller-supplied fields for creating or updating an
// event. Date is in the local representation. TripID is only consulted on
// create; the server does not allow moving an event between trips.
type EventForm struct {
	TripID                 int
	Name                   string
	Note                   *string
	Date                   time.Time
	Location               *domain.Location
	TransitionFromPrevious *string
}

type eventCreatePayload struct {
	TripID int `json:"trip_id"`
	eventUpdatePayload
}

type eventUpdatePayload struct {
	Name                   string           `json:"name"`
	Note                   *string          `json:"note,omitempty"`
	Date                   domain.WireTime  `json:"date"`
	Location               *domain.Location `json:"location,omitempty"`
	TransitionFromPrevious *string          `json:"transition_from_previous,omitempty"`
}

func (c *Client) eventPayload(f EventForm) eventUpdatePayload {
	return eventUpdatePayload{
		Name:                   f.Name,
		Note:                   f.Note,
		Date:                   domain.NewWireTime(domain.ToUTC(f.Date, c.loc)),
		Location:               f.Location,
		TransitionFromPrevious: f.TransitionFromPrevious,
	}
}

// CreateEvent creates an event under form.TripID.
func (c *Client) CreateEvent(ctx context.Context, form EventForm) (domain.Event, error) {
	payload := eventCreatePayload{TripID: form.TripID, eventUpdatePayload: c.eventPayload(form)}

	var ev domain.Event
	if err := c.do(ctx, opCreateEvent, 0, payload, &ev); err != nil {
		return domain.Event{}, err
	}
	c.localizeEvent(&ev)
	return ev, nil
}

// UpdateEvent overwrites the mutable fields of an existing event.
func (c *Client) UpdateEvent(ctx context.Context, id int, form EventForm) (domain.Event, error) {
	var ev domain.Event
	if err := c.do(ctx, opUpdateEvent, id, c.eventPayload(form), &ev); err != nil {
		return domain.Event{}, err
	}
	c.localizeEvent(&ev)
	return ev, nil
}

// DeleteEvent deletes an event and its media.
func (c *Client) DeleteEvent(ctx context.Context, id int) error {
	return c.do(ctx, opDeleteEvent, id, nil, nil)
}

func (c *Client) localizeEvent(e *domain.Event) {
	e.Date = domain.NewWireTime(domain.ToLocal(e.Date.Time, c.loc))
}
