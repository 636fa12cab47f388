package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tripjournal/tripjournal-go/internal/domain"
	"github.com/tripjournal/tripjournal-go/internal/repo"
)

// EventService implements business logic for event operations.
// It holds the trips repo because creating an event requires verifying the
// parent trip belongs to the requesting user.
type EventService struct {
	trips  repo.TripRepo
	events repo.EventRepo
	media  repo.MediaRepo
	store  MediaStore
}

// NewEventService constructs an EventService backed by the provided repos
// and object store.
func NewEventService(trips repo.TripRepo, events repo.EventRepo, media repo.MediaRepo, store MediaStore) *EventService {
	return &EventService{trips: trips, events: events, media: media, store: store}
}

// Create validates the event, verifies the parent trip belongs to userID,
// then persists.
// Returns domain.ErrValidation if input violates business rules and
// domain.ErrNotFound if the trip does not belong to the user.
func (s *EventService) Create(ctx context.Context, userID int, event domain.Event) (domain.Event, error) {
	if _, err := s.trips.GetByID(ctx, userID, event.TripID); err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w", err)
	}
	if err := validateEvent(event); err != nil {
		return domain.Event{}, err
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w", err)
	}
	created.Medias = []domain.Media{}
	return created, nil
}

// Update validates and persists changes to an event on one of the user's
// trips, then returns the updated event with its media. The trip an event
// belongs to never changes.
// Returns domain.ErrValidation for invalid input and domain.ErrNotFound if
// the event does not belong to the user.
func (s *EventService) Update(ctx context.Context, userID int, event domain.Event) (domain.Event, error) {
	if err := validateEvent(event); err != nil {
		return domain.Event{}, err
	}

	updated, err := s.events.Update(ctx, userID, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", err)
	}

	medias, err := s.media.ListByEventID(ctx, updated.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", err)
	}
	updated.Medias, err = presignMedias(ctx, s.store, medias)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", err)
	}
	if updated.Medias == nil {
		updated.Medias = []domain.Media{}
	}
	return updated, nil
}

// Delete removes an event from one of the user's trips along with its media
// rows (via cascading foreign keys), then clears the stored media objects.
// Returns domain.ErrNotFound if the event does not belong to the user.
func (s *EventService) Delete(ctx context.Context, userID, eventID int) error {
	medias, err := s.media.ListByEventID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("service.EventService.Delete: %w", err)
	}

	if err := s.events.Delete(ctx, userID, eventID); err != nil {
		return fmt.Errorf("service.EventService.Delete: %w", err)
	}

	// Rows are gone; leftover objects are invisible to clients and harmless,
	// so store failures here do not fail the request.
	for _, m := range medias {
		_ = s.store.Delete(ctx, m.ObjectKey)
	}
	return nil
}

// validateEvent enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Date is required.
func validateEvent(event domain.Event) error {
	if strings.TrimSpace(event.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if event.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	return nil
}
