package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tripjournal/tripjournal-go/internal/domain"
	"github.com/tripjournal/tripjournal-go/internal/repo"
)

// TripService implements business logic for trip operations. Reads return
// fully assembled trips: events in date order, each with its media and a
// fresh presigned URL per attachment.
type TripService struct {
	trips  repo.TripRepo
	events repo.EventRepo
	media  repo.MediaRepo
	store  MediaStore
}

// NewTripService constructs a TripService backed by the provided repos and
// object store.
func NewTripService(trips repo.TripRepo, events repo.EventRepo, media repo.MediaRepo, store MediaStore) *TripService {
	return &TripService{trips: trips, events: events, media: media, store: store}
}

// Create validates and persists a new trip owned by userID.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, userID int, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	trip.UserID = userID

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	created.Events = []domain.Event{}
	return created, nil
}

// GetByID returns a single trip with its events and media.
// Returns domain.ErrNotFound if the trip does not belong to the user.
func (s *TripService) GetByID(ctx context.Context, userID, tripID int) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	if err := s.attachEvents(ctx, &trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns all of the user's trips, most recent first, each with its
// events and media. Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context, userID int) ([]domain.Trip, error) {
	trips, err := s.trips.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	for i := range trips {
		if err := s.attachEvents(ctx, &trips[i]); err != nil {
			return nil, fmt.Errorf("service.TripService.List: %w", err)
		}
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update validates and persists changes to one of the user's trips, then
// returns the updated trip with its events.
// Returns domain.ErrValidation for invalid input and domain.ErrNotFound if
// the trip does not belong to the user.
func (s *TripService) Update(ctx context.Context, userID int, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	trip.UserID = userID

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := s.attachEvents(ctx, &updated); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes one of the user's trips along with its events and media
// rows (via cascading foreign keys), then clears the stored media objects.
// Returns domain.ErrNotFound if the trip does not belong to the user.
func (s *TripService) Delete(ctx context.Context, userID, tripID int) error {
	medias, err := s.media.ListByTripID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	if err := s.trips.Delete(ctx, userID, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	// Rows are gone; leftover objects are invisible to clients and harmless,
	// so store failures here do not fail the request.
	for _, m := range medias {
		_ = s.store.Delete(ctx, m.ObjectKey)
	}
	return nil
}

// attachEvents loads the trip's events in date order and buckets the trip's
// media onto them, presigning each attachment's URL.
func (s *TripService) attachEvents(ctx context.Context, trip *domain.Trip) error {
	events, err := s.events.ListByTripID(ctx, trip.ID)
	if err != nil {
		return err
	}

	medias, err := s.media.ListByTripID(ctx, trip.ID)
	if err != nil {
		return err
	}
	medias, err = presignMedias(ctx, s.store, medias)
	if err != nil {
		return err
	}

	byEvent := make(map[int][]domain.Media, len(events))
	for _, m := range medias {
		byEvent[m.EventID] = append(byEvent[m.EventID], m)
	}

	trip.Events = make([]domain.Event, len(events))
	for i, e := range events {
		e.Medias = byEvent[e.ID]
		if e.Medias == nil {
			e.Medias = []domain.Media{}
		}
		trip.Events[i] = e
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - StartDate must not be after EndDate.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if trip.StartDate.After(trip.EndDate) {
		return fmt.Errorf("%w: start_date must not be after end_date", domain.ErrValidation)
	}
	return nil
}
