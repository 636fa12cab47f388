package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripjournal/tripjournal-go/internal/domain"
)

// EventRepo defines the persistence operations for events.
// Create trusts the caller to have verified trip ownership; every other
// operation is scoped by the owning user's ID through a join on trips.
type EventRepo interface {
	// Create inserts a new event under event.TripID and returns the
	// persisted record.
	Create(ctx context.Context, event domain.Event) (domain.Event, error)

	// GetByID retrieves a single event, scoped to the given userID.
	// Returns domain.ErrNotFound if no event with that ID belongs to one of
	// that user's trips.
	GetByID(ctx context.Context, userID, eventID int) (domain.Event, error)

	// ListByTripID returns all events of a trip ordered by date ascending.
	ListByTripID(ctx context.Context, tripID int) ([]domain.Event, error)

	// Update overwrites the mutable fields of an event, scoped to the given
	// userID, and returns the updated record. The trip an event belongs to
	// never changes. Returns domain.ErrNotFound if no event with that ID
	// belongs to one of that user's trips.
	Update(ctx context.Context, userID int, event domain.Event) (domain.Event, error)

	// Delete removes an event, scoped to the given userID. Media under the
	// event are removed by the database's cascading foreign keys.
	// Returns domain.ErrNotFound if no event with that ID belongs to one of
	// that user's trips.
	Delete(ctx context.Context, userID, eventID int) error
}

// pgEventRepo is the Postgres implementation of EventRepo.
type pgEventRepo struct {
	db db
}

// NewEventRepo constructs an EventRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewEventRepo(db db) EventRepo {
	return &pgEventRepo{db: db}
}

const eventColumns = `id, trip_id, name, note, date, latitude, longitude, address,
		transition_from_previous, created_at, updated_at`

func (r *pgEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	const q = `
		INSERT INTO events (trip_id, name, note, date, latitude, longitude, address, transition_from_previous)
		VALUES (@trip_id, @name, @note, @date, @latitude, @longitude, @address, @transition_from_previous)
		RETURNING ` + eventColumns

	row := r.db.QueryRow(ctx, q, eventArgs(event))
	result, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) GetByID(ctx context.Context, userID, eventID int) (domain.Event, error) {
	const q = `
		SELECT e.id, e.trip_id, e.name, e.note, e.date, e.latitude, e.longitude, e.address,
		       e.transition_from_previous, e.created_at, e.updated_at
		FROM events e
		JOIN trips t ON t.id = e.trip_id
		WHERE e.id = @id AND t.user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": eventID, "user_id": userID})
	result, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) ListByTripID(ctx context.Context, tripID int) ([]domain.Event, error) {
	const q = `
		SELECT ` + eventColumns + `
		FROM events
		WHERE trip_id = @trip_id
		ORDER BY date ASC, id ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.EventRepo.ListByTripID: scan: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListByTripID: rows: %w", err)
	}

	return events, nil
}

func (r *pgEventRepo) Update(ctx context.Context, userID int, event domain.Event) (domain.Event, error) {
	const q = `
		UPDATE events e
		SET name                     = @name,
		    note                     = @note,
		    date                     = @date,
		    latitude                 = @latitude,
		    longitude                = @longitude,
		    address                  = @address,
		    transition_from_previous = @transition_from_previous,
		    updated_at               = now()
		FROM trips t
		WHERE e.id = @id AND t.id = e.trip_id AND t.user_id = @user_id
		RETURNING e.id, e.trip_id, e.name, e.note, e.date, e.latitude, e.longitude, e.address,
		          e.transition_from_previous, e.created_at, e.updated_at`

	args := eventArgs(event)
	args["id"] = event.ID
	args["user_id"] = userID
	delete(args, "trip_id")

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) Delete(ctx context.Context, userID, eventID int) error {
	const q = `
		DELETE FROM events e
		USING trips t
		WHERE e.id = @id AND t.id = e.trip_id AND t.user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": eventID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.EventRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EventRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// eventArgs flattens an event into named SQL arguments, splitting the
// optional location into its nullable columns.
func eventArgs(event domain.Event) pgx.NamedArgs {
	args := pgx.NamedArgs{
		"trip_id":                  event.TripID,
		"name":                     event.Name,
		"note":                     event.Note,
		"date":                     event.Date,
		"latitude":                 nil,
		"longitude":                nil,
		"address":                  nil,
		"transition_from_previous": event.TransitionFromPrevious,
	}
	if loc := event.Location; loc != nil {
		args["latitude"] = loc.Latitude
		args["longitude"] = loc.Longitude
		args["address"] = loc.Address
	}
	return args
}

// scanEvent maps a single database row into a domain.Event, folding the
// nullable location columns back into a *Location.
func scanEvent(s scanner) (domain.Event, error) {
	var (
		e        domain.Event
		lat, lon pgtype.Float8
		address  pgtype.Text
	)

	err := s.Scan(&e.ID, &e.TripID, &e.Name, &e.Note, &e.Date, &lat, &lon, &address,
		&e.TransitionFromPrevious, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrNotFound
		}
		return domain.Event{}, err
	}

	if lat.Valid && lon.Valid {
		loc := &domain.Location{Latitude: lat.Float64, Longitude: lon.Float64}
		if address.Valid {
			addr := address.String
			loc.Address = &addr
		}
		e.Location = loc
	}

	return e, nil
}
