package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tripjournal/tripjournal-go/internal/domain"
)

// MediaRepo defines the persistence operations for media attachments.
// Rows hold only metadata and the object store key; the bytes themselves
// live in the object store.
type MediaRepo interface {
	// Create inserts a new media row under media.EventID and returns the
	// persisted record.
	Create(ctx context.Context, media domain.Media) (domain.Media, error)

	// GetByID retrieves a single media row, scoped to the given userID
	// through its event's trip.
	// Returns domain.ErrNotFound if no media with that ID belongs to the user.
	GetByID(ctx context.Context, userID, mediaID int) (domain.Media, error)

	// ListByEventID returns all media of an event ordered by creation time.
	ListByEventID(ctx context.Context, eventID int) ([]domain.Media, error)

	// ListByTripID returns all media under a trip's events ordered by
	// creation time, for assembling full trip reads in one query.
	ListByTripID(ctx context.Context, tripID int) ([]domain.Media, error)

	// Delete removes a media row, scoped to the given userID.
	// Returns domain.ErrNotFound if no media with that ID belongs to the user.
	Delete(ctx context.Context, userID, mediaID int) error
}

// pgMediaRepo is the Postgres implementation of MediaRepo.
type pgMediaRepo struct {
	db db
}

// NewMediaRepo constructs a MediaRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewMediaRepo(db db) MediaRepo {
	return &pgMediaRepo{db: db}
}

func (r *pgMediaRepo) Create(ctx context.Context, media domain.Media) (domain.Media, error) {
	const q = `
		INSERT INTO media (event_id, object_key, caption)
		VALUES (@event_id, @object_key, @caption)
		RETURNING id, event_id, object_key, caption, created_at`

	args := pgx.NamedArgs{
		"event_id":   media.EventID,
		"object_key": media.ObjectKey,
		"caption":    media.Caption,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanMedia(row)
	if err != nil {
		return domain.Media{}, fmt.Errorf("repo.MediaRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgMediaRepo) GetByID(ctx context.Context, userID, mediaID int) (domain.Media, error) {
	const q = `
		SELECT m.id, m.event_id, m.object_key, m.caption, m.created_at
		FROM media m
		JOIN events e ON e.id = m.event_id
		JOIN trips t ON t.id = e.trip_id
		WHERE m.id = @id AND t.user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": mediaID, "user_id": userID})
	result, err := scanMedia(row)
	if err != nil {
		return domain.Media{}, fmt.Errorf("repo.MediaRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgMediaRepo) ListByEventID(ctx context.Context, eventID int) ([]domain.Media, error) {
	const q = `
		SELECT id, event_id, object_key, caption, created_at
		FROM media
		WHERE event_id = @event_id
		ORDER BY created_at ASC, id ASC`

	return r.list(ctx, "repo.MediaRepo.ListByEventID", q, pgx.NamedArgs{"event_id": eventID})
}

func (r *pgMediaRepo) ListByTripID(ctx context.Context, tripID int) ([]domain.Media, error) {
	const q = `
		SELECT m.id, m.event_id, m.object_key, m.caption, m.created_at
		FROM media m
		JOIN events e ON e.id = m.event_id
		WHERE e.trip_id = @trip_id
		ORDER BY m.created_at ASC, m.id ASC`

	return r.list(ctx, "repo.MediaRepo.ListByTripID", q, pgx.NamedArgs{"trip_id": tripID})
}

func (r *pgMediaRepo) Delete(ctx context.Context, userID, mediaID int) error {
	const q = `
		DELETE FROM media m
		USING events e, trips t
		WHERE m.id = @id AND e.id = m.event_id AND t.id = e.trip_id AND t.user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": mediaID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.MediaRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.MediaRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgMediaRepo) list(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Media, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var medias []domain.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		medias = append(medias, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return medias, nil
}

// scanMedia maps a single database row into a domain.Media.
// The presigned URL is not a column; the service fills it in at read time.
func scanMedia(s scanner) (domain.Media, error) {
	var m domain.Media
	err := s.Scan(&m.ID, &m.EventID, &m.ObjectKey, &m.Caption, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Media{}, domain.ErrNotFound
		}
		return domain.Media{}, err
	}
	return m, nil
}
