package service

import (
	"context"
	"fmt"

	"github.com/tripjournal/tripjournal-go/internal/domain"
	"github.com/tripjournal/tripjournal-go/internal/repo"
)

// MediaStore abstracts the object store holding media bytes.
// Implemented by storage.MinIOStore; defined here so services can be
// unit-tested with a mock.
type MediaStore interface {
	// Put stores data under a fresh key and returns that key.
	Put(ctx context.Context, data []byte) (string, error)

	// PresignURL returns a time-limited GET URL for the object under key.
	PresignURL(ctx context.Context, key string) (string, error)

	// Delete removes the object under key. Missing objects are not an error.
	Delete(ctx context.Context, key string) error
}

// MediaService attaches photos to events: bytes go to the object store,
// metadata goes to the database, and reads hand out presigned URLs.
type MediaService struct {
	events repo.EventRepo
	media  repo.MediaRepo
	store  MediaStore
}

// NewMediaService constructs a MediaService backed by the provided repos
// and object store.
func NewMediaService(events repo.EventRepo, media repo.MediaRepo, store MediaStore) *MediaService {
	return &MediaService{events: events, media: media, store: store}
}

// Upload stores the decoded bytes and records them against the event.
// Returns domain.ErrNotFound if the event does not belong to one of the
// user's trips, and domain.ErrValidation for an empty payload.
func (s *MediaService) Upload(ctx context.Context, userID, eventID int, data []byte, caption *string) (domain.Media, error) {
	if len(data) == 0 {
		return domain.Media{}, fmt.Errorf("%w: media data is required", domain.ErrValidation)
	}
	if _, err := s.events.GetByID(ctx, userID, eventID); err != nil {
		return domain.Media{}, fmt.Errorf("service.MediaService.Upload: %w", err)
	}

	key, err := s.store.Put(ctx, data)
	if err != nil {
		return domain.Media{}, fmt.Errorf("service.MediaService.Upload: %w", err)
	}

	created, err := s.media.Create(ctx, domain.Media{EventID: eventID, ObjectKey: key, Caption: caption})
	if err != nil {
		// The row never existed, so remove the freshly stored object.
		_ = s.store.Delete(ctx, key)
		return domain.Media{}, fmt.Errorf("service.MediaService.Upload: %w", err)
	}

	created.URL, err = s.store.PresignURL(ctx, key)
	if err != nil {
		return domain.Media{}, fmt.Errorf("service.MediaService.Upload: presign: %w", err)
	}
	return created, nil
}

// Delete removes a media row and its stored object.
// Returns domain.ErrNotFound if the media does not belong to one of the
// user's trips.
func (s *MediaService) Delete(ctx context.Context, userID, mediaID int) error {
	media, err := s.media.GetByID(ctx, userID, mediaID)
	if err != nil {
		return fmt.Errorf("service.MediaService.Delete: %w", err)
	}

	if err := s.media.Delete(ctx, userID, mediaID); err != nil {
		return fmt.Errorf("service.MediaService.Delete: %w", err)
	}

	// Row is gone; a leftover object is invisible to clients and harmless,
	// so a store failure here does not fail the request.
	_ = s.store.Delete(ctx, media.ObjectKey)
	return nil
}

// presignMedias fills in the URL field of each media record.
func presignMedias(ctx context.Context, store MediaStore, medias []domain.Media) ([]domain.Media, error) {
	out := make([]domain.Media, len(medias))
	for i, m := range medias {
		url, err := store.PresignURL(ctx, m.ObjectKey)
		if err != nil {
			return nil, fmt.Errorf("presign %q: %w", m.ObjectKey, err)
		}
		m.URL = url
		out[i] = m
	}
	return out, nil
}
