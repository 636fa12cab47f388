// Package storage holds media bytes in an S3-compatible object store.
// Database rows reference objects by key; clients never talk to the store
// directly, they receive presigned URLs minted here.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tripjournal/tripjournal-go/internal/config"
)

// MinIOStore stores media objects in a single bucket on a MinIO (or any
// S3-compatible) server.
type MinIOStore struct {
	client    *minio.Client
	bucket    string
	urlExpiry time.Duration
}

// NewMinIOStore connects to the object store and ensures the configured
// bucket exists.
func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage.NewMinIOStore: connect: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage.NewMinIOStore: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage.NewMinIOStore: create bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &MinIOStore{client: client, bucket: cfg.Bucket, urlExpiry: cfg.URLExpiry}, nil
}

// Put stores data under a fresh random key and returns that key.
// The content type is sniffed from the bytes, so clients uploading base64
// payloads do not need to declare one.
func (s *MinIOStore) Put(ctx context.Context, data []byte) (string, error) {
	key := fmt.Sprintf("media/%s", uuid.NewString())
	contentType := http.DetectContentType(data)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("storage.MinIOStore.Put: %w", err)
	}
	return key, nil
}

// PresignURL returns a time-limited GET URL for the object under key.
func (s *MinIOStore) PresignURL(ctx context.Context, key string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.urlExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("storage.MinIOStore.PresignURL: %w", err)
	}
	return u.String(), nil
}

// Delete removes the object under key. Deleting a missing object is not an
// error, matching S3 semantics.
func (s *MinIOStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage.MinIOStore.Delete: %w", err)
	}
	return nil
}
