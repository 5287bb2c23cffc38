package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/storage"
)

// Object key prefixes, one per kind of upload.
const (
	MediaProfilePhotos   = "profile_photos"
	MediaEventProofs     = "event_proofs"
	MediaChallengeProofs = "challenge_proofs"
)

type mediaService struct {
	store        storage.Storage
	maxSize      int64
	allowedTypes map[string]bool
}

func NewMediaService(store storage.Storage, maxSizeMB int64, allowedTypes []string) MediaService {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = true
	}
	return &mediaService{
		store:        store,
		maxSize:      maxSizeMB << 20,
		allowedTypes: allowed,
	}
}

func (s *mediaService) Save(ctx context.Context, prefix string, ownerID int32, file Upload) (string, error) {
	if file.Body == nil || file.Filename == "" {
		return "", invalid("file", "is required")
	}
	if file.Size <= 0 || file.Size > s.maxSize {
		return "", invalid("file", fmt.Sprintf("must be between 1 byte and %d MB", s.maxSize>>20))
	}
	if !s.allowedTypes[file.ContentType] {
		return "", invalid("file", fmt.Sprintf("type %q is not allowed", file.ContentType))
	}

	key := storage.ObjectKey(prefix, ownerID, file.Filename)
	logger.ExternalServiceCall("storage", "Put", "key", key, "size", file.Size)
	err := s.store.Put(ctx, key, file.ContentType, io.LimitReader(file.Body, s.maxSize), file.Size)
	logger.ExternalServiceResult("storage", "Put", err, "key", key)
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return key, nil
}

func (s *mediaService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if !storage.ValidKey(key) {
		return nil, fmt.Errorf("%w: media", ErrNotFound)
	}
	rc, err := s.store.Open(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: media", ErrNotFound)
	}
	return rc, err
}

func (s *mediaService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	logger.ExternalServiceCall("storage", "Delete", "key", key)
	err := s.store.Delete(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		err = nil
	}
	logger.ExternalServiceResult("storage", "Delete", err, "key", key)
	return err
}
