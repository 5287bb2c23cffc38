package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"skillswap-backend/internal/config"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var ErrNotFound = errors.New("object not found")

// Storage keeps uploaded media: profile photos, event proofs and challenge
// proofs. Keys are slash-separated and never start with a slash.
type Storage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// New selects the backend named by cfg.Type.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg.UploadDir)
	case "s3":
		return NewS3Storage(ctx, cfg)
	}
	return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
}

// ObjectKey builds "<prefix>/<ownerID>/<uuid>-<slug>.<ext>" from an uploaded
// file name.
func ObjectKey(prefix string, ownerID int32, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	base := slug.Make(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))
	if base == "" {
		base = "file"
	}
	if len(base) > 48 {
		base = base[:48]
	}
	return fmt.Sprintf("%s/%d/%s-%s%s", prefix, ownerID, uuid.NewString(), base, ext)
}

// ValidKey rejects keys that could escape the storage root.
func ValidKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
