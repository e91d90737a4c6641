// Package storage holds the media object store backing issue photos.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"civicgrid/internal/application/issue/usecases"
	"civicgrid/internal/shared/config"
	"civicgrid/internal/shared/logger"
)

// LocalMediaStorage stores media objects on the local filesystem under a
// configured base path and serves them from a public URL prefix. Object keys
// are opaque UUID-based names; the original filename only contributes its
// extension.
type LocalMediaStorage struct {
	basePath  string
	publicURL string
	logger    logger.Interface
}

func NewLocalMediaStorage(cfg config.StorageConfig, log logger.Interface) (*LocalMediaStorage, error) {
	if cfg.BasePath == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(cfg.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage base path: %w", err)
	}
	return &LocalMediaStorage{
		basePath:  cfg.BasePath,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		logger:    log.Named("media_storage"),
	}, nil
}

var _ usecases.MediaStorage = (*LocalMediaStorage)(nil)

// objectPath maps an object key onto the filesystem. Keys travel through
// clients between upload and attach, so the cleaned path must stay inside the
// base path; anything that escapes it is rejected.
func (s *LocalMediaStorage) objectPath(objectKey string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(objectKey))
	if clean == "." || clean == ".." || filepath.IsAbs(clean) ||
		strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid media object key %q", objectKey)
	}
	return filepath.Join(s.basePath, clean), nil
}

// Store writes the object and returns its public URL and object key.
func (s *LocalMediaStorage) Store(ctx context.Context, filename string, r io.Reader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	objectKey := path.Join("media", uuid.NewString()+ext)

	fullPath, err := s.objectPath(objectKey)
	if err != nil {
		return "", "", err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create media directory: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create media object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(fullPath)
		return "", "", fmt.Errorf("failed to write media object: %w", err)
	}

	s.logger.Debugw("stored media object", "object_key", objectKey)
	return s.publicURL + "/" + objectKey, objectKey, nil
}

// Delete removes the object. A missing object is not an error; deletion runs
// after the owning rows are already gone.
func (s *LocalMediaStorage) Delete(ctx context.Context, objectKey string) error {
	fullPath, err := s.objectPath(objectKey)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete media object: %w", err)
	}
	return nil
}
