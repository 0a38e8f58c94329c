package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"unimitr-backend/internal/logger"

	"github.com/google/uuid"
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// LocalStore implements BannerStore on the local filesystem
type LocalStore struct {
	cfg Config
}

// NewLocalStore creates the upload directory if it does not exist
func NewLocalStore(cfg Config) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{cfg: cfg}, nil
}

func (s *LocalStore) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.cfg.Dir, key), nil
}

func (s *LocalStore) Save(ctx context.Context, contentType string, r io.Reader) (string, error) {
	if !s.cfg.Allows(contentType) {
		return "", ErrUnsupportedType
	}
	ext, ok := extensions[contentType]
	if !ok {
		ext = ".bin"
	}
	key := uuid.New().String() + ext
	fullPath := filepath.Join(s.cfg.Dir, key)

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	src := r
	if s.cfg.MaxBytes > 0 {
		// One byte over the limit is enough to detect an oversized upload.
		src = io.LimitReader(r, s.cfg.MaxBytes+1)
	}
	n, err := io.Copy(file, src)
	if err == nil && s.cfg.MaxBytes > 0 && n > s.cfg.MaxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		file.Close()
		os.Remove(fullPath)
		if err == ErrTooLarge {
			return "", err
		}
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	logger.Debug("Banner stored", "key", key, "bytes", n)
	return key, nil
}

func (s *LocalStore) Open(key string) (io.ReadCloser, error) {
	fullPath, err := s.path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(fullPath)
}

func (s *LocalStore) URL(key string) string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/" + key
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	fullPath, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// ContentType guesses the MIME type from a stored key's extension
func ContentType(key string) string {
	ext := filepath.Ext(key)
	for ct, e := range extensions {
		if e == ext {
			return ct
		}
	}
	return "application/octet-stream"
}
