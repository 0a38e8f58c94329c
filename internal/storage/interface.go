package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrTooLarge        = errors.New("file exceeds the upload size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrInvalidKey      = errors.New("invalid file key")
)

// BannerStore keeps banner images for workflow resources. Resources only
// store the returned URL in banner_url.
type BannerStore interface {
	// Save stores the content under a generated key and returns the key.
	Save(ctx context.Context, contentType string, r io.Reader) (string, error)
	// Open returns the stored content. The caller closes it.
	Open(key string) (io.ReadCloser, error)
	// URL returns the public URL of key.
	URL(key string) string
	Delete(ctx context.Context, key string) error
}
