package storage

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxBytes int64) *LocalStore {
	s, err := NewLocalStore(Config{
		Dir:          t.TempDir(),
		BaseURL:      "http://localhost:8000/media/banners/",
		MaxBytes:     maxBytes,
		AllowedTypes: []string{"image/png", "image/jpeg"},
	})
	require.NoError(t, err)
	return s
}

func TestLocalStore_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, 1024)

	key, err := s.Save(ctx, "image/png", strings.NewReader("pngdata"))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(key))
	assert.Equal(t, "http://localhost:8000/media/banners/"+key, s.URL(key))
	assert.Equal(t, "image/png", ContentType(key))

	rc, err := s.Open(key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "pngdata", string(data))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Open(key)
	assert.Error(t, err)
	// Deleting twice is fine
	assert.NoError(t, s.Delete(ctx, key))
}

func TestLocalStore_Rejects(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, 4)

	t.Run("Unsupported type", func(t *testing.T) {
		_, err := s.Save(ctx, "application/pdf", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("Too large", func(t *testing.T) {
		_, err := s.Save(ctx, "image/jpeg", bytes.NewReader(make([]byte, 5)))
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("Path traversal", func(t *testing.T) {
		_, err := s.Open("../secret.png")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})
}
