package http

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"

	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/storage"

	"github.com/gorilla/mux"
)

// UploadHandler stores banner images and serves them back.
type UploadHandler struct {
	store    storage.BannerStore
	maxBytes int64
}

func NewUploadHandler(store storage.BannerStore, maxBytes int64) *UploadHandler {
	return &UploadHandler{store: store, maxBytes: maxBytes}
}

// UploadBanner accepts a multipart "file" field and returns the URL to put in bannerUrl.
func (h *UploadHandler) UploadBanner(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<16)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	// The declared part type is only trusted when the leading bytes agree.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		writeDetail(w, http.StatusBadRequest, "Could not read file")
		return
	}
	head = head[:n]
	contentType, _, _ := mime.ParseMediaType(http.DetectContentType(head))
	if declared, _, _ := mime.ParseMediaType(header.Header.Get("Content-Type")); declared != "" && declared != "application/octet-stream" && declared != contentType {
		logger.Warn("Upload content type mismatch", "declared", declared, "detected", contentType)
		writeDetail(w, http.StatusBadRequest, "Invalid content type")
		return
	}

	key, err := h.store.Save(r.Context(), contentType, io.MultiReader(bytes.NewReader(head), file))
	switch {
	case errors.Is(err, storage.ErrUnsupportedType):
		writeDetail(w, http.StatusBadRequest, "Invalid content type")
		return
	case errors.Is(err, storage.ErrTooLarge):
		writeDetail(w, http.StatusBadRequest, "File too large")
		return
	case err != nil:
		writeError(w, r, err)
		return
	}

	logger.Info("Banner uploaded", "key", key, "contentType", contentType)
	writeJSON(w, http.StatusCreated, map[string]string{"key": key, "url": h.store.URL(key)})
}

func (h *UploadHandler) ServeBanner(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	file, err := h.store.Open(key)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "File not found")
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", storage.ContentType(key))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := io.Copy(w, file); err != nil {
		logger.Warn("Failed to stream banner", "key", key, "error", err)
	}
}

// DeleteBanner removes a stored banner. Records that still point at it keep
// their bannerUrl.
func (h *UploadHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	file, err := h.store.Open(key)
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	file.Close()

	if err := h.store.Delete(r.Context(), key); err != nil {
		writeError(w, r, err)
		return
	}
	logger.Info("Banner deleted", "key", key)
	w.WriteHeader(http.StatusNoContent)
}
