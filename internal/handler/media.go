package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/media"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/storage"
)

// MediaHandler serves objects from the local filesystem store. It is only
// registered when the local backend is active; the S3 backend serves
// objects itself.
type MediaHandler struct {
	store *storage.LocalStore
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(store *storage.LocalStore) *MediaHandler {
	return &MediaHandler{store: store}
}

// HandleGet serves one stored object.
// GET /media/{bucket}/{path...}
func (h *MediaHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	bucket := r.PathValue("bucket")
	path := r.PathValue("path")
	if bucket == "" || path == "" {
		http.NotFound(w, r)
		return
	}

	data, err := h.store.Open(bucket, path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			http.NotFound(w, r)
			return
		}
		slog.Error("serve media object", "bucket", bucket, "path", path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Content type comes from the stored bytes, not the file extension.
	w.Header().Set("Content-Type", media.DetectFormat(data).Format.MIMEType())
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
