package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/service"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/storage"
)

// maxUploadBody caps a whole multipart request; per-file limits are
// enforced by the upload policy.
const maxUploadBody = 64 << 20 // 64MB

// UploadHandler exposes the image pipeline over HTTP.
type UploadHandler struct {
	images  *service.ImageService
	quality int
	speed   int
}

// NewUploadHandler creates a new UploadHandler. quality and speed tune
// the encoder for every batch; zero values fall back to the pipeline
// defaults.
func NewUploadHandler(images *service.ImageService, quality, speed int) *UploadHandler {
	return &UploadHandler{images: images, quality: quality, speed: speed}
}

// HandleUpload processes a multipart batch upload.
// POST /api/admin/images/{kind} where kind is "profile" or "projects".
// Files are submitted as repeated "files" fields; an optional "folder"
// field groups the stored objects under a key prefix.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	policy, ok := policyForKind(r.PathValue("kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown upload target.")
		return
	}
	policy.Transcode.Quality = h.quality
	policy.Transcode.Speed = h.speed

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or oversized multipart body.")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "No files submitted.")
		return
	}

	files := make([]service.UploadCandidate, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			slog.Error("open multipart file", "file", header.Filename, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to read upload.")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			slog.Error("read multipart file", "file", header.Filename, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to read upload.")
			return
		}
		files = append(files, service.UploadCandidate{
			Name:         header.Filename,
			DeclaredMIME: header.Header.Get("Content-Type"),
			DeclaredSize: header.Size,
			Data:         data,
		})
	}

	result, err := h.images.UploadBatch(r.Context(), files, r.FormValue("folder"), policy)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		// Storage details stay in the server log; the client gets a
		// generic failure.
		slog.Error("batch upload", "error", err)
		writeError(w, http.StatusInternalServerError, "Upload failed.")
		return
	}

	urls := make([]string, len(result.Objects))
	paths := make([]string, len(result.Objects))
	for i, object := range result.Objects {
		urls[i] = object.PublicURL
		paths[i] = object.Path
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":         "Upload complete.",
		"files":           urls,
		"paths":           paths,
		"conversionStats": toConversionStatsDTO(result.Stats),
	})
}

// HandleDelete removes a stored object by its public URL.
// DELETE /api/admin/images with body {"imageUrl": "..."}.
func (h *UploadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := readJSON(r, &req); err != nil || req.ImageURL == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	bucket, path := resolveBucket(req.ImageURL)
	if path == "" {
		writeError(w, http.StatusBadRequest, "No stored object is recoverable from that URL.")
		return
	}

	if err := h.images.DeleteByPublicURL(r.Context(), req.ImageURL, bucket); err != nil {
		slog.Error("delete image", "url", req.ImageURL, "error", err)
		writeError(w, http.StatusInternalServerError, "Deletion failed.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Image deleted.",
		"deletedUrl": req.ImageURL,
	})
}

func policyForKind(kind string) (service.UploadPolicy, bool) {
	switch kind {
	case "profile":
		return service.ProfileUploadPolicy(), true
	case "projects":
		return service.ProjectUploadPolicy(), true
	}
	return service.UploadPolicy{}, false
}

// resolveBucket determines which bucket a public URL belongs to by trying
// each known bucket's path extraction.
func resolveBucket(publicURL string) (bucket, path string) {
	for _, b := range []string{storage.ProjectBucket, storage.ProfileBucket} {
		if p := storage.ExtractPath(publicURL, b); p != "" {
			return b, p
		}
	}
	return "", ""
}
