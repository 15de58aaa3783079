package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"atelier/internal/config"
	"atelier/internal/domain/models/content"
	"atelier/internal/domain/services"
	"atelier/internal/httputil"
)

// MediaHandler accepts admin image uploads
type MediaHandler struct {
	media  services.MediaService
	logger *slog.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(media services.MediaService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{media: media, logger: logger}
}

// Upload stores the multipart "file" field and returns its public URL. The
// optional "collection" field picks the key prefix (defaults to content).
// POST /api/admin/media
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Headroom over the file limit for multipart framing
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		badRequest(w, h.logger, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	collection := strings.TrimSpace(r.FormValue("collection"))
	if collection == "" {
		collection = content.CollectionContent
	}

	url, err := h.media.Upload(r.Context(), collection, &services.UploadedFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]string{"url": url})
}
