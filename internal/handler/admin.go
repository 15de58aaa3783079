package handler

import (
	"context"
	"log/slog"
	"net/http"

	"atelier/internal/domain/models/content"
	"atelier/internal/domain/services"
	"atelier/internal/httputil"
)

// collectionHandler exposes one CollectionAdmin over REST
type collectionHandler[T any] struct {
	admin services.CollectionAdmin[T]
	// filtered serves GET with a ?filter= query, when the content type supports it
	filtered func(ctx context.Context, filter string) (interface{}, error)
	logger   *slog.Logger
}

type createdResponse struct {
	ID string `json:"id"`
}

// List handles GET /api/admin/{collection}
func (h *collectionHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	if filter := r.URL.Query().Get("filter"); filter != "" && h.filtered != nil {
		items, err := h.filtered(r.Context(), filter)
		if err != nil {
			handleError(w, h.logger, err)
			return
		}
		httputil.RespondJSON(w, http.StatusOK, items)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, h.admin.List(r.Context()))
}

// Create handles POST /api/admin/{collection}. The id is temporary until the
// store confirms the create.
func (h *collectionHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := httputil.ParseJSON(w, r, &item); err != nil {
		badRequest(w, h.logger, err)
		return
	}

	id, err := h.admin.Create(r.Context(), &item)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, createdResponse{ID: id})
}

// Update handles PATCH /api/admin/{collection}/{id}
func (h *collectionHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	var patch content.Fields
	if err := httputil.ParseJSON(w, r, &patch); err != nil {
		badRequest(w, h.logger, err)
		return
	}

	item, err := h.admin.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/admin/{collection}/{id}
func (h *collectionHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondNoContent(w)
}

// registerCollection mounts the four CRUD routes under /api/admin/<name>
func registerCollection[T any](mux *http.ServeMux, name string, guard func(http.Handler) http.Handler, h *collectionHandler[T]) {
	base := "/api/admin/" + name
	mux.Handle("GET "+base, guard(http.HandlerFunc(h.List)))
	mux.Handle("POST "+base, guard(http.HandlerFunc(h.Create)))
	mux.Handle("PATCH "+base+"/{id}", guard(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE "+base+"/{id}", guard(http.HandlerFunc(h.Delete)))
}

// SingletonHandler edits the home hero and general content
type SingletonHandler struct {
	home    services.HomeAdmin
	general services.GeneralAdmin
	logger  *slog.Logger
}

// NewSingletonHandler creates a handler for the singleton editors
func NewSingletonHandler(home services.HomeAdmin, general services.GeneralAdmin, logger *slog.Logger) *SingletonHandler {
	return &SingletonHandler{home: home, general: general, logger: logger}
}

// GET /api/admin/home
func (h *SingletonHandler) GetHome(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.home.GetHero(r.Context()))
}

// PUT /api/admin/home
func (h *SingletonHandler) SaveHome(w http.ResponseWriter, r *http.Request) {
	var hero content.HeroContent
	if err := httputil.ParseJSON(w, r, &hero); err != nil {
		badRequest(w, h.logger, err)
		return
	}
	saved, err := h.home.SaveHero(r.Context(), &hero)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, saved)
}

type heroImageRequest struct {
	URL string `json:"url"`
}

// POST /api/admin/home/images
func (h *SingletonHandler) AddHeroImage(w http.ResponseWriter, r *http.Request) {
	var req heroImageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequest(w, h.logger, err)
		return
	}
	saved, err := h.home.AddHeroImage(r.Context(), req.URL)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, saved)
}

// DELETE /api/admin/home/images/{index}
func (h *SingletonHandler) RemoveHeroImage(w http.ResponseWriter, r *http.Request) {
	index, err := httputil.PathIndex(r, "index")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	saved, err := h.home.RemoveHeroImage(r.Context(), index)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, saved)
}

// GET /api/admin/general
func (h *SingletonHandler) GetGeneral(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.general.GetGeneral(r.Context()))
}

// PUT /api/admin/general
func (h *SingletonHandler) SaveGeneral(w http.ResponseWriter, r *http.Request) {
	var general content.GeneralContent
	if err := httputil.ParseJSON(w, r, &general); err != nil {
		badRequest(w, h.logger, err)
		return
	}
	saved, err := h.general.SaveGeneral(r.Context(), &general)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, saved)
}
