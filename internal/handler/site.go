package handler

import (
	"log/slog"
	"net/http"

	"atelier/internal/domain/services"
	"atelier/internal/httputil"
)

// SiteHandler serves the public site sections
type SiteHandler struct {
	site   services.SiteService
	logger *slog.Logger
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(site services.SiteService, logger *slog.Logger) *SiteHandler {
	return &SiteHandler{site: site, logger: logger}
}

// GetPage returns every section in one response
// GET /api/site
func (h *SiteHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.site.Page(r.Context()))
}

// GET /api/site/hero
func (h *SiteHandler) GetHero(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.site.Hero(r.Context()))
}

// GET /api/site/services
func (h *SiteHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.site.Services(r.Context()))
}

// GetPortfolio returns categories for the filter query parameter
// GET /api/site/portfolio?filter=Blinds
func (h *SiteHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	view, err := h.site.Portfolio(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, view)
}

// GET /api/site/portfolio/categories/{id}
func (h *SiteHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	detail, err := h.site.Category(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, detail)
}

// GET /api/site/about
func (h *SiteHandler) GetAbout(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.site.About(r.Context()))
}

// GET /api/site/cta
func (h *SiteHandler) GetCTA(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.site.CTA(r.Context()))
}

// GET /api/site/testimonials
func (h *SiteHandler) GetTestimonials(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.site.Testimonials(r.Context()))
}

// GET /api/site/clients
func (h *SiteHandler) GetClients(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.site.Clients(r.Context()))
}

// GET /api/site/articles
func (h *SiteHandler) GetArticles(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.site.Articles(r.Context()))
}

// GET /api/site/contact
func (h *SiteHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.site.Contact(r.Context()))
}

// ResolveRoute tells the single-page shell which screen a URL fragment selects
// GET /api/site/route?hash=%23admin
func (h *SiteHandler) ResolveRoute(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"view": services.ResolveView(r.URL.Query().Get("hash")),
	})
}
