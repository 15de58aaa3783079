package handler

import (
	"context"
	"log/slog"
	"net/http"

	"atelier/internal/domain/models/content"
	"atelier/internal/domain/services"
	"atelier/internal/service/admin"
)

// Dependencies are the services the HTTP surface is built on
type Dependencies struct {
	Site    services.SiteService
	Admin   *admin.Service
	Advice  services.AdviceService
	SignIn  services.SignInService
	Media   services.MediaService
	Backend string
}

// NewRouter registers every route (Go 1.22+ method patterns). adminGuard wraps
// the /api/admin routes, normally middleware.RequireAdmin.
func NewRouter(deps Dependencies, adminGuard func(http.Handler) http.Handler, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	health := NewHealthHandler(deps.Backend)
	site := NewSiteHandler(deps.Site, logger)
	advice := NewAdviceHandler(deps.Advice, logger)
	login := NewAuthHandler(deps.SignIn, logger)
	media := NewMediaHandler(deps.Media, logger)
	singletons := NewSingletonHandler(deps.Admin.Home, deps.Admin.General, logger)

	mux.HandleFunc("GET /health", health.HealthCheck)

	// Public site
	mux.HandleFunc("GET /api/site", site.GetPage)
	mux.HandleFunc("GET /api/site/hero", site.GetHero)
	mux.HandleFunc("GET /api/site/services", site.GetServices)
	mux.HandleFunc("GET /api/site/portfolio", site.GetPortfolio)
	mux.HandleFunc("GET /api/site/portfolio/categories/{id}", site.GetCategory)
	mux.HandleFunc("GET /api/site/about", site.GetAbout)
	mux.HandleFunc("GET /api/site/cta", site.GetCTA)
	mux.HandleFunc("GET /api/site/testimonials", site.GetTestimonials)
	mux.HandleFunc("GET /api/site/clients", site.GetClients)
	mux.HandleFunc("GET /api/site/articles", site.GetArticles)
	mux.HandleFunc("GET /api/site/contact", site.GetContact)
	mux.HandleFunc("GET /api/site/route", site.ResolveRoute)

	mux.HandleFunc("POST /api/advice", advice.GetAdvice)
	mux.HandleFunc("POST /api/auth/login", login.Login)

	// Admin collections
	portfolio := deps.Admin.Portfolio
	registerCollection(mux, "categories", adminGuard, &collectionHandler[content.PortfolioCategory]{
		admin: deps.Admin.Categories,
		filtered: func(ctx context.Context, filter string) (interface{}, error) {
			return portfolio.CategoriesByMain(ctx, filter)
		},
		logger: logger,
	})
	registerCollection(mux, "projects", adminGuard, &collectionHandler[content.PortfolioProject]{
		admin: deps.Admin.Projects,
		filtered: func(ctx context.Context, filter string) (interface{}, error) {
			return portfolio.ProjectsByMain(ctx, filter)
		},
		logger: logger,
	})
	registerCollection(mux, "services", adminGuard, &collectionHandler[content.ServiceItem]{admin: deps.Admin.Services, logger: logger})
	registerCollection(mux, "testimonials", adminGuard, &collectionHandler[content.Testimonial]{admin: deps.Admin.Testimonials, logger: logger})
	registerCollection(mux, "clients", adminGuard, &collectionHandler[content.ClientLogo]{admin: deps.Admin.Clients, logger: logger})

	// Admin singletons
	mux.Handle("GET /api/admin/home", adminGuard(http.HandlerFunc(singletons.GetHome)))
	mux.Handle("PUT /api/admin/home", adminGuard(http.HandlerFunc(singletons.SaveHome)))
	mux.Handle("POST /api/admin/home/images", adminGuard(http.HandlerFunc(singletons.AddHeroImage)))
	mux.Handle("DELETE /api/admin/home/images/{index}", adminGuard(http.HandlerFunc(singletons.RemoveHeroImage)))
	mux.Handle("GET /api/admin/general", adminGuard(http.HandlerFunc(singletons.GetGeneral)))
	mux.Handle("PUT /api/admin/general", adminGuard(http.HandlerFunc(singletons.SaveGeneral)))

	mux.Handle("POST /api/admin/media", adminGuard(http.HandlerFunc(media.Upload)))

	return mux
}
