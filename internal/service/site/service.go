// Package site builds the public site's view models from the session cache.
package site

import (
	"context"
	"fmt"
	"log/slog"

	"atelier/internal/defaults"
	"atelier/internal/domain"
	"atelier/internal/domain/models/content"
	"atelier/internal/domain/repositories"
	"atelier/internal/domain/services"
	"atelier/internal/service/sanitizer"
)

// siteService implements the SiteService interface
type siteService struct {
	cache     repositories.ContentCache
	defaults  *defaults.Site
	sanitizer *sanitizer.HTMLSanitizer
	logger    *slog.Logger
}

// NewService creates a site service reading through cache
func NewService(
	cache repositories.ContentCache,
	siteDefaults *defaults.Site,
	htmlSanitizer *sanitizer.HTMLSanitizer,
	logger *slog.Logger,
) services.SiteService {
	return &siteService{
		cache:     cache,
		defaults:  siteDefaults,
		sanitizer: htmlSanitizer,
		logger:    logger,
	}
}

// Page builds every section, reading each collection and singleton once
func (s *siteService) Page(ctx context.Context) *services.SitePage {
	general := s.general(ctx)
	categories := s.categories(ctx)
	projects := s.projects(ctx)

	portfolio, _ := portfolioView(content.FilterAll, categories, projects)

	return &services.SitePage{
		Hero:         s.Hero(ctx),
		Services:     s.Services(ctx),
		Portfolio:    *portfolio,
		About:        aboutView(general),
		CTA:          s.ctaView(general),
		Testimonials: s.Testimonials(ctx),
		Clients:      s.Clients(ctx),
		Articles:     s.Articles(ctx),
		Contact:      contactView(general),
	}
}

// Hero returns the stored hero with defaults applied
func (s *siteService) Hero(ctx context.Context) services.HeroView {
	hero := content.HeroContent{}
	if stored := s.singleton(ctx, content.SingletonHome); stored != nil && stored.Hero != nil {
		hero = *stored.Hero
	}
	return services.HeroView{
		HeroContent:      s.defaults.WithHero(hero),
		PlaceholderImage: s.defaults.HeroPlaceholderImage,
	}
}

// Services lists the offered services
func (s *siteService) Services(ctx context.Context) []content.ServiceItem {
	return decodeCollection[content.ServiceItem](ctx, s, content.CollectionServices)
}

// Portfolio lists categories for the filter with project counts
func (s *siteService) Portfolio(ctx context.Context, filter string) (*services.PortfolioView, error) {
	return portfolioView(filter, s.categories(ctx), s.projects(ctx))
}

// Category returns a category and the projects filed under it
func (s *siteService) Category(ctx context.Context, id string) (*services.CategoryDetail, error) {
	for _, c := range s.categories(ctx) {
		if c.ID != id {
			continue
		}
		detail := &services.CategoryDetail{Category: c, Projects: []content.PortfolioProject{}}
		for _, p := range s.projects(ctx) {
			if p.CategoryID == id {
				detail.Projects = append(detail.Projects, p)
			}
		}
		return detail, nil
	}
	return nil, &domain.NotFoundError{Message: fmt.Sprintf("category %s not found", id)}
}

// About returns the about section
func (s *siteService) About(ctx context.Context) services.AboutView {
	return aboutView(s.general(ctx))
}

// CTA returns the call-to-action banner
func (s *siteService) CTA(ctx context.Context) services.CTAView {
	return s.ctaView(s.general(ctx))
}

// Testimonials lists reviews; a missing image or rating gets the default
func (s *siteService) Testimonials(ctx context.Context) []content.Testimonial {
	items := decodeCollection[content.Testimonial](ctx, s, content.CollectionTestimonials)
	for i := range items {
		if items[i].Image == "" {
			items[i].Image = s.defaults.TestimonialImage
		}
		if items[i].Rating == 0 {
			items[i].Rating = s.defaults.TestimonialRating
		}
	}
	return items
}

// Clients lists the trusted-by logos
func (s *siteService) Clients(ctx context.Context) []content.ClientLogo {
	return decodeCollection[content.ClientLogo](ctx, s, content.CollectionClients)
}

// Articles returns the static blog teasers
func (s *siteService) Articles(ctx context.Context) []content.Article {
	out := make([]content.Article, len(s.defaults.Articles))
	copy(out, s.defaults.Articles)
	return out
}

// Contact returns the footer contact block
func (s *siteService) Contact(ctx context.Context) services.ContactView {
	return contactView(s.general(ctx))
}

func (s *siteService) singleton(ctx context.Context, id string) *content.SiteContent {
	doc := s.cache.FetchSingleton(ctx, content.CollectionContent, id)
	if doc == nil {
		return nil
	}
	stored, err := content.Decode[content.SiteContent](*doc)
	if err != nil {
		s.logger.Warn("malformed site content, using defaults",
			"id", id,
			"error", err,
		)
		return nil
	}
	return &stored
}

func (s *siteService) general(ctx context.Context) content.GeneralContent {
	general := content.GeneralContent{}
	if stored := s.singleton(ctx, content.SingletonGeneral); stored != nil && stored.General != nil {
		general = *stored.General
		general.CtaTitle = s.sanitizer.Sanitize(general.CtaTitle)
		general.CtaButtonText = s.sanitizer.Sanitize(general.CtaButtonText)
	}
	return s.defaults.WithGeneral(general)
}

func (s *siteService) categories(ctx context.Context) []content.PortfolioCategory {
	return decodeCollection[content.PortfolioCategory](ctx, s, content.CollectionCategories)
}

func (s *siteService) projects(ctx context.Context) []content.PortfolioProject {
	return decodeCollection[content.PortfolioProject](ctx, s, content.CollectionProjects)
}

func (s *siteService) ctaView(g content.GeneralContent) services.CTAView {
	return services.CTAView{
		Title:      g.CtaTitle,
		Subtitle:   g.CtaSubtitle,
		ButtonText: g.CtaButtonText,
		Image:      g.CtaImage,
	}
}

func decodeCollection[T any](ctx context.Context, s *siteService, collection string) []T {
	items, skipped := content.DecodeAll[T](s.cache.FetchCollection(ctx, collection))
	if skipped > 0 {
		s.logger.Warn("skipped malformed documents",
			"collection", collection,
			"count", skipped,
		)
	}
	return items
}

func aboutView(g content.GeneralContent) services.AboutView {
	return services.AboutView{
		Title:       g.AboutTitle,
		Description: g.AboutDescription,
		ImageMain:   g.AboutImageMain,
		ImageSmall:  g.AboutImageSmall,
		Years:       g.StatsYears,
		Projects:    g.StatsProjects,
		Clients:     g.StatsClients,
	}
}

func contactView(g content.GeneralContent) services.ContactView {
	return services.ContactView{
		Email:   g.ContactEmail,
		Phone:   g.ContactPhone,
		Address: g.ContactAddress,
	}
}
