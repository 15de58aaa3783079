// Package admin implements the CMS write path. Every change goes through the
// session cache, so edits show up immediately even when the store is down.
package admin

import (
	"log/slog"

	"atelier/internal/domain/models/content"
	"atelier/internal/domain/repositories"
	"atelier/internal/domain/services"
	"atelier/internal/service/sanitizer"
)

// Service groups the admin panels
type Service struct {
	Categories   services.CollectionAdmin[content.PortfolioCategory]
	Projects     services.CollectionAdmin[content.PortfolioProject]
	Services     services.CollectionAdmin[content.ServiceItem]
	Testimonials services.CollectionAdmin[content.Testimonial]
	Clients      services.CollectionAdmin[content.ClientLogo]
	Portfolio    services.PortfolioAdmin
	Home         services.HomeAdmin
	General      services.GeneralAdmin
}

// NewService wires every admin panel to cache
func NewService(cache repositories.ContentCache, htmlSanitizer *sanitizer.HTMLSanitizer, logger *slog.Logger) *Service {
	categories := newCollectionAdmin(cache, categoryKind(), logger)
	projects := newCollectionAdmin(cache, projectKind(), logger)
	singletons := &singletonAdmin{cache: cache, sanitizer: htmlSanitizer, logger: logger}

	return &Service{
		Categories:   categories,
		Projects:     projects,
		Services:     newCollectionAdmin(cache, serviceKind(), logger),
		Testimonials: newCollectionAdmin(cache, testimonialKind(), logger),
		Clients:      newCollectionAdmin(cache, clientKind(), logger),
		Portfolio:    &portfolioAdmin{categories: categories, projects: projects},
		Home:         singletons,
		General:      singletons,
	}
}
