package services

import (
	"context"

	"atelier/internal/domain/models/content"
)

// CategoryCard is a portfolio category with the number of projects filed under it
type CategoryCard struct {
	content.PortfolioCategory
	ProjectCount int `json:"projectCount"`
}

// PortfolioView is the portfolio section for one filter value
type PortfolioView struct {
	Filter     string         `json:"filter"`
	Filters    []string       `json:"filters"`
	Categories []CategoryCard `json:"categories"`
}

// CategoryDetail is one category with its projects, as shown in the gallery modal
type CategoryDetail struct {
	Category content.PortfolioCategory  `json:"category"`
	Projects []content.PortfolioProject `json:"projects"`
}

// HeroView is the hero section with the image to show when the carousel is empty
type HeroView struct {
	content.HeroContent
	PlaceholderImage string `json:"placeholderImage"`
}

// AboutView is the about section with its stats strip
type AboutView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageMain   string `json:"imageMain"`
	ImageSmall  string `json:"imageSmall"`
	Years       string `json:"statsYears"`
	Projects    string `json:"statsProjects"`
	Clients     string `json:"statsClients"`
}

// CTAView is the call-to-action banner. Title is sanitized HTML.
type CTAView struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	ButtonText string `json:"buttonText"`
	Image      string `json:"image"`
}

// ContactView is the footer contact block
type ContactView struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// SitePage aggregates every public section
type SitePage struct {
	Hero         HeroView              `json:"hero"`
	Services     []content.ServiceItem `json:"services"`
	Portfolio    PortfolioView         `json:"portfolio"`
	About        AboutView             `json:"about"`
	CTA          CTAView               `json:"cta"`
	Testimonials []content.Testimonial `json:"testimonials"`
	Clients      []content.ClientLogo  `json:"clients"`
	Articles     []content.Article     `json:"articles"`
	Contact      ContactView           `json:"contact"`
}

// SiteService builds read-only view models for the public site. Methods never
// fail on remote outages; they fall back to cached content and defaults.
type SiteService interface {
	Page(ctx context.Context) *SitePage
	Hero(ctx context.Context) HeroView
	Services(ctx context.Context) []content.ServiceItem
	// Portfolio returns categories matching filter ("All" or a main category)
	Portfolio(ctx context.Context, filter string) (*PortfolioView, error)
	// Category returns a category and its projects, or domain.ErrNotFound
	Category(ctx context.Context, id string) (*CategoryDetail, error)
	About(ctx context.Context) AboutView
	CTA(ctx context.Context) CTAView
	Testimonials(ctx context.Context) []content.Testimonial
	Clients(ctx context.Context) []content.ClientLogo
	Articles(ctx context.Context) []content.Article
	Contact(ctx context.Context) ContactView
}

// ViewAdmin and ViewSite are the two top-level screens of the single-page app
const (
	ViewAdmin = "admin"
	ViewSite  = "site"
)

// ResolveView maps a URL fragment to the screen it selects
func ResolveView(hash string) string {
	if hash == "#admin" {
		return ViewAdmin
	}
	return ViewSite
}
