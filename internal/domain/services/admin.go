package services

import (
	"context"

	"atelier/internal/domain/models/content"
)

// CollectionAdmin manages one list-style content type. Create returns the
// document id, which is temporary until the remote create reconciles.
type CollectionAdmin[T any] interface {
	List(ctx context.Context) []T
	Create(ctx context.Context, item *T) (string, error)
	// Update applies a partial change to an existing document
	Update(ctx context.Context, id string, patch content.Fields) (*T, error)
	// Delete drops the document; a *domain.RemoteDeleteError means the cache
	// was cleared but the store may still hold it.
	Delete(ctx context.Context, id string) error
}

// ProjectListItem is a project with its resolved category name
type ProjectListItem struct {
	content.PortfolioProject
	CategoryName string               `json:"categoryName"`
	MainCategory content.MainCategory `json:"mainCategory,omitempty"`
}

// PortfolioAdmin adds the admin-side portfolio listings
type PortfolioAdmin interface {
	// CategoriesByMain lists categories with project counts for a main-category tab
	CategoriesByMain(ctx context.Context, filter string) ([]CategoryCard, error)
	// ProjectsByMain lists projects whose category belongs to the tab
	ProjectsByMain(ctx context.Context, filter string) ([]ProjectListItem, error)
}

// HomeAdmin edits the hero singleton
type HomeAdmin interface {
	GetHero(ctx context.Context) content.HeroContent
	SaveHero(ctx context.Context, hero *content.HeroContent) (*content.HeroContent, error)
	AddHeroImage(ctx context.Context, url string) (*content.HeroContent, error)
	// RemoveHeroImage drops the image at index, or domain.ErrNotFound
	RemoveHeroImage(ctx context.Context, index int) (*content.HeroContent, error)
}

// GeneralAdmin edits the about/contact/CTA singleton
type GeneralAdmin interface {
	GetGeneral(ctx context.Context) content.GeneralContent
	SaveGeneral(ctx context.Context, general *content.GeneralContent) (*content.GeneralContent, error)
}
