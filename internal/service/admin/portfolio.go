package admin

import (
	"context"

	"atelier/internal/domain/models/content"
	"atelier/internal/domain/services"
	"atelier/internal/service/site"
)

// portfolioAdmin implements the admin portfolio tabs
type portfolioAdmin struct {
	categories services.CollectionAdmin[content.PortfolioCategory]
	projects   services.CollectionAdmin[content.PortfolioProject]
}

// CategoriesByMain lists categories of a tab with their project counts
func (p *portfolioAdmin) CategoriesByMain(ctx context.Context, filter string) ([]services.CategoryCard, error) {
	filter, err := site.ParseFilter(filter)
	if err != nil {
		return nil, err
	}

	counts := site.CountProjects(p.projects.List(ctx))
	cards := []services.CategoryCard{}
	for _, c := range p.categories.List(ctx) {
		if site.MatchesFilter(c, filter) {
			cards = append(cards, services.CategoryCard{PortfolioCategory: c, ProjectCount: counts[c.ID]})
		}
	}
	return cards, nil
}

// ProjectsByMain lists projects of a tab. Projects pointing at a missing
// category are labelled Uncategorized and only appear under All.
func (p *portfolioAdmin) ProjectsByMain(ctx context.Context, filter string) ([]services.ProjectListItem, error) {
	filter, err := site.ParseFilter(filter)
	if err != nil {
		return nil, err
	}

	byID := map[string]content.PortfolioCategory{}
	for _, c := range p.categories.List(ctx) {
		byID[c.ID] = c
	}

	items := []services.ProjectListItem{}
	for _, proj := range p.projects.List(ctx) {
		item := services.ProjectListItem{PortfolioProject: proj, CategoryName: content.UncategorizedLabel}
		cat, ok := byID[proj.CategoryID]
		if ok {
			item.CategoryName = cat.Name
			item.MainCategory = cat.MainCategory
		}
		if filter != content.FilterAll && (!ok || string(cat.MainCategory) != filter) {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
