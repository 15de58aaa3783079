package site

import (
	"fmt"

	"atelier/internal/domain"
	"atelier/internal/domain/models/content"
	"atelier/internal/domain/services"
)

// Filters lists the portfolio tabs in display order
func Filters() []string {
	out := []string{content.FilterAll}
	for _, m := range content.MainCategories {
		out = append(out, string(m))
	}
	return out
}

// ParseFilter normalizes a filter value; empty means All
func ParseFilter(filter string) (string, error) {
	if filter == "" || filter == content.FilterAll {
		return content.FilterAll, nil
	}
	if !content.MainCategory(filter).Valid() {
		return "", fmt.Errorf("%w: unknown portfolio filter %q", domain.ErrValidation, filter)
	}
	return filter, nil
}

// MatchesFilter reports whether a category belongs to the filter tab
func MatchesFilter(c content.PortfolioCategory, filter string) bool {
	return filter == content.FilterAll || string(c.MainCategory) == filter
}

// CountProjects returns the number of projects per category id
func CountProjects(projects []content.PortfolioProject) map[string]int {
	counts := make(map[string]int, len(projects))
	for _, p := range projects {
		counts[p.CategoryID]++
	}
	return counts
}

func portfolioView(filter string, categories []content.PortfolioCategory, projects []content.PortfolioProject) (*services.PortfolioView, error) {
	filter, err := ParseFilter(filter)
	if err != nil {
		return nil, err
	}

	counts := CountProjects(projects)
	cards := make([]services.CategoryCard, 0, len(categories))
	for _, c := range categories {
		if !MatchesFilter(c, filter) {
			continue
		}
		cards = append(cards, services.CategoryCard{PortfolioCategory: c, ProjectCount: counts[c.ID]})
	}

	return &services.PortfolioView{
		Filter:     filter,
		Filters:    Filters(),
		Categories: cards,
	}, nil
}
