package site

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/cache"
	"atelier/internal/defaults"
	"atelier/internal/domain"
	"atelier/internal/domain/models/content"
	"atelier/internal/domain/services"
	"atelier/internal/repository/memory"
	"atelier/internal/service/sanitizer"
)

func newTestService(t *testing.T) (services.SiteService, *memory.DocumentStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewDocumentStore()
	session := cache.NewSession(store, logger, cache.WithReferences(content.References...))
	t.Cleanup(session.Wait)
	return NewService(session, defaults.MustLoadSite(), sanitizer.NewInlineHTMLSanitizer(), logger), store
}

func seedPortfolio(store *memory.DocumentStore) {
	store.Put(content.CollectionCategories, "c1", content.Fields{"name": "Sheers", "mainCategory": "Curtains"})
	store.Put(content.CollectionCategories, "c2", content.Fields{"name": "Roman", "mainCategory": "Blinds"})
	store.Put(content.CollectionProjects, "p1", content.Fields{"categoryId": "c1", "title": "Linen", "url": "u1"})
	store.Put(content.CollectionProjects, "p2", content.Fields{"categoryId": "c1", "title": "Voile", "url": "u2"})
	store.Put(content.CollectionProjects, "p3", content.Fields{"categoryId": "c2", "title": "Study", "url": "u3"})
}

func TestServicesEmptyWhenStoreUnreachable(t *testing.T) {
	svc, store := newTestService(t)
	store.FailAll(errors.New("offline"))

	items := svc.Services(context.Background())
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestPortfolioFilter(t *testing.T) {
	svc, store := newTestService(t)
	seedPortfolio(store)

	tests := []struct {
		filter string
		want   []string
		counts []int
	}{
		{"", []string{"c1", "c2"}, []int{2, 1}},
		{"All", []string{"c1", "c2"}, []int{2, 1}},
		{"Blinds", []string{"c2"}, []int{1}},
		{"Furniture Covers", []string{}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			view, err := svc.Portfolio(context.Background(), tt.filter)
			require.NoError(t, err)
			ids := []string{}
			counts := []int{}
			for _, c := range view.Categories {
				ids = append(ids, c.ID)
				counts = append(counts, c.ProjectCount)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, tt.counts, counts)
			assert.Equal(t, []string{"All", "Curtains", "Blinds", "Furniture Covers"}, view.Filters)
		})
	}
}

func TestPortfolioUnknownFilter(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Portfolio(context.Background(), "Rugs")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCategoryDetail(t *testing.T) {
	svc, store := newTestService(t)
	seedPortfolio(store)

	detail, err := svc.Category(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Sheers", detail.Category.Name)
	assert.Len(t, detail.Projects, 2)

	_, err = svc.Category(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCTADefaultsWhenGeneralMissing(t *testing.T) {
	svc, _ := newTestService(t)

	cta := svc.CTA(context.Background())
	assert.Equal(t, `Let's Build Your <span class="text-brand-gold">Dream</span><br />Home Ambience`, cta.Title)
	assert.Equal(t, "Get Pricing", cta.ButtonText)
	assert.Equal(t, "https://picsum.photos/1920/1080?random=12", cta.Image)
}

func TestStoredGeneralOverridesDefaultsAndIsSanitized(t *testing.T) {
	svc, store := newTestService(t)
	store.Put(content.CollectionContent, content.SingletonGeneral, content.Fields{
		"general": map[string]interface{}{
			"ctaTitle":     `Hello <span class="text-brand-gold">World</span><script>x()</script>`,
			"contactEmail": "studio@example.com",
			"aboutTitle":   "Our Story",
		},
	})

	ctx := context.Background()
	assert.Equal(t, `Hello <span class="text-brand-gold">World</span>`, svc.CTA(ctx).Title)
	assert.Equal(t, "studio@example.com", svc.Contact(ctx).Email)
	assert.Equal(t, "250 Design Ave, NY 10012", svc.Contact(ctx).Address)
	assert.Equal(t, "Our Story", svc.About(ctx).Title)
	assert.Equal(t, "15+", svc.About(ctx).Years)
}

func TestHero(t *testing.T) {
	svc, store := newTestService(t)

	hero := svc.Hero(context.Background())
	assert.Empty(t, hero.Images)
	assert.NotEmpty(t, hero.PlaceholderImage)
	assert.Equal(t, "Your luxury interior design partner.", hero.Subtitle)

	store.Put(content.CollectionContent, content.SingletonHome, content.Fields{
		"hero": map[string]interface{}{"title": "Soft Light", "subtitle": "Made to measure", "images": []interface{}{"a.jpg"}},
	})
	svc2 := NewService(cache.NewSession(store, nil), defaults.MustLoadSite(), sanitizer.NewInlineHTMLSanitizer(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	hero = svc2.Hero(context.Background())
	assert.Equal(t, "Soft Light", hero.Title)
	assert.Equal(t, []string{"a.jpg"}, hero.Images)
}

func TestTestimonialDefaults(t *testing.T) {
	svc, store := newTestService(t)
	store.Put(content.CollectionTestimonials, "t1", content.Fields{"name": "Jane", "content": "Lovely"})
	store.Put(content.CollectionTestimonials, "t2", content.Fields{"name": "Ravi", "rating": 3, "image": "r.jpg"})

	items := svc.Testimonials(context.Background())
	require.Len(t, items, 2)
	assert.Equal(t, 5, items[0].Rating)
	assert.Equal(t, "https://via.placeholder.com/50", items[0].Image)
	assert.Equal(t, 3, items[1].Rating)
	assert.Equal(t, "r.jpg", items[1].Image)
}

func TestPageAggregatesSections(t *testing.T) {
	svc, store := newTestService(t)
	seedPortfolio(store)
	store.Put(content.CollectionClients, "k1", content.Fields{"name": "Acme", "logo": "a.png"})

	page := svc.Page(context.Background())
	assert.Len(t, page.Portfolio.Categories, 2)
	assert.Len(t, page.Clients, 1)
	assert.Len(t, page.Articles, 3)
	assert.Equal(t, "Get Pricing", page.CTA.ButtonText)
}

func TestResolveView(t *testing.T) {
	assert.Equal(t, services.ViewAdmin, services.ResolveView("#admin"))
	assert.Equal(t, services.ViewSite, services.ResolveView(""))
	assert.Equal(t, services.ViewSite, services.ResolveView("#portfolio"))
}
