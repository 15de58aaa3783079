// Package seed writes the embedded sample content into a document store.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	loremgen "github.com/bozaro/golorem"

	"atelier/internal/defaults"
	"atelier/internal/domain"
	"atelier/internal/domain/models/content"
	"atelier/internal/domain/repositories"
)

// Options controls a seeding run
type Options struct {
	// Clear deletes every existing document first
	Clear bool
	// Samples writes the sample documents and site copy
	Samples bool
}

// Report counts the documents written per collection
type Report struct {
	Cleared int
	Created map[string]int
}

// Seeder writes sample documents straight to the store, bypassing the session
// cache so that projects can reference the real category ids.
type Seeder struct {
	store  repositories.DocumentStore
	tx     repositories.TransactionManager
	lorem  *loremgen.Lorem
	logger *slog.Logger
}

// NewSeeder creates a seeder. tx may be nil for stores without transactions.
func NewSeeder(store repositories.DocumentStore, tx repositories.TransactionManager, logger *slog.Logger) *Seeder {
	return &Seeder{
		store:  store,
		tx:     tx,
		lorem:  loremgen.New(),
		logger: logger,
	}
}

// Run seeds samples and site when opts.Samples is set. Collections that already hold documents are
// left alone unless opts.Clear is set.
func (s *Seeder) Run(ctx context.Context, samples *defaults.Samples, site *defaults.Site, opts Options) (*Report, error) {
	report := &Report{Created: map[string]int{}}

	run := func(ctx context.Context) error {
		if opts.Clear {
			n, err := s.clear(ctx)
			if err != nil {
				return err
			}
			report.Cleared = n
		}
		if !opts.Samples {
			return nil
		}
		return s.seed(ctx, samples, site, report)
	}

	if s.tx != nil {
		if err := s.tx.ExecTx(ctx, run); err != nil {
			return nil, err
		}
		return report, nil
	}
	if err := run(ctx); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Seeder) clear(ctx context.Context) (int, error) {
	cleared := 0
	for _, coll := range append([]string{content.CollectionContent}, content.Collections...) {
		docs, err := s.store.List(ctx, coll)
		if err != nil {
			return cleared, fmt.Errorf("list %s: %w", coll, err)
		}
		for _, doc := range docs {
			if err := s.store.Delete(ctx, coll, doc.ID); err != nil {
				return cleared, fmt.Errorf("delete %s/%s: %w", coll, doc.ID, err)
			}
			cleared++
		}
	}
	s.logger.Info("store cleared", "documents", cleared)
	return cleared, nil
}

func (s *Seeder) seed(ctx context.Context, samples *defaults.Samples, site *defaults.Site, report *Report) error {
	categoryIDs := map[string]string{}
	if err := seedCollection(ctx, s, content.CollectionCategories, samples.Categories, report, func(c *content.PortfolioCategory) {
		if c.Description == "" {
			c.Description = s.lorem.Sentence(8, 16)
		}
	}, func(c content.PortfolioCategory, id string) {
		categoryIDs[c.ID] = id
	}); err != nil {
		return err
	}

	if err := seedCollection(ctx, s, content.CollectionProjects, samples.Projects, report, func(p *content.PortfolioProject) {
		if id, ok := categoryIDs[p.CategoryID]; ok {
			p.CategoryID = id
		}
	}, nil); err != nil {
		return err
	}

	if err := seedCollection(ctx, s, content.CollectionServices, samples.Services, report, func(svc *content.ServiceItem) {
		if svc.Description == "" {
			svc.Description = s.lorem.Paragraph(2, 3)
		}
	}, nil); err != nil {
		return err
	}

	if err := seedCollection(ctx, s, content.CollectionTestimonials, samples.Testimonials, report, func(t *content.Testimonial) {
		if t.Content == "" {
			t.Content = s.lorem.Sentence(12, 24)
		}
	}, nil); err != nil {
		return err
	}

	if err := seedCollection(ctx, s, content.CollectionClients, samples.Clients, report, nil, nil); err != nil {
		return err
	}

	if err := s.seedSingleton(ctx, content.SingletonHome, "hero", samples.Hero, report); err != nil {
		return err
	}
	return s.seedSingleton(ctx, content.SingletonGeneral, "general", site.General, report)
}

// seedCollection creates items in an empty collection. prepare runs before the
// write; created receives the original item and its new id.
func seedCollection[T any](
	ctx context.Context,
	s *Seeder,
	collection string,
	items []T,
	report *Report,
	prepare func(*T),
	created func(T, string),
) error {
	existing, err := s.store.List(ctx, collection)
	if err != nil {
		return fmt.Errorf("list %s: %w", collection, err)
	}
	if len(existing) > 0 {
		s.logger.Info("collection not empty, skipping", "collection", collection, "documents", len(existing))
		return nil
	}

	for _, item := range items {
		original := item
		if prepare != nil {
			prepare(&item)
		}
		fields, err := content.FieldsFrom(&item)
		if err != nil {
			return err
		}
		id, err := s.store.Create(ctx, collection, fields)
		if err != nil {
			return fmt.Errorf("create %s document: %w", collection, err)
		}
		if created != nil {
			created(original, id)
		}
		report.Created[collection]++
	}

	s.logger.Info("collection seeded", "collection", collection, "documents", report.Created[collection])
	return nil
}

func (s *Seeder) seedSingleton(ctx context.Context, id, key string, value interface{}, report *Report) error {
	_, err := s.store.Get(ctx, content.CollectionContent, id)
	if err == nil {
		s.logger.Info("singleton exists, skipping", "id", id)
		return nil
	}
	if !domain.IsNotFound(err) {
		return fmt.Errorf("read content/%s: %w", id, err)
	}

	fields, err := content.FieldsFrom(value)
	if err != nil {
		return err
	}
	if err := s.store.Merge(ctx, content.CollectionContent, id, content.Fields{key: map[string]interface{}(fields)}); err != nil {
		return fmt.Errorf("write content/%s: %w", id, err)
	}
	report.Created[content.CollectionContent]++
	return nil
}
