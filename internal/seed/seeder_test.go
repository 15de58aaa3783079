package seed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/defaults"
	"atelier/internal/domain/models/content"
	"atelier/internal/domain/repositories"
	"atelier/internal/repository/memory"
)

func newSeeder(store *memory.DocumentStore, tx repositories.TransactionManager) *Seeder {
	return NewSeeder(store, tx, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func loadFixtures(t *testing.T) (*defaults.Samples, *defaults.Site) {
	t.Helper()
	samples, err := defaults.LoadSamples()
	require.NoError(t, err)
	site, err := defaults.LoadSite()
	require.NoError(t, err)
	return samples, site
}

func TestRunSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	samples, site := loadFixtures(t)

	report, err := newSeeder(store, nil).Run(ctx, samples, site, Options{Samples: true})
	require.NoError(t, err)

	assert.Equal(t, len(samples.Categories), report.Created[content.CollectionCategories])
	assert.Equal(t, len(samples.Projects), store.Len(content.CollectionProjects))
	assert.Equal(t, 2, report.Created[content.CollectionContent])

	categories, err := store.List(ctx, content.CollectionCategories)
	require.NoError(t, err)
	ids := map[string]bool{}
	for _, c := range categories {
		ids[c.ID] = true
		assert.NotEmpty(t, c.Fields["description"])
	}

	projects, err := store.List(ctx, content.CollectionProjects)
	require.NoError(t, err)
	for _, p := range projects {
		assert.True(t, ids[p.Fields["categoryId"].(string)], "project points at a seeded category")
	}

	home, err := store.Get(ctx, content.CollectionContent, content.SingletonHome)
	require.NoError(t, err)
	assert.Contains(t, home.Fields, "hero")
}

func TestRunSkipsPopulatedCollections(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	store.Put(content.CollectionClients, "existing", content.Fields{"name": "Acme"})
	samples, site := loadFixtures(t)

	report, err := newSeeder(store, nil).Run(ctx, samples, site, Options{Samples: true})
	require.NoError(t, err)

	assert.Zero(t, report.Created[content.CollectionClients])
	assert.Equal(t, 1, store.Len(content.CollectionClients))
}

func TestRunClearReplacesContent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	store.Put(content.CollectionClients, "existing", content.Fields{"name": "Acme"})
	samples, site := loadFixtures(t)

	report, err := newSeeder(store, nil).Run(ctx, samples, site, Options{Clear: true, Samples: true})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Cleared)
	_, err = store.Get(ctx, content.CollectionClients, "existing")
	assert.Error(t, err)
	assert.Equal(t, len(samples.Clients), store.Len(content.CollectionClients))
}

type recordingTx struct{ calls int }

func (r *recordingTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	r.calls++
	return fn(ctx)
}

func TestRunUsesTransactionWhenAvailable(t *testing.T) {
	store := memory.NewDocumentStore()
	tx := &recordingTx{}
	samples, site := loadFixtures(t)

	_, err := newSeeder(store, tx).Run(context.Background(), samples, site, Options{Samples: true})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
}

func TestRunStopsOnStoreError(t *testing.T) {
	store := memory.NewDocumentStore()
	boom := errors.New("boom")
	store.Fail(memory.OpCreate, boom)
	samples, site := loadFixtures(t)

	_, err := newSeeder(store, nil).Run(context.Background(), samples, site, Options{Samples: true})
	assert.ErrorIs(t, err, boom)
}

func TestRunClearOnly(t *testing.T) {
	store := memory.NewDocumentStore()
	store.Put(content.CollectionClients, "existing", content.Fields{"name": "Acme"})
	samples, site := loadFixtures(t)

	report, err := newSeeder(store, nil).Run(context.Background(), samples, site, Options{Clear: true})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Cleared)
	assert.Empty(t, report.Created)
	assert.Zero(t, store.Len(content.CollectionClients))
}
