package redisdb

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/domain"
	"atelier/internal/domain/models/content"
)

func setupTestRedis(t *testing.T) (*DocumentStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := NewDocumentStore(client, "test:", slog.New(slog.NewTextHandler(io.Discard, nil)))
	return store.(*DocumentStore), mr
}

func TestNewClientUnreachable(t *testing.T) {
	_, err := NewClient(context.Background(), "redis://127.0.0.1:1")
	assert.Error(t, err)

	_, err = NewClient(context.Background(), "://bad")
	assert.Error(t, err)
}

func TestCreateListInOrder(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	first, err := store.Create(ctx, content.CollectionServices, content.Fields{"title": "Curtains"})
	require.NoError(t, err)
	second, err := store.Create(ctx, content.CollectionServices, content.Fields{"title": "Blinds"})
	require.NoError(t, err)

	docs, err := store.List(ctx, content.CollectionServices)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, first, docs[0].ID)
	assert.Equal(t, second, docs[1].ID)
	assert.Equal(t, "Blinds", docs[1].Fields["title"])
}

func TestMergeIsShallowUpsert(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Merge(ctx, content.CollectionContent, content.SingletonGeneral, content.Fields{
		"general": map[string]interface{}{"ctaTitle": "A", "ctaSubtitle": "B"},
		"other":   "kept",
	}))
	require.NoError(t, store.Merge(ctx, content.CollectionContent, content.SingletonGeneral, content.Fields{
		"general": map[string]interface{}{"ctaTitle": "C"},
	}))

	doc, err := store.Get(ctx, content.CollectionContent, content.SingletonGeneral)
	require.NoError(t, err)
	assert.Equal(t, "kept", doc.Fields["other"])
	assert.Equal(t, map[string]interface{}{"ctaTitle": "C"}, doc.Fields["general"])
	assert.True(t, mr.Exists("test:docs:content"))
}

func TestGetMissingAndDelete(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	_, err := store.Get(ctx, content.CollectionClients, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	id, err := store.Create(ctx, content.CollectionClients, content.Fields{"name": "Acme"})
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, content.CollectionClients, id))
	require.NoError(t, store.Delete(ctx, content.CollectionClients, id))

	docs, err := store.List(ctx, content.CollectionClients)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestServerDownReturnsErrors(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.Close()

	_, err := store.List(context.Background(), content.CollectionClients)
	assert.Error(t, err)
}
