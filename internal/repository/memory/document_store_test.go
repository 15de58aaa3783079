package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/domain"
	"atelier/internal/domain/models/content"
)

func TestDocumentStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	id, err := store.Create(ctx, "clients", content.Fields{"name": "Acme", "id": "ignored"})
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", id)

	require.NoError(t, store.Merge(ctx, "clients", id, content.Fields{"logo": "l.png"}))

	doc, err := store.Get(ctx, "clients", id)
	require.NoError(t, err)
	assert.Equal(t, content.Fields{"name": "Acme", "logo": "l.png"}, doc.Fields)

	require.NoError(t, store.Delete(ctx, "clients", id))
	require.NoError(t, store.Delete(ctx, "clients", id))

	_, err = store.Get(ctx, "clients", id)
	assert.True(t, domain.IsNotFound(err))
}

func TestDocumentStoreListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()
	store.Put("services", "b", content.Fields{"title": "B"})
	store.Put("services", "a", content.Fields{"title": "A"})
	store.Put("services", "c", content.Fields{"title": "C"})
	require.NoError(t, store.Delete(ctx, "services", "a"))

	docs, err := store.List(ctx, "services")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b", docs[0].ID)
	assert.Equal(t, "c", docs[1].ID)
}

func TestDocumentStoreFailureInjection(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()
	boom := errors.New("boom")

	store.Fail(OpList, boom)
	_, err := store.List(ctx, "x")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, store.Calls(OpList))

	store.Fail(OpList, nil)
	_, err = store.List(ctx, "x")
	assert.NoError(t, err)
}
