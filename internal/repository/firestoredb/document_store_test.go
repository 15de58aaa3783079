package firestoredb

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/domain"
	"atelier/internal/domain/models/content"
)

// Requires the Firestore emulator (gcloud emulators firestore start).
func newEmulatorStore(t *testing.T) (*DocumentStore, string) {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := NewClient(context.Background(), Config{ProjectID: "atelier-test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := NewDocumentStore(client, slog.New(slog.NewTextHandler(io.Discard, nil))).(*DocumentStore)
	return store, "clients_" + uuid.NewString()[:8]
}

func TestNewClientRequiresProject(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestToDataStripsID(t *testing.T) {
	data := toData(content.Fields{"id": "x", "name": "Acme"})
	assert.Equal(t, map[string]interface{}{"name": "Acme"}, data)
}

func TestEmulatorRoundTrip(t *testing.T) {
	store, collection := newEmulatorStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, collection, content.Fields{"name": "Acme", "meta": map[string]interface{}{"a": "1", "b": "2"}})
	require.NoError(t, err)

	require.NoError(t, store.Merge(ctx, collection, id, content.Fields{"meta": map[string]interface{}{"a": "3"}}))

	doc, err := store.Get(ctx, collection, id)
	require.NoError(t, err)
	assert.Equal(t, "Acme", doc.Fields["name"])
	assert.Equal(t, map[string]interface{}{"a": "3"}, doc.Fields["meta"])

	docs, err := store.List(ctx, collection)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	require.NoError(t, store.Delete(ctx, collection, id))
	_, err = store.Get(ctx, collection, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
