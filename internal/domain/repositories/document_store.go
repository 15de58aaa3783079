package repositories

import (
	"context"

	"atelier/internal/domain/models/content"
)

// DocumentStore is the client of the hosted document database. Collections are
// unordered sets of documents with server-generated ids; singletons are plain
// documents addressed by a fixed id. Implementations carry no business logic
// and return every transport or permission failure to the caller.
type DocumentStore interface {
	// List returns every document in the collection
	List(ctx context.Context, collection string) ([]content.Document, error)

	// Get returns one document, or an error wrapping domain.ErrNotFound when absent
	Get(ctx context.Context, collection, id string) (*content.Document, error)

	// Create stores fields under a new server-generated id and returns it
	Create(ctx context.Context, collection string, fields content.Fields) (string, error)

	// Merge upserts the document, overwriting only the top-level keys in fields
	Merge(ctx context.Context, collection, id string, fields content.Fields) error

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
}
