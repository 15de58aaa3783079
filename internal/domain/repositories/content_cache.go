package repositories

import (
	"context"

	"atelier/internal/domain/models/content"
)

// ContentCache is the read/write path every content service goes through.
// Reads and writes never fail; DeleteDocument reports remote failures.
// Implemented by cache.Session.
type ContentCache interface {
	FetchCollection(ctx context.Context, collection string) []content.Document
	FetchSingleton(ctx context.Context, collection, id string) *content.Document
	CreateDocument(ctx context.Context, collection string, fields content.Fields) string
	UpdateDocument(ctx context.Context, collection, id string, fields content.Fields)
	SetDocument(ctx context.Context, collection, id string, fields content.Fields)
	DeleteDocument(ctx context.Context, collection, id string) error
	ResolveID(collection, id string) string
}
