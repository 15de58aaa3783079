// Package firestoredb implements the DocumentStore against Google Cloud Firestore,
// the hosted store the studio site runs on in production.
package firestoredb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"atelier/internal/domain"
	"atelier/internal/domain/models/content"
	"atelier/internal/domain/repositories"
)

// Config selects the Firestore project. CredentialsFile may be empty when
// application default credentials or FIRESTORE_EMULATOR_HOST are in effect.
type Config struct {
	ProjectID       string
	CredentialsFile string
}

// DocumentStore maps collections to top-level Firestore collections
type DocumentStore struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewClient opens a Firestore client for cfg
func NewClient(ctx context.Context, cfg Config) (*firestore.Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore project id: %w", domain.ErrValidation)
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return client, nil
}

// NewDocumentStore wraps an open client
func NewDocumentStore(client *firestore.Client, logger *slog.Logger) repositories.DocumentStore {
	return &DocumentStore{client: client, logger: logger}
}

// List reads every document of the collection. Firestore returns documents
// ordered by id.
func (s *DocumentStore) List(ctx context.Context, collection string) ([]content.Document, error) {
	iter := s.client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	var docs []content.Document
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		docs = append(docs, content.NewDocument(snap.Ref.ID, snap.Data()))
	}
	return docs, nil
}

// Get reads one document
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*content.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("document %s/%s: %w", collection, id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	doc := content.NewDocument(id, snap.Data())
	return &doc, nil
}

// Create adds a document with a Firestore-generated id
func (s *DocumentStore) Create(ctx context.Context, collection string, fields content.Fields) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, toData(fields))
	if err != nil {
		return "", fmt.Errorf("create in %s: %w", collection, err)
	}
	return ref.ID, nil
}

// Merge upserts the document. Each top-level key is listed as its own merge
// path so nested maps are replaced rather than merged.
func (s *DocumentStore) Merge(ctx context.Context, collection, id string, fields content.Fields) error {
	data := toData(fields)
	if len(data) == 0 {
		return nil
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	paths := make([]firestore.FieldPath, 0, len(keys))
	for _, k := range keys {
		paths = append(paths, firestore.FieldPath{k})
	}

	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, data, firestore.Merge(paths...)); err != nil {
		return fmt.Errorf("merge %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete removes the document; Firestore treats a missing document as success
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func toData(fields content.Fields) map[string]interface{} {
	return map[string]interface{}(content.NewDocument("", fields).Fields)
}
