package admin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"

	"atelier/internal/domain"
	"atelier/internal/domain/models/content"
	"atelier/internal/domain/repositories"
	"atelier/internal/domain/services"
)

// kind describes how one content type is stored and checked
type kind[T any] struct {
	collection string
	name       string
	id         func(*T) *string
	normalize  func(*T)
	validate   func(*T) error
}

// collectionAdmin implements CollectionAdmin for any list-style content type
type collectionAdmin[T any] struct {
	cache  repositories.ContentCache
	kind   kind[T]
	keys   map[string]struct{}
	logger *slog.Logger
}

func newCollectionAdmin[T any](cache repositories.ContentCache, k kind[T], logger *slog.Logger) services.CollectionAdmin[T] {
	return &collectionAdmin[T]{
		cache:  cache,
		kind:   k,
		keys:   jsonKeys[T](),
		logger: logger,
	}
}

// List returns every document that decodes as T
func (a *collectionAdmin[T]) List(ctx context.Context) []T {
	items, skipped := content.DecodeAll[T](a.cache.FetchCollection(ctx, a.kind.collection))
	if skipped > 0 {
		a.logger.Warn("skipped malformed documents",
			"collection", a.kind.collection,
			"count", skipped,
		)
	}
	return items
}

// Create validates item and adds it through the cache. The returned id is also
// written into item.
func (a *collectionAdmin[T]) Create(ctx context.Context, item *T) (string, error) {
	a.kind.normalize(item)
	if err := a.kind.validate(item); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	fields, err := content.FieldsFrom(item)
	if err != nil {
		return "", err
	}

	id := a.cache.CreateDocument(ctx, a.kind.collection, fields)
	*a.kind.id(item) = id

	a.logger.Info(a.kind.name+" created",
		"id", id,
		"collection", a.kind.collection,
	)
	return id, nil
}

// Update merges patch into the current document, validates the result and
// writes only the patched keys
func (a *collectionAdmin[T]) Update(ctx context.Context, id string, patch content.Fields) (*T, error) {
	if err := a.checkKeys(patch); err != nil {
		return nil, err
	}

	id = a.cache.ResolveID(a.kind.collection, id)
	current := a.find(ctx, id)
	if current == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("%s %s not found", a.kind.name, id)}
	}

	merged := current.Clone()
	merged.Fields.Merge(patch)
	item, err := content.Decode[T](merged)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	a.kind.normalize(&item)
	if err := a.kind.validate(&item); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	normalized, err := content.FieldsFrom(&item)
	if err != nil {
		return nil, err
	}
	changes := content.Fields{}
	for k, v := range patch {
		if nv, ok := normalized[k]; ok {
			changes[k] = nv
		} else {
			// omitempty field cleared by the patch
			changes[k] = v
		}
	}

	a.cache.UpdateDocument(ctx, a.kind.collection, id, changes)

	a.logger.Info(a.kind.name+" updated",
		"id", id,
		"collection", a.kind.collection,
		"fields", sortedKeys(changes),
	)
	return &item, nil
}

// Delete removes the document through the cache
func (a *collectionAdmin[T]) Delete(ctx context.Context, id string) error {
	if err := a.cache.DeleteDocument(ctx, a.kind.collection, id); err != nil {
		return err
	}

	a.logger.Info(a.kind.name+" deleted",
		"id", id,
		"collection", a.kind.collection,
	)
	return nil
}

func (a *collectionAdmin[T]) find(ctx context.Context, id string) *content.Document {
	for _, doc := range a.cache.FetchCollection(ctx, a.kind.collection) {
		if doc.ID == id {
			return &doc
		}
	}
	return nil
}

func (a *collectionAdmin[T]) checkKeys(patch content.Fields) error {
	if len(patch) == 0 {
		return &domain.ValidationError{Message: "no fields to update"}
	}
	var unknown []string
	for k := range patch {
		if _, ok := a.keys[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &domain.ValidationError{
			Message: fmt.Sprintf("unknown %s fields: %s", a.kind.name, strings.Join(unknown, ", ")),
		}
	}
	return nil
}

// jsonKeys lists the JSON field names of T, excluding the id
func jsonKeys[T any]() map[string]struct{} {
	keys := map[string]struct{}{}
	t := reflect.TypeOf((*T)(nil)).Elem()
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" || name == content.IDField {
			continue
		}
		keys[name] = struct{}{}
	}
	return keys
}

func sortedKeys(f content.Fields) []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
