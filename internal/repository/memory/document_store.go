// Package memory provides a process-local DocumentStore. It backs the "memory"
// store backend for local development and is the store used by service tests,
// which can make individual operations fail.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"atelier/internal/domain"
	"atelier/internal/domain/models/content"
)

// Op names a DocumentStore operation for failure injection and call counting
type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpCreate Op = "create"
	OpMerge  Op = "merge"
	OpDelete Op = "delete"
)

// DocumentStore keeps documents in nested maps guarded by a mutex
type DocumentStore struct {
	mu          sync.Mutex
	collections map[string]map[string]content.Fields
	order       map[string][]string
	failures    map[Op]error
	calls       map[Op]int
	newID       func() string
	gate        chan struct{}
}

// NewDocumentStore returns an empty store
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		collections: make(map[string]map[string]content.Fields),
		order:       make(map[string][]string),
		failures:    make(map[Op]error),
		calls:       make(map[Op]int),
		newID:       func() string { return uuid.NewString() },
	}
}

// Put stores a document directly, bypassing failure injection
func (s *DocumentStore) Put(collection, id string, fields content.Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(collection, id, content.NewDocument(id, fields).Fields)
}

// Fail makes every later call of op return err. A nil err clears the failure.
func (s *DocumentStore) Fail(op Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// FailAll makes every operation return err
func (s *DocumentStore) FailAll(err error) {
	for _, op := range []Op{OpList, OpGet, OpCreate, OpMerge, OpDelete} {
		s.Fail(op, err)
	}
}

// Calls returns how many times op has been invoked, failed calls included
func (s *DocumentStore) Calls(op Op) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// SetIDGenerator replaces the generator used by Create
func (s *DocumentStore) SetIDGenerator(fn func() string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newID = fn
}

// HoldCreates blocks every Create until the returned release func is called
func (s *DocumentStore) HoldCreates() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gate = gate
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.gate = nil
			s.mu.Unlock()
			close(gate)
		})
	}
}

// Len returns the number of documents stored in collection
func (s *DocumentStore) Len(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collections[collection])
}

func (s *DocumentStore) begin(op Op) error {
	s.calls[op]++
	return s.failures[op]
}

func (s *DocumentStore) put(collection, id string, fields content.Fields) {
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]content.Fields)
		s.collections[collection] = docs
	}
	if _, exists := docs[id]; !exists {
		s.order[collection] = append(s.order[collection], id)
	}
	docs[id] = fields
}

// List returns documents in insertion order
func (s *DocumentStore) List(ctx context.Context, collection string) ([]content.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpList); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs := s.collections[collection]
	out := make([]content.Document, 0, len(docs))
	for _, id := range s.order[collection] {
		if fields, ok := docs[id]; ok {
			out = append(out, content.NewDocument(id, fields))
		}
	}
	return out, nil
}

// Get returns a copy of the document
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*content.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpGet); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields, ok := s.collections[collection][id]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, domain.ErrNotFound)
	}
	doc := content.NewDocument(id, fields)
	return &doc, nil
}

// Create stores fields under a generated id
func (s *DocumentStore) Create(ctx context.Context, collection string, fields content.Fields) (string, error) {
	s.mu.Lock()
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpCreate); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := s.newID()
	s.put(collection, id, content.NewDocument(id, fields).Fields)
	return id, nil
}

// Merge upserts the document with a shallow merge of fields
func (s *DocumentStore) Merge(ctx context.Context, collection, id string, fields content.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpMerge); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	merged := content.Fields{}
	if existing, ok := s.collections[collection][id]; ok {
		merged = existing.Clone()
	}
	merged.Merge(fields)
	s.put(collection, id, merged)
	return nil
}

// Delete removes the document if present
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(OpDelete); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	delete(s.collections[collection], id)
	order := s.order[collection]
	for i, existing := range order {
		if existing == id {
			s.order[collection] = append(order[:i:i], order[i+1:]...)
			break
		}
	}
	return nil
}
