// Package cache implements the session cache that sits between the content
// services and the hosted document store. Reads merge remote state with local
// writes that have not been confirmed yet; writes succeed locally even when the
// store is unreachable. Only deletes report remote failures to the caller.
package cache

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"atelier/internal/domain"
	"atelier/internal/domain/models/content"
	"atelier/internal/domain/repositories"
)

var _ repositories.ContentCache = (*Session)(nil)

// TempIDPrefix marks ids of documents whose remote create has not succeeded
const TempIDPrefix = "temp_"

// IsTemporaryID reports whether id was issued locally by CreateDocument
func IsTemporaryID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// Session is a process-lifetime cache in front of a DocumentStore.
// It holds three kinds of state:
//   - lists: per-collection documents created (or touched) in this session
//   - singletons: last value read or written for collection/id
//   - overlays: field patches whose remote write failed, keyed by collection/id
//   - aliases: server ids of reconciled temporary ids, keyed by collection/tempID
//
// The mutex only protects the maps; there is no coordination with other
// processes and remote writes are last-write-wins.
type Session struct {
	store   repositories.DocumentStore
	logger  *slog.Logger
	timeout time.Duration
	newID   func() string

	mu         sync.Mutex
	lists      map[string][]*entry
	singletons map[string]content.Fields
	overlays   map[string]content.Fields
	aliases    map[string]string
	refs       []content.Reference

	// seq numbers remote writes; fieldSeq holds the newest settled write per
	// collection/id and field so an older failure cannot shadow a newer write.
	seq      uint64
	fieldSeq map[string]map[string]uint64

	inflight sync.WaitGroup
}

type entry struct {
	doc content.Document
	// dirty is set when a temp document is edited before its create reconciles
	dirty bool
}

// Option configures a Session
type Option func(*Session)

// WithRemoteTimeout bounds every remote call made by the session
func WithRemoteTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// WithTempIDGenerator replaces the temporary id generator. The generator must
// return ids starting with TempIDPrefix.
func WithTempIDGenerator(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// WithReferences makes the session keep reference fields pointing at the
// server id once a referenced temporary document reconciles.
func WithReferences(refs ...content.Reference) Option {
	return func(s *Session) { s.refs = append(s.refs, refs...) }
}

// NewSession creates an empty session cache over store
func NewSession(store repositories.DocumentStore, logger *slog.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		store:      store,
		logger:     logger,
		newID:      newTempID,
		lists:      make(map[string][]*entry),
		singletons: make(map[string]content.Fields),
		overlays:   make(map[string]content.Fields),
		aliases:    make(map[string]string),
		fieldSeq:   make(map[string]map[string]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newTempID() string {
	return TempIDPrefix + strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + uuid.NewString()[:8]
}

func slotKey(collection, id string) string {
	return collection + "/" + id
}

func (s *Session) remoteContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}

// FetchCollection returns the remote documents of collection followed by the
// session's documents whose id the remote result does not contain. A failed
// remote read counts as an empty result. Pending field overlays are applied on
// top of remote documents.
func (s *Session) FetchCollection(ctx context.Context, collection string) []content.Document {
	rctx, cancel := s.remoteContext(ctx)
	remote, err := s.store.List(rctx, collection)
	cancel()
	if err != nil {
		s.logger.Warn("remote list failed, serving session cache only",
			"collection", collection,
			"error", err,
		)
		remote = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(remote))
	result := make([]content.Document, 0, len(remote)+len(s.lists[collection]))
	for _, doc := range remote {
		if _, dup := seen[doc.ID]; dup {
			continue
		}
		seen[doc.ID] = struct{}{}
		doc = doc.Clone()
		if patch, ok := s.overlays[slotKey(collection, doc.ID)]; ok {
			doc.Fields.Merge(patch)
		}
		s.resolveRefs(collection, doc.Fields)
		result = append(result, doc)
	}

	for _, e := range s.lists[collection] {
		if _, dup := seen[e.doc.ID]; dup {
			continue
		}
		seen[e.doc.ID] = struct{}{}
		doc := e.doc.Clone()
		s.resolveRefs(collection, doc.Fields)
		result = append(result, doc)
	}

	return result
}

// FetchSingleton returns the cached value for collection/id without touching
// the store when one exists. Otherwise it reads remotely and caches the result.
// It returns nil when the document is absent or unreachable and nothing was
// written for it in this session.
func (s *Session) FetchSingleton(ctx context.Context, collection, id string) *content.Document {
	s.mu.Lock()
	id = s.resolve(collection, id)
	key := slotKey(collection, id)
	if fields, ok := s.singletons[key]; ok {
		doc := content.NewDocument(id, fields)
		s.mu.Unlock()
		return &doc
	}
	s.mu.Unlock()

	rctx, cancel := s.remoteContext(ctx)
	remote, err := s.store.Get(rctx, collection, id)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	// A write may have landed while the read was in flight; it wins.
	if fields, ok := s.singletons[key]; ok {
		doc := content.NewDocument(id, fields)
		return &doc
	}

	patch, hasPatch := s.overlays[key]
	if err != nil {
		if !domain.IsNotFound(err) {
			s.logger.Warn("remote get failed",
				"collection", collection,
				"id", id,
				"error", err,
			)
		}
		if !hasPatch {
			return nil
		}
		doc := content.NewDocument(id, patch)
		return &doc
	}

	doc := content.NewDocument(id, remote.Fields)
	if hasPatch {
		doc.Fields.Merge(patch)
	}
	s.singletons[key] = doc.Fields.Clone()
	return &doc
}

// CreateDocument adds fields to collection under a new temporary id and returns
// that id immediately. The remote create runs in the background; on success the
// cached copy is re-keyed under the server id, on failure it stays under the
// temporary id for the lifetime of the session.
func (s *Session) CreateDocument(ctx context.Context, collection string, fields content.Fields) string {
	tempID := s.newID()
	doc := content.NewDocument(tempID, fields)

	s.mu.Lock()
	s.resolveRefs(collection, doc.Fields)
	s.lists[collection] = append(s.lists[collection], &entry{doc: doc})
	snapshot := doc.Fields.Clone()
	s.mu.Unlock()

	s.inflight.Add(1)
	go s.reconcileCreate(context.WithoutCancel(ctx), collection, tempID, snapshot)

	return tempID
}

func (s *Session) reconcileCreate(ctx context.Context, collection, tempID string, fields content.Fields) {
	defer s.inflight.Done()

	rctx, cancel := s.remoteContext(ctx)
	serverID, err := s.store.Create(rctx, collection, fields)
	cancel()
	if err != nil {
		s.logger.Error("remote create failed, keeping session copy",
			"collection", collection,
			"temp_id", tempID,
			"error", err,
		)
		return
	}

	s.mu.Lock()
	e := s.findEntry(collection, tempID)
	if e == nil {
		s.mu.Unlock()
		// Deleted locally before the create landed: undo it upstream.
		s.logger.Warn("document deleted before create reconciled, removing remote copy",
			"collection", collection,
			"temp_id", tempID,
			"id", serverID,
		)
		rctx, cancel := s.remoteContext(ctx)
		defer cancel()
		if err := s.store.Delete(rctx, collection, serverID); err != nil {
			s.logger.Error("remote cleanup delete failed",
				"collection", collection,
				"id", serverID,
				"error", err,
			)
		}
		return
	}

	e.doc.ID = serverID
	s.aliases[slotKey(collection, tempID)] = serverID
	var edited content.Fields
	if e.dirty {
		edited = e.doc.Fields.Clone()
		e.dirty = false
	}
	rewrites := s.rewriteRefs(collection, tempID, serverID)
	s.mu.Unlock()

	s.logger.Debug("create reconciled",
		"collection", collection,
		"temp_id", tempID,
		"id", serverID,
	)

	if edited != nil {
		s.pushMerge(ctx, collection, serverID, edited)
	}
	for _, rw := range rewrites {
		s.pushMerge(ctx, rw.collection, rw.id, rw.fields)
	}
}

type refRewrite struct {
	collection string
	id         string
	fields     content.Fields
}

// rewriteRefs points reference fields holding tempID at serverID and returns
// the reconciled documents whose store copy still needs the change. Temporary
// referrers are marked dirty so their own reconcile sends the new value.
// Must be called with s.mu held.
func (s *Session) rewriteRefs(target, tempID, serverID string) []refRewrite {
	var out []refRewrite
	for _, ref := range s.refs {
		if ref.Target != target {
			continue
		}
		for _, e := range s.lists[ref.Collection] {
			if v, _ := e.doc.Fields[ref.Field].(string); v != tempID {
				continue
			}
			e.doc.Fields[ref.Field] = serverID
			if IsTemporaryID(e.doc.ID) {
				e.dirty = true
				continue
			}
			out = append(out, refRewrite{ref.Collection, e.doc.ID, content.Fields{ref.Field: serverID}})
		}
		prefix := ref.Collection + "/"
		for key, patch := range s.overlays {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			if v, _ := patch[ref.Field].(string); v == tempID {
				patch[ref.Field] = serverID
				out = append(out, refRewrite{ref.Collection, strings.TrimPrefix(key, prefix), content.Fields{ref.Field: serverID}})
			}
		}
	}
	return out
}

// resolveRefs replaces reconciled temporary ids in reference fields of a
// document in collection. Must be called with s.mu held.
func (s *Session) resolveRefs(collection string, fields content.Fields) {
	for _, ref := range s.refs {
		if ref.Collection != collection {
			continue
		}
		if v, _ := fields[ref.Field].(string); IsTemporaryID(v) {
			fields[ref.Field] = s.resolve(ref.Target, v)
		}
	}
}

// resolve maps a reconciled temporary id to its server id. Must be called with
// s.mu held.
func (s *Session) resolve(collection, id string) string {
	if IsTemporaryID(id) {
		if serverID, ok := s.aliases[slotKey(collection, id)]; ok {
			return serverID
		}
	}
	return id
}

// ResolveID returns the server id for a temporary id whose create has
// reconciled, and id unchanged otherwise.
func (s *Session) ResolveID(collection, id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve(collection, id)
}

// UpdateDocument merges fields into the cached list entry and singleton slot for
// collection/id (whichever exist) and then writes them remotely. Remote failure
// is logged and swallowed; the patch is kept and re-sent with the next update of
// the same document. A reconciled temporary id addresses its server copy.
func (s *Session) UpdateDocument(ctx context.Context, collection, id string, fields content.Fields) {
	s.mu.Lock()
	id = s.resolve(collection, id)
	key := slotKey(collection, id)
	fields = fields.Clone()
	s.resolveRefs(collection, fields)
	if e := s.findEntry(collection, id); e != nil {
		e.doc.Fields.Merge(fields)
		if IsTemporaryID(id) {
			e.dirty = true
		}
	}
	if slot, ok := s.singletons[key]; ok {
		slot.Merge(fields)
	}
	s.mu.Unlock()

	if IsTemporaryID(id) {
		// Nothing exists upstream yet; reconciliation sends the edited fields.
		return
	}

	s.pushMerge(ctx, collection, id, fields)
}

// SetDocument replaces the singleton slot for collection/id with fields and
// merge-writes them remotely. Remote failure is logged and swallowed; reads in
// this session keep returning fields.
func (s *Session) SetDocument(ctx context.Context, collection, id string, fields content.Fields) {
	s.mu.Lock()
	id = s.resolve(collection, id)
	fields = fields.Clone()
	s.resolveRefs(collection, fields)
	s.singletons[slotKey(collection, id)] = content.NewDocument(id, fields).Fields
	if e := s.findEntry(collection, id); e != nil {
		e.doc.Fields.Merge(fields)
	}
	s.mu.Unlock()

	s.pushMerge(ctx, collection, id, fields)
}

// pushMerge sends fields plus any earlier failed patch for the same document.
func (s *Session) pushMerge(ctx context.Context, collection, id string, fields content.Fields) {
	key := slotKey(collection, id)

	s.mu.Lock()
	payload := content.Fields{}
	if pending, ok := s.overlays[key]; ok {
		payload.Merge(pending)
	}
	payload.Merge(fields)
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	rctx, cancel := s.remoteContext(ctx)
	err := s.store.Merge(rctx, collection, id, payload)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Error("remote write failed, keeping session copy",
			"collection", collection,
			"id", id,
			"error", err,
		)
	}
	s.settle(key, payload, seq, err != nil)
}

// settle records the outcome of write seq. Fields already settled by a newer
// write are left alone; failed fields go to the overlay and written ones leave
// it. Must be called with s.mu held.
func (s *Session) settle(key string, payload content.Fields, seq uint64, failed bool) {
	settled, ok := s.fieldSeq[key]
	if !ok {
		settled = make(map[string]uint64, len(payload))
		s.fieldSeq[key] = settled
	}
	overlay := s.overlays[key]
	for k, v := range payload {
		if settled[k] > seq {
			continue
		}
		settled[k] = seq
		if failed {
			if overlay == nil {
				overlay = content.Fields{}
			}
			overlay[k] = v
		} else {
			delete(overlay, k)
		}
	}
	if len(overlay) == 0 {
		delete(s.overlays, key)
		return
	}
	s.overlays[key] = overlay
}

// DeleteDocument drops collection/id from the cache unconditionally. Temporary
// ids never reached the store, so no remote call is made for them. Otherwise the
// remote delete runs and its failure is returned as *domain.RemoteDeleteError.
// A temporary id whose create has reconciled deletes the server copy.
func (s *Session) DeleteDocument(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	id = s.resolve(collection, id)
	key := slotKey(collection, id)
	list := s.lists[collection]
	kept := list[:0]
	for _, e := range list {
		if e.doc.ID != id {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(list); i++ {
		list[i] = nil
	}
	s.lists[collection] = kept
	delete(s.singletons, key)
	delete(s.overlays, key)
	delete(s.fieldSeq, key)
	s.mu.Unlock()

	if IsTemporaryID(id) {
		return nil
	}

	rctx, cancel := s.remoteContext(ctx)
	defer cancel()
	if err := s.store.Delete(rctx, collection, id); err != nil {
		s.logger.Error("remote delete failed",
			"collection", collection,
			"id", id,
			"error", err,
		)
		return &domain.RemoteDeleteError{Collection: collection, ID: id, Err: err}
	}
	return nil
}

// Wait blocks until every background create has reconciled or failed.
func (s *Session) Wait() {
	s.inflight.Wait()
}

// findEntry must be called with s.mu held.
func (s *Session) findEntry(collection, id string) *entry {
	for _, e := range s.lists[collection] {
		if e.doc.ID == id {
			return e
		}
	}
	return nil
}
