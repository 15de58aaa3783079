// Package redisdb implements the DocumentStore on Redis. Each collection is a hash
// of id to JSON fields plus a sorted set recording creation order.
package redisdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"atelier/internal/domain"
	"atelier/internal/domain/models/content"
	"atelier/internal/domain/repositories"
)

const maxMergeRetries = 5

// DocumentStore keeps documents in Redis hashes under a key prefix
type DocumentStore struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewClient parses redisURL and checks the server is reachable
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// NewDocumentStore creates a store whose keys start with prefix
func NewDocumentStore(client *redis.Client, prefix string, logger *slog.Logger) repositories.DocumentStore {
	return &DocumentStore{client: client, prefix: prefix, logger: logger}
}

func (s *DocumentStore) docsKey(collection string) string {
	return s.prefix + "docs:" + collection
}

func (s *DocumentStore) orderKey(collection string) string {
	return s.prefix + "order:" + collection
}

// List returns documents in creation order
func (s *DocumentStore) List(ctx context.Context, collection string) ([]content.Document, error) {
	ids, err := s.client.ZRange(ctx, s.orderKey(collection), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	values, err := s.client.HMGet(ctx, s.docsKey(collection), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	docs := make([]content.Document, 0, len(ids))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// order entry without a hash field; removed concurrently
			continue
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", collection, ids[i], err)
		}
		docs = append(docs, content.NewDocument(ids[i], fields))
	}
	return docs, nil
}

// Get reads one document
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*content.Document, error) {
	raw, err := s.client.HGet(ctx, s.docsKey(collection), id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("document %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}

	fields, err := decodeFields(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	doc := content.NewDocument(id, fields)
	return &doc, nil
}

// Create stores fields under a new UUID
func (s *DocumentStore) Create(ctx context.Context, collection string, fields content.Fields) (string, error) {
	data, err := encodeFields(fields)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.docsKey(collection), id, data)
		pipe.ZAdd(ctx, s.orderKey(collection), redis.Z{Score: float64(time.Now().UnixNano()), Member: id})
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("create in %s: %w", collection, err)
	}
	return id, nil
}

// Merge upserts the document under WATCH so concurrent merges do not lose keys
func (s *DocumentStore) Merge(ctx context.Context, collection, id string, fields content.Fields) error {
	docsKey := s.docsKey(collection)

	txf := func(tx *redis.Tx) error {
		merged := content.Fields{}
		raw, err := tx.HGet(ctx, docsKey, id).Result()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			if merged, err = decodeFields(raw); err != nil {
				return err
			}
		}
		merged.Merge(fields)

		data, err := encodeFields(merged)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, docsKey, id, data)
			pipe.ZAddNX(ctx, s.orderKey(collection), redis.Z{Score: float64(time.Now().UnixNano()), Member: id})
			return nil
		})
		return err
	}

	for i := 0; i < maxMergeRetries; i++ {
		err := s.client.Watch(ctx, txf, docsKey)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			s.logger.Debug("merge conflict, retrying", "collection", collection, "id", id, "attempt", i+1)
			continue
		}
		return fmt.Errorf("merge %s/%s: %w", collection, id, err)
	}
	return fmt.Errorf("merge %s/%s: %w", collection, id, domain.ErrConflict)
}

// Delete removes the document and its order entry
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, s.docsKey(collection), id)
		pipe.ZRem(ctx, s.orderKey(collection), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func encodeFields(fields content.Fields) (string, error) {
	data, err := json.Marshal(content.NewDocument("", fields).Fields)
	if err != nil {
		return "", fmt.Errorf("encode fields: %w", err)
	}
	return string(data), nil
}

func decodeFields(raw string) (content.Fields, error) {
	fields := content.Fields{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
