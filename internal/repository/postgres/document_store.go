package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/domain"
	"atelier/internal/domain/models/content"
	"atelier/internal/domain/repositories"
)

// DocumentStore keeps every collection in one jsonb table keyed by (collection, id)
type DocumentStore struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentStore creates a Postgres-backed document store
func NewDocumentStore(config *RepositoryConfig) repositories.DocumentStore {
	return &DocumentStore{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// List returns the collection ordered by creation time
func (r *DocumentStore) List(ctx context.Context, collection string) ([]content.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, data
		FROM %s
		WHERE collection = $1
		ORDER BY created_at, id
	`, r.tables.Documents)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []content.Document
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
		}
		docs = append(docs, content.NewDocument(id, fields))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection, err)
	}

	return docs, nil
}

// Get retrieves one document
func (r *DocumentStore) Get(ctx context.Context, collection, id string) (*content.Document, error) {
	query := fmt.Sprintf(`
		SELECT data
		FROM %s
		WHERE collection = $1 AND id = $2
	`, r.tables.Documents)

	var raw []byte
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, collection, id).Scan(&raw)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s/%s: %w", collection, id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}

	fields, err := decodeFields(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	doc := content.NewDocument(id, fields)
	return &doc, nil
}

// Create inserts fields under a new UUID
func (r *DocumentStore) Create(ctx context.Context, collection string, fields content.Fields) (string, error) {
	data, err := encodeFields(fields)
	if err != nil {
		return "", err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (collection, id, data)
		VALUES ($1, $2, $3::jsonb)
	`, r.tables.Documents)

	id := uuid.NewString()
	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, collection, id, data); err != nil {
		return "", fmt.Errorf("create in %s: %w", collection, err)
	}

	r.logger.Debug("document created", "collection", collection, "id", id)
	return id, nil
}

// Merge upserts the row; jsonb || replaces only the top-level keys in fields
func (r *DocumentStore) Merge(ctx context.Context, collection, id string, fields content.Fields) error {
	data, err := encodeFields(fields)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %[1]s (collection, id, data)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id)
		DO UPDATE SET data = %[1]s.data || EXCLUDED.data, updated_at = now()
	`, r.tables.Documents)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, collection, id, data); err != nil {
		return fmt.Errorf("merge %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete removes the row if present
func (r *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE collection = $1 AND id = $2
	`, r.tables.Documents)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if result.RowsAffected() == 0 {
		r.logger.Debug("delete of missing document", "collection", collection, "id", id)
	}
	return nil
}

func encodeFields(fields content.Fields) ([]byte, error) {
	clean := content.NewDocument("", fields).Fields
	data, err := json.Marshal(clean)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	return data, nil
}

func decodeFields(raw []byte) (content.Fields, error) {
	fields := content.Fields{}
	if len(raw) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
