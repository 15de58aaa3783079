// Package factory selects the DocumentStore backend named by STORE_BACKEND.
package factory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"atelier/internal/config"
	"atelier/internal/domain/repositories"
	"atelier/internal/repository/firestoredb"
	"atelier/internal/repository/memory"
	"atelier/internal/repository/postgres"
	"atelier/internal/repository/redisdb"
)

// Backend is an opened document store. Tx is nil for backends without
// transactions.
type Backend struct {
	Store repositories.DocumentStore
	Tx    repositories.TransactionManager
	Close func() error
}

// Factory opens a backend for the provided config.
type Factory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds or replaces a backend factory.
func Register(name string, factory Factory) {
	mu.Lock()
	registry[name] = factory
	mu.Unlock()
}

// Get retrieves a factory by backend name.
func Get(name string) (Factory, bool) {
	mu.RLock()
	f, ok := registry[name]
	mu.RUnlock()
	return f, ok
}

// Names lists registered backends in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open builds the backend configured in cfg.StoreBackend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	f, ok := Get(cfg.StoreBackend)
	if !ok {
		return nil, fmt.Errorf("unknown store backend %q (known: %v)", cfg.StoreBackend, Names())
	}
	backend, err := f(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}
	if backend.Close == nil {
		backend.Close = func() error { return nil }
	}
	logger.Info("document store ready", "backend", cfg.StoreBackend)
	return backend, nil
}

func init() {
	Register("memory", func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
		return &Backend{Store: memory.NewDocumentStore()}, nil
	})

	Register("firestore", func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
		client, err := firestoredb.NewClient(ctx, firestoredb.Config{
			ProjectID:       cfg.FirestoreProjectID,
			CredentialsFile: cfg.GoogleCredentials,
		})
		if err != nil {
			return nil, err
		}
		return &Backend{
			Store: firestoredb.NewDocumentStore(client, logger),
			Close: client.Close,
		}, nil
	})

	Register("postgres", func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repoCfg := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		if err := postgres.EnsureSchema(ctx, repoCfg); err != nil {
			pool.Close()
			return nil, err
		}
		return &Backend{
			Store: postgres.NewDocumentStore(repoCfg),
			Tx:    postgres.NewTransactionManager(pool, logger),
			Close: func() error { pool.Close(); return nil },
		}, nil
	})

	Register("redis", func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
		client, err := redisdb.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Store: redisdb.NewDocumentStore(client, cfg.TablePrefix, logger),
			Close: client.Close,
		}, nil
	})
}
