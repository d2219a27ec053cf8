// internal/catalog/open.go
package catalog

import (
	"context"
	"fmt"
	"time"

	"matching-workers/internal/common/config"
	"matching-workers/internal/common/database"
	"matching-workers/internal/common/logger"
)

// Backend bundles what a configured catalog source needs at runtime.
type Backend struct {
	Source Source
	Writer Writer
	Cache  Cache

	closers []func() error
}

// Close releases every client opened for the backend.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		_ = b.closers[i]()
	}
	b.closers = nil
}

// OpenBackend builds the source selected by cfg.Catalog.Source. Embedded
// catalogs are read-only; file, postgres and elasticsearch sources also
// persist mutations.
func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	b := &Backend{}

	switch cfg.Catalog.Source {
	case config.CatalogSourceEmbedded:
		b.Source = NewEmbeddedSource()

	case config.CatalogSourceFile:
		fs := NewFileSource(cfg.Catalog.Path)
		b.Source, b.Writer = fs, fs

	case config.CatalogSourcePostgres:
		db, err := database.OpenPostgres(ctx, cfg.Database.Postgres)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, db.Close)

		src := NewPostgresSource(db)
		if err := src.Migrate(ctx); err != nil {
			b.Close()
			return nil, err
		}
		b.Source, b.Writer = src, src

	case config.CatalogSourceElasticsearch:
		es, err := database.OpenElasticsearch(ctx, cfg.Database.Elasticsearch)
		if err != nil {
			return nil, err
		}
		src := NewElasticsearchSource(es, cfg.Catalog.Index.Tools, cfg.Catalog.Index.Products)
		b.Source, b.Writer = src, src

	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}

	if cfg.Catalog.Cache.Enabled {
		rdb, err := database.OpenRedis(ctx, cfg.Database.Redis)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.closers = append(b.closers, rdb.Close)
		ttl := time.Duration(cfg.Catalog.Cache.TTL) * time.Second
		b.Cache = NewRedisCache(rdb, cfg.Catalog.Cache.Key, ttl)
	}

	return b, nil
}

// NewStoreFromBackend wires a store over b.
func NewStoreFromBackend(b *Backend, log logger.Logger) *Store {
	opts := []Option{WithLogger(log)}
	if b.Writer != nil {
		opts = append(opts, WithWriter(b.Writer))
	}
	if b.Cache != nil {
		opts = append(opts, WithCache(b.Cache))
	}
	return NewStore(b.Source, opts...)
}
