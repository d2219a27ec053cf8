// internal/catalog/store.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/models"
)

// Provider hands out the current catalog snapshot.
type Provider interface {
	Snapshot() (*Snapshot, error)
}

// Store publishes catalog snapshots. Readers take the current snapshot with
// a single atomic load; writers serialize on mu, build a new snapshot from a
// copy and swap it in, so a reader never sees a partial mutation.
type Store struct {
	source Source
	writer Writer
	cache  Cache
	logger logger.Logger
	newID  func() string

	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

type Option func(*Store)

// WithWriter persists every mutation before it is published.
func WithWriter(w Writer) Option {
	return func(s *Store) { s.writer = w }
}

func WithCache(c Cache) Option {
	return func(s *Store) { s.cache = c }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithIDGenerator sets the id given to added records that have none.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func NewStore(source Source, opts ...Option) *Store {
	s := &Store{
		source: source,
		logger: logger.NewNoOpLogger(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the published snapshot or ErrNotLoaded.
func (s *Store) Snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Ready reports whether a snapshot has been published.
func (s *Store) Ready() bool {
	return s.current.Load() != nil
}

// Load publishes the cached catalog when one exists, otherwise the source's.
// Cache failures are logged and fall through to the source.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache != nil {
		c, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.logger.Warn("catalog cache read failed", map[string]interface{}{"error": err})
		case ok:
			snap, err := NewSnapshot(c, "cache:"+s.source.Name())
			if err == nil {
				s.publish(snap)
				return nil
			}
			s.logger.Warn("cached catalog rejected", map[string]interface{}{"error": err})
		}
	}

	return s.loadFromSource(ctx)
}

// Reload always reads the source and refreshes the cache.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadFromSource(ctx)
}

func (s *Store) loadFromSource(ctx context.Context) error {
	c, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoadFailed, s.source.Name(), err)
	}
	snap, err := NewSnapshot(c, s.source.Name())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoadFailed, s.source.Name(), err)
	}

	s.publish(snap)

	if s.cache != nil {
		if err := s.cache.Put(ctx, c); err != nil {
			s.logger.Warn("catalog cache write failed", map[string]interface{}{"error": err})
		}
	}
	return nil
}

func (s *Store) publish(snap *Snapshot) {
	s.current.Store(snap)

	metrics.CatalogSnapshotItems.WithLabelValues(string(models.CollectionTools)).Set(float64(len(snap.tools)))
	metrics.CatalogSnapshotItems.WithLabelValues(string(models.CollectionProducts)).Set(float64(len(snap.products)))

	s.logger.Info("catalog snapshot published", map[string]interface{}{
		"version":  snap.version,
		"source":   snap.source,
		"tools":    len(snap.tools),
		"products": len(snap.products),
	})
}

// Add appends record to collection. A record without an id gets a new one.
func (s *Store) Add(ctx context.Context, collection models.Collection, record models.CatalogRecord) (models.CatalogRecord, error) {
	if record.ID == "" {
		record.ID = s.newID()
	}
	if err := ValidateRecord(record); err != nil {
		return models.CatalogRecord{}, err
	}

	err := s.mutate(ctx, collection, "add", func(records []models.CatalogRecord) ([]models.CatalogRecord, error) {
		for _, rec := range records {
			if rec.ID == record.ID {
				return nil, fmt.Errorf("%s/%s: %w", collection, record.ID, ErrExists)
			}
		}
		return append(records, record), nil
	}, func(w Writer) error {
		return w.Upsert(ctx, collection, record)
	})
	if err != nil {
		return models.CatalogRecord{}, err
	}
	return record, nil
}

// Update merges patch over the top-level fields of the record with id.
// Nested objects in patch replace the stored ones whole. The id cannot be
// changed.
func (s *Store) Update(ctx context.Context, collection models.Collection, id string, patch map[string]interface{}) (models.CatalogRecord, error) {
	if newID, ok := patch["id"]; ok && newID != id {
		return models.CatalogRecord{}, fmt.Errorf("id cannot be changed from %q: %w", id, ErrInvalidRecord)
	}

	var updated models.CatalogRecord
	err := s.mutate(ctx, collection, "update", func(records []models.CatalogRecord) ([]models.CatalogRecord, error) {
		for i, rec := range records {
			if rec.ID != id {
				continue
			}
			merged, err := mergeRecord(rec, patch)
			if err != nil {
				return nil, err
			}
			if err := ValidateRecord(merged); err != nil {
				return nil, err
			}
			records[i] = merged
			updated = merged
			return records, nil
		}
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}, func(w Writer) error {
		return w.Upsert(ctx, collection, updated)
	})
	if err != nil {
		return models.CatalogRecord{}, err
	}
	return updated, nil
}

// Delete removes the record with id from collection.
func (s *Store) Delete(ctx context.Context, collection models.Collection, id string) error {
	return s.mutate(ctx, collection, "delete", func(records []models.CatalogRecord) ([]models.CatalogRecord, error) {
		kept := make([]models.CatalogRecord, 0, len(records))
		for _, rec := range records {
			if rec.ID != id {
				kept = append(kept, rec)
			}
		}
		if len(kept) == len(records) {
			return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
		}
		return kept, nil
	}, func(w Writer) error {
		return w.Delete(ctx, collection, id)
	})
}

// mutate applies change to a copy of collection, persists through the
// writer and then publishes. Nothing is published when either step fails.
func (s *Store) mutate(
	ctx context.Context,
	collection models.Collection,
	operation string,
	change func([]models.CatalogRecord) ([]models.CatalogRecord, error),
	persist func(Writer) error,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	if cur == nil {
		return ErrNotLoaded
	}

	next := cur.Catalog()
	records, err := collectionOf(&next, collection)
	if err != nil {
		return err
	}
	changed, err := change(*records)
	if err != nil {
		return err
	}
	*records = changed

	snap, err := NewSnapshot(next, cur.source)
	if err != nil {
		return err
	}

	if s.writer != nil {
		if err := persist(s.writer); err != nil {
			return fmt.Errorf("%w: %s %s: %w", ErrPersistFailed, operation, collection, err)
		}
	}

	s.publish(snap)
	metrics.CatalogMutations.WithLabelValues(string(collection), operation).Inc()

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("catalog cache invalidation failed", map[string]interface{}{"error": err})
		}
	}
	return nil
}

// mergeRecord overlays patch on the record's top-level JSON fields.
func mergeRecord(rec models.CatalogRecord, patch map[string]interface{}) (models.CatalogRecord, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return models.CatalogRecord{}, err
	}
	fields := make(map[string]interface{})
	if err := json.Unmarshal(data, &fields); err != nil {
		return models.CatalogRecord{}, err
	}
	for k, v := range patch {
		fields[k] = v
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return models.CatalogRecord{}, fmt.Errorf("encode patch: %w", err)
	}
	var out models.CatalogRecord
	if err := json.Unmarshal(merged, &out); err != nil {
		return models.CatalogRecord{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return out, nil
}
