// internal/catalog/store_test.go
package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"matching-workers/internal/models"
)

// ==========================
// Test doubles
// ==========================

type stubSource struct {
	catalog models.Catalog
	err     error
	loads   int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(ctx context.Context) (models.Catalog, error) {
	s.loads++
	return s.catalog, s.err
}

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) Upsert(ctx context.Context, collection models.Collection, record models.CatalogRecord) error {
	args := m.Called(ctx, collection, record)
	return args.Error(0)
}

func (m *mockWriter) Delete(ctx context.Context, collection models.Collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

type memoryCache struct {
	catalog     *models.Catalog
	getErr      error
	puts        int
	invalidated int
}

func (m *memoryCache) Get(ctx context.Context) (models.Catalog, bool, error) {
	if m.getErr != nil {
		return models.Catalog{}, false, m.getErr
	}
	if m.catalog == nil {
		return models.Catalog{}, false, nil
	}
	return *m.catalog, true, nil
}

func (m *memoryCache) Put(ctx context.Context, c models.Catalog) error {
	m.puts++
	m.catalog = &c
	return nil
}

func (m *memoryCache) Invalidate(ctx context.Context) error {
	m.invalidated++
	m.catalog = nil
	return nil
}

func loadedStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s := NewStore(&stubSource{catalog: smallCatalog()}, opts...)
	require.NoError(t, s.Load(context.Background()))
	return s
}

// ==========================
// Loading
// ==========================

func TestStore_NotLoaded(t *testing.T) {
	s := NewStore(&stubSource{})

	assert.False(t, s.Ready())
	_, err := s.Snapshot()
	assert.ErrorIs(t, err, ErrNotLoaded)

	_, err = s.Add(context.Background(), models.CollectionTools, record("x", "X", "c"))
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestStore_LoadFromSourceFillsCache(t *testing.T) {
	cache := &memoryCache{}
	src := &stubSource{catalog: smallCatalog()}
	s := NewStore(src, WithCache(cache))

	require.NoError(t, s.Load(context.Background()))
	assert.True(t, s.Ready())
	assert.Equal(t, 1, src.loads)
	assert.Equal(t, 1, cache.puts)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "stub", snap.Source())
}

func TestStore_LoadPrefersCache(t *testing.T) {
	cached := models.Catalog{Tools: []models.CatalogRecord{record("cached", "Cached", "c")}}
	cache := &memoryCache{catalog: &cached}
	src := &stubSource{catalog: smallCatalog()}
	s := NewStore(src, WithCache(cache))

	require.NoError(t, s.Load(context.Background()))
	assert.Zero(t, src.loads)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "cache:stub", snap.Source())
	_, ok := snap.GetTool("cached")
	assert.True(t, ok)

	require.NoError(t, s.Reload(context.Background()))
	assert.Equal(t, 1, src.loads)
	snap, err = s.Snapshot()
	require.NoError(t, err)
	_, ok = snap.GetTool("t1")
	assert.True(t, ok)
}

func TestStore_CacheFailureFallsThrough(t *testing.T) {
	cache := &memoryCache{getErr: errors.New("redis down")}
	src := &stubSource{catalog: smallCatalog()}
	s := NewStore(src, WithCache(cache))

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, 1, src.loads)
}

func TestStore_CachedCatalogRejected(t *testing.T) {
	bad := models.Catalog{Tools: []models.CatalogRecord{record("", "No ID", "c")}}
	src := &stubSource{catalog: smallCatalog()}
	s := NewStore(src, WithCache(&memoryCache{catalog: &bad}))

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, 1, src.loads)
}

func TestStore_LoadFailureKeepsPreviousSnapshot(t *testing.T) {
	src := &stubSource{catalog: smallCatalog()}
	s := NewStore(src)
	require.NoError(t, s.Load(context.Background()))
	before, _ := s.Snapshot()

	src.err = errors.New("connection reset")
	err := s.Reload(context.Background())
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.Contains(t, err.Error(), "connection reset")

	after, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, before.Version(), after.Version())
}

func TestStore_InvalidSourceCatalog(t *testing.T) {
	s := NewStore(&stubSource{catalog: models.Catalog{Products: []models.CatalogRecord{record("p", "", "c")}}})

	err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.False(t, s.Ready())
}

// ==========================
// Mutations
// ==========================

func TestStore_AddGeneratesID(t *testing.T) {
	w := new(mockWriter)
	w.On("Upsert", mock.Anything, models.CollectionTools, mock.MatchedBy(func(r models.CatalogRecord) bool {
		return r.ID == "generated-1"
	})).Return(nil)

	cache := &memoryCache{}
	s := loadedStore(t, WithWriter(w), WithCache(cache), WithIDGenerator(func() string { return "generated-1" }))
	before, _ := s.Snapshot()

	added, err := s.Add(context.Background(), models.CollectionTools, record("", "New Tool", "Agentic Workflow"))
	require.NoError(t, err)
	assert.Equal(t, "generated-1", added.ID)

	after, _ := s.Snapshot()
	assert.NotEqual(t, before.Version(), after.Version())
	tools := after.ListTools()
	require.Len(t, tools, 4)
	assert.Equal(t, "generated-1", tools[3].ID)

	// The old snapshot is untouched.
	assert.Len(t, before.ListTools(), 3)
	assert.Equal(t, 1, cache.invalidated)
	w.AssertExpectations(t)
}

func TestStore_AddRejectsDuplicatesAndInvalid(t *testing.T) {
	s := loadedStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, models.CollectionTools, record("t1", "Again", "c"))
	assert.ErrorIs(t, err, ErrExists)

	_, err = s.Add(ctx, models.CollectionProducts, record("p2", "", "c"))
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = s.Add(ctx, "services", record("s1", "S", "c"))
	assert.ErrorIs(t, err, ErrInvalidCollection)
}

func TestStore_UpdateMergesTopLevelFields(t *testing.T) {
	s := loadedStore(t)

	updated, err := s.Update(context.Background(), models.CollectionTools, "t2", map[string]interface{}{
		"name":              "Tool Two Pro",
		"matching_criteria": map[string]interface{}{"scalability": "excellent"},
	})
	require.NoError(t, err)
	assert.Equal(t, "t2", updated.ID)
	assert.Equal(t, "Tool Two Pro", updated.Name)
	assert.Equal(t, "Agentic Workflow", updated.Category)
	assert.Equal(t, "excellent", updated.MatchingCriteria.Scalability)

	snap, _ := s.Snapshot()
	rec, ok := snap.GetTool("t2")
	require.True(t, ok)
	assert.Equal(t, "Tool Two Pro", rec.Name)
	assert.Equal(t, "t2", snap.ListTools()[1].ID)
}

func TestStore_UpdateErrors(t *testing.T) {
	s := loadedStore(t)
	ctx := context.Background()

	_, err := s.Update(ctx, models.CollectionTools, "t1", map[string]interface{}{"id": "renamed"})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = s.Update(ctx, models.CollectionTools, "missing", map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Update(ctx, models.CollectionTools, "t1", map[string]interface{}{"name": ""})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = s.Update(ctx, models.CollectionTools, "t1", map[string]interface{}{"use_cases": "not a list"})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = s.Update(ctx, models.CollectionTools, "t1", map[string]interface{}{"id": "t1", "name": "Same ID"})
	assert.NoError(t, err)
}

func TestStore_Delete(t *testing.T) {
	w := new(mockWriter)
	w.On("Delete", mock.Anything, models.CollectionProducts, "p1").Return(nil)
	s := loadedStore(t, WithWriter(w))
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, models.CollectionProducts, "p1"))
	snap, _ := s.Snapshot()
	assert.Empty(t, snap.ListProducts())

	assert.ErrorIs(t, s.Delete(ctx, models.CollectionProducts, "p1"), ErrNotFound)
	w.AssertExpectations(t)
}

func TestStore_PersistFailureDoesNotPublish(t *testing.T) {
	w := new(mockWriter)
	w.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("write refused"))
	cache := &memoryCache{}
	s := loadedStore(t, WithWriter(w), WithCache(cache))
	before, _ := s.Snapshot()

	_, err := s.Add(context.Background(), models.CollectionTools, record("t9", "Nine", "c"))
	assert.ErrorIs(t, err, ErrPersistFailed)
	assert.Contains(t, err.Error(), "write refused")

	after, _ := s.Snapshot()
	assert.Equal(t, before.Version(), after.Version())
	assert.Len(t, after.ListTools(), 3)
	assert.Zero(t, cache.invalidated)
}

func TestStore_ConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	s := loadedStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				snap, err := s.Snapshot()
				if err != nil {
					t.Error(err)
					return
				}
				info := snap.Info()
				if info.Tools.Count != len(snap.ListTools()) {
					t.Errorf("snapshot changed underneath reader")
					return
				}
			}
		}()
	}

	for i := 0; i < 20; i++ {
		_, err := s.Add(ctx, models.CollectionTools, record("", "Generated", "c"))
		require.NoError(t, err)
	}
	wg.Wait()

	snap, _ := s.Snapshot()
	assert.Len(t, snap.ListTools(), 23)
}
