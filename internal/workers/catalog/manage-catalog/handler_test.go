// internal/workers/catalog/manage-catalog/handler_test.go
package managecatalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"matching-workers/internal/catalog"
	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger { return tl }

func (tl *testLogger) WithError(err error) logger.Logger { return tl }

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger { return tl }

func createTestConfig() *Config {
	return &Config{Timeout: 3 * time.Second}
}

func newTestHandler(t *testing.T) (*Handler, *catalog.Store) {
	store := catalog.NewStore(catalog.NewEmbeddedSource(), catalog.WithIDGenerator(func() string { return "generated-1" }))
	require.NoError(t, store.Load(context.Background()))
	return NewHandler(createTestConfig(), store, &testLogger{t: t}), store
}

func assertCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok, "expected StandardError, got %v", err)
	assert.Equal(t, code, stdErr.Code)
}

type mockManager struct {
	mock.Mock
	snap *catalog.Snapshot
}

func (m *mockManager) Snapshot() (*catalog.Snapshot, error) { return m.snap, nil }

func (m *mockManager) Add(ctx context.Context, collection models.Collection, record models.CatalogRecord) (models.CatalogRecord, error) {
	args := m.Called(collection, record)
	return args.Get(0).(models.CatalogRecord), args.Error(1)
}

func (m *mockManager) Update(ctx context.Context, collection models.Collection, id string, patch map[string]interface{}) (models.CatalogRecord, error) {
	args := m.Called(collection, id, patch)
	return args.Get(0).(models.CatalogRecord), args.Error(1)
}

func (m *mockManager) Delete(ctx context.Context, collection models.Collection, id string) error {
	return m.Called(collection, id).Error(0)
}

func (m *mockManager) Reload(ctx context.Context) error {
	return m.Called().Error(0)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Add(t *testing.T) {
	h, store := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Operation:  OperationAdd,
		Collection: models.CollectionTools,
		Record: map[string]interface{}{
			"name":     "Copilot Studio",
			"category": "No-Code Integration",
			"matching_criteria": map[string]interface{}{
				"automation_potential": "high",
				"api_compatibility":    "REST API",
			},
		},
	})
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.Equal(t, "generated-1", output.ID)
	assert.Equal(t, 6, output.Info.Tools.Count)

	snap, err := store.Snapshot()
	require.NoError(t, err)
	rec, ok := snap.GetTool("generated-1")
	require.True(t, ok)
	assert.Equal(t, "high", rec.MatchingCriteria.AutomationPotential)
}

func TestHandler_Execute_UpdateAndDelete(t *testing.T) {
	h, store := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		Operation:  OperationUpdate,
		Collection: models.CollectionProducts,
		ID:         "razer-blade-16",
		Record:     map[string]interface{}{"name": "Razer Blade 16 (2024)"},
	})
	require.NoError(t, err)

	snap, err := store.Snapshot()
	require.NoError(t, err)
	rec, _ := snap.GetProduct("razer-blade-16")
	assert.Equal(t, "Razer Blade 16 (2024)", rec.Name)
	assert.Equal(t, "Extreme Performance", rec.Category)

	output, err := h.Execute(context.Background(), &Input{
		Operation:  OperationDelete,
		Collection: models.CollectionProducts,
		ID:         "razer-blade-16",
	})
	require.NoError(t, err)
	assert.Equal(t, "razer-blade-16", output.ID)
	assert.Equal(t, 2, output.Info.Products.Count)
}

func TestHandler_Execute_Reload(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		Operation:  OperationDelete,
		Collection: models.CollectionTools,
		ID:         "gpt-4",
	})
	require.NoError(t, err)

	output, err := h.Execute(context.Background(), &Input{Operation: OperationReload})
	require.NoError(t, err)
	assert.Equal(t, 5, output.Info.Tools.Count)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_ValidationErrors(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name  string
		input *Input
		code  errors.ErrorCode
	}{
		{"nil input", nil, errors.ErrCodeInputValidationFailed},
		{"unknown operation", &Input{Operation: "rename", Collection: models.CollectionTools}, errors.ErrCodeUnsupportedOperation},
		{"unknown collection", &Input{Operation: OperationDelete, Collection: "services", ID: "x"}, errors.ErrCodeInputValidationFailed},
		{"delete without id", &Input{Operation: OperationDelete, Collection: models.CollectionTools}, errors.ErrCodeInputValidationFailed},
		{"add without record", &Input{Operation: OperationAdd, Collection: models.CollectionTools}, errors.ErrCodeInputValidationFailed},
		{"add without name", &Input{Operation: OperationAdd, Collection: models.CollectionTools, Record: map[string]interface{}{"category": "LLM"}}, errors.ErrCodeInputValidationFailed},
		{"patch with bad type", &Input{Operation: OperationUpdate, Collection: models.CollectionTools, ID: "gpt-4", Record: map[string]interface{}{"use_cases": "chat"}}, errors.ErrCodeInputValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.input)
			assertCode(t, err, tt.code)
		})
	}
}

func TestHandler_Execute_StoreErrors(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		Operation:  OperationAdd,
		Collection: models.CollectionTools,
		Record:     map[string]interface{}{"id": "gpt-4", "name": "Dup", "category": "LLM"},
	})
	assertCode(t, err, errors.ErrCodeCatalogItemExists)

	_, err = h.Execute(context.Background(), &Input{
		Operation:  OperationUpdate,
		Collection: models.CollectionTools,
		ID:         "missing",
		Record:     map[string]interface{}{"name": "Nope"},
	})
	assertCode(t, err, errors.ErrCodeCatalogItemNotFound)
}

func TestHandler_Execute_PersistFailure(t *testing.T) {
	snap, err := catalog.NewSnapshot(models.Catalog{}, "mock")
	require.NoError(t, err)
	m := &mockManager{snap: snap}
	m.On("Delete", models.CollectionTools, "gpt-4").
		Return(fmt.Errorf("%w: delete tools: connection reset", catalog.ErrPersistFailed))

	h := NewHandler(createTestConfig(), m, &testLogger{t: t})
	_, err = h.Execute(context.Background(), &Input{Operation: OperationDelete, Collection: models.CollectionTools, ID: "gpt-4"})

	assertCode(t, err, errors.ErrCodeCatalogPersistFailed)
	stdErr, _ := errors.AsStandardError(err)
	assert.True(t, stdErr.Retryable)
	m.AssertExpectations(t)
}

func TestHandler_ParseInput(t *testing.T) {
	h, _ := newTestHandler(t)

	input, err := h.parseInput(entities.Job{ActivatedJob: &pb.ActivatedJob{
		Variables: `{"operation":"update","collection":"tools","id":"gpt-4","record":{"name":"GPT-4 Turbo"}}`,
	}})
	require.NoError(t, err)
	assert.Equal(t, OperationUpdate, input.Operation)
	assert.Equal(t, "GPT-4 Turbo", input.Record["name"])

	_, err = h.parseInput(entities.Job{ActivatedJob: &pb.ActivatedJob{Variables: `{"operation":"truncate"}`}})
	assertCode(t, err, errors.ErrCodeInputValidationFailed)
}
