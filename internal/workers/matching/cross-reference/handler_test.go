// internal/workers/matching/cross-reference/handler_test.go
package crossreference

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matching-workers/internal/catalog"
	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/matching/intent"
	"matching-workers/internal/matching/scoring"
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

func newTestHandler(t *testing.T) *Handler {
	store := catalog.NewStore(catalog.NewEmbeddedSource())
	require.NoError(t, store.Load(context.Background()))
	return NewHandler(createTestConfig(), store, scoring.NewScorer(scoring.DefaultWeights()), &testLogger{t: t})
}

func supportProfile() models.IntentProfile {
	return intent.NewAnalyzer().AnalyzeBusiness(
		"Customer support is overwhelmed by repetitive tickets",
		intent.BusinessHints{CompanySize: "medium"},
	)
}

func mlProfile() models.IntentProfile {
	return intent.NewAnalyzer().AnalyzeIndividual(
		"Training machine learning models on a laptop GPU",
		intent.IndividualHints{BudgetRange: "premium", EcosystemPreference: "windows"},
	)
}

func assertCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok, "expected StandardError, got %v", err)
	assert.Equal(t, code, stdErr.Code)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Tools(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{IntentProfile: supportProfile()})
	require.NoError(t, err)

	assert.Equal(t, 5, output.TotalScored)
	require.Len(t, output.Matches, 5)
	assert.NotEmpty(t, output.CatalogVersion)
	for i := 1; i < len(output.Matches); i++ {
		assert.GreaterOrEqual(t, output.Matches[i-1].Score, output.Matches[i].Score)
	}
	for _, m := range output.Matches {
		expected := 0.65*m.StructuralScore + 0.35*m.PrecisionScore
		assert.InDelta(t, expected, m.Score, 1e-9)
	}
}

func TestHandler_Execute_ProductsWithLimit(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{IntentProfile: mlProfile(), Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, output.TotalScored)
	require.Len(t, output.Matches, 2)
	assert.Equal(t, "razer-blade-16", output.Matches[0].ID)
	assert.Equal(t, "Extreme Performance", output.Matches[0].Category)
}

func TestHandler_Execute_ProfileSurvivesJobVariables(t *testing.T) {
	h := newTestHandler(t)

	vars, err := json.Marshal(map[string]interface{}{"intentProfile": mlProfile(), "limit": 1})
	require.NoError(t, err)

	input, err := h.parseInput(entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 7, Variables: string(vars)}})
	require.NoError(t, err)
	assert.Equal(t, mlProfile(), input.IntentProfile)

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Len(t, output.Matches, 1)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_TrackMismatch(t *testing.T) {
	h := newTestHandler(t)

	profile := supportProfile()
	profile.Business = nil

	_, err := h.Execute(context.Background(), &Input{IntentProfile: profile})
	assertCode(t, err, errors.ErrCodeTrackMismatch)
}

func TestHandler_Execute_Errors(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), nil)
	assertCode(t, err, errors.ErrCodeInputValidationFailed)

	_, err = h.Execute(context.Background(), &Input{IntentProfile: supportProfile(), Limit: -1})
	assertCode(t, err, errors.ErrCodeInputValidationFailed)

	_, err = h.Execute(context.Background(), &Input{IntentProfile: models.IntentProfile{Track: "team"}})
	assertCode(t, err, errors.ErrCodeInputValidationFailed)
}

func TestHandler_Execute_CatalogNotLoaded(t *testing.T) {
	h := NewHandler(createTestConfig(), catalog.NewStore(catalog.NewEmbeddedSource()),
		scoring.NewScorer(scoring.DefaultWeights()), &testLogger{t: t})

	_, err := h.Execute(context.Background(), &Input{IntentProfile: supportProfile()})
	assertCode(t, err, errors.ErrCodeCatalogUnavailable)
}

func TestHandler_ParseInput_Rejects(t *testing.T) {
	h := newTestHandler(t)

	for _, vars := range []string{`{}`, `{"intentProfile":{}}`, `{"intentProfile":{"track_type":"company"},"limit":-2}`, `{"intentProfile":"x"}`} {
		_, err := h.parseInput(entities.Job{ActivatedJob: &pb.ActivatedJob{Variables: vars}})
		assertCode(t, err, errors.ErrCodeInputValidationFailed)
	}
}
