// internal/workers/matching/analyze-intent/handler_test.go
package analyzeintent

import (
	"context"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matching-workers/internal/common/config"
	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/matching/intent"
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
	return NewHandler(createTestConfig(), intent.NewAnalyzer(), &testLogger{t: t})
}

func jobWithVariables(vars string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 42, Type: TaskType, Variables: vars}}
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

func TestHandler_Execute_Business(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Track:                models.TrackBusiness,
		Text:                 "Customer support tickets pile up and we want to automate replies",
		CompanySize:          "enterprise",
		Industry:             "Retail",
		TechnicalConstraints: []string{"on-premise only"},
	})
	require.NoError(t, err)

	profile := output.IntentProfile
	assert.Equal(t, models.TrackBusiness, profile.Track)
	require.NotNil(t, profile.Business)
	assert.Nil(t, profile.Individual)
	assert.Equal(t, "enterprise", profile.Business.CompanyContext.Size)
	assert.Equal(t, "Retail", profile.Business.CompanyContext.Industry)
	assert.Equal(t, []string{"on-premise only"}, profile.Business.Constraints)
}

func TestHandler_Execute_Individual(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Track:               models.TrackIndividual,
		Text:                "I need a laptop for machine learning with a strong GPU",
		BudgetRange:         "premium",
		EcosystemPreference: "windows",
	})
	require.NoError(t, err)

	profile := output.IntentProfile
	assert.Equal(t, models.TrackIndividual, profile.Track)
	require.NotNil(t, profile.Individual)
	assert.Nil(t, profile.Business)
	assert.Equal(t, "premium", profile.Individual.UserContext.BudgetRange)
	assert.Equal(t, "windows", profile.Individual.UserContext.EcosystemPreference)
}

func TestHandler_Execute_MatchesAnalyzer(t *testing.T) {
	h := newTestHandler(t)
	text := "We spend hours writing marketing content every week"

	output, err := h.Execute(context.Background(), &Input{Track: models.TrackBusiness, Text: text})
	require.NoError(t, err)

	expected := intent.NewAnalyzer().AnalyzeBusiness(text, intent.BusinessHints{})
	assert.Equal(t, expected, output.IntentProfile)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), nil)
	assertCode(t, err, errors.ErrCodeInputValidationFailed)

	_, err = h.Execute(context.Background(), &Input{Track: "enterprise", Text: "something long enough"})
	assertCode(t, err, errors.ErrCodeInputValidationFailed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = h.Execute(ctx, &Input{Track: models.TrackBusiness, Text: "something long enough"})
	assertCode(t, err, errors.ErrCodeTimeout)
}

func TestHandler_ParseInput(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name    string
		vars    string
		wantErr bool
	}{
		{"valid with extra process variables", `{"track":"company","text":"automate our invoices please","processStarted":"2024-01-01"}`, false},
		{"missing text", `{"track":"company"}`, true},
		{"short text", `{"track":"individual","text":"gpu"}`, true},
		{"unknown track", `{"track":"team","text":"automate our invoices please"}`, true},
		{"constraints not a list", `{"track":"company","text":"automate our invoices please","technicalConstraints":"api"}`, true},
		{"malformed", `{"track":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := h.parseInput(jobWithVariables(tt.vars))
			if tt.wantErr {
				assertCode(t, err, errors.ErrCodeInputValidationFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.TrackBusiness, input.Track)
		})
	}
}

func TestConfigFromApp(t *testing.T) {
	cfg := &config.Config{Workers: map[string]config.WorkerConfig{
		TaskType: {Enabled: true, Timeout: 1500},
	}}
	assert.Equal(t, 1500*time.Millisecond, ConfigFromApp(cfg).Timeout)
	assert.Equal(t, 30*time.Second, ConfigFromApp(&config.Config{}).Timeout)
}
