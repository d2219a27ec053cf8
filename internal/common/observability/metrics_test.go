// internal/common/observability/metrics_test.go
package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matching-workers/internal/common/logger"
)

func TestObservability_ExportsInstruments(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := New("matching-workers-test", reg, logger.NewTestLogger(t))
	defer obs.Shutdown()

	ctx := context.Background()
	obs.RecordJobProcessed(ctx, "analyze-intent", "completed")
	obs.RecordJobDuration(ctx, "analyze-intent", 25*time.Millisecond, "completed")
	obs.RecordCandidates(ctx, "company", 5)

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	joined := strings.Join(names, ",")
	assert.Contains(t, joined, "jobs_processed")
	assert.Contains(t, joined, "jobs_duration")
	assert.Contains(t, joined, "matching_candidates")
}

func TestObservability_NoopIsSafe(t *testing.T) {
	var nilObs *Observability
	ctx := context.Background()

	assert.NotPanics(t, func() {
		nilObs.RecordJobProcessed(ctx, "x", "completed")
		nilObs.RecordCandidates(ctx, "company", 1)
		nilObs.Shutdown()

		noop := NewNoop()
		noop.RecordJobDuration(ctx, "x", time.Second, "failed")
		noop.Shutdown()
	})
}
