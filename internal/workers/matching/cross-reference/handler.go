// internal/workers/matching/cross-reference/handler.go
package crossreference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"matching-workers/internal/catalog"
	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/common/validation"
	"matching-workers/internal/matching/recommend"
	"matching-workers/internal/matching/scoring"
	"matching-workers/internal/models"
)

const TaskType = "cross-reference-catalog"

type Handler struct {
	config  *Config
	catalog catalog.Provider
	scorer  *scoring.Scorer
	errors  *errors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(config *Config, provider catalog.Provider, scorer *scoring.Scorer, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		catalog: provider,
		scorer:  scorer,
		errors:  errors.NewErrorHandler(log),
		logger:  log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	result := validation.ValidateJSON([]byte(job.Variables), GetInputSchema())
	if !result.Valid {
		return nil, errors.NewInputValidationError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInputValidationError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

// Execute scores the collection matching the profile's track against one
// catalog snapshot and returns the ranked list cut to Limit.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInputValidationError("input cannot be nil")
	}
	if input.Limit < 0 {
		return nil, errors.NewInputValidationError("limit must not be negative")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewTimeoutError(TaskType, err)
	}

	snap, err := h.catalog.Snapshot()
	if err != nil {
		return nil, recommend.MapError(err)
	}

	profile := input.IntentProfile
	var ranked []models.ScoredMatch
	switch profile.Track {
	case models.TrackBusiness:
		ranked, err = h.scorer.ScoreTools(profile, snap.ListTools())
	case models.TrackIndividual:
		ranked, err = h.scorer.ScoreProducts(profile, snap.ListProducts())
	default:
		return nil, errors.NewInputValidationError(fmt.Sprintf("unknown track %q", profile.Track))
	}
	if err != nil {
		return nil, recommend.MapError(err)
	}

	total := len(ranked)
	ranked = recommend.Truncate(ranked, input.Limit)

	output := &Output{
		Matches:        make([]Match, 0, len(ranked)),
		TotalScored:    total,
		CatalogVersion: snap.Version(),
	}
	for _, m := range ranked {
		output.Matches = append(output.Matches, Match{
			ID:              m.Record.ID,
			Name:            m.Record.Name,
			Category:        m.Record.Category,
			Score:           m.Score,
			StructuralScore: m.Structural.Value,
			PrecisionScore:  m.Precision.Value,
		})
	}

	fields := map[string]interface{}{
		"track":       string(profile.Track),
		"totalScored": total,
		"returned":    len(output.Matches),
	}
	if len(output.Matches) > 0 {
		fields["topId"] = output.Matches[0].ID
		fields["topScore"] = output.Matches[0].Score
	}
	h.logger.Info("catalog cross-referenced", fields)

	return output, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}
