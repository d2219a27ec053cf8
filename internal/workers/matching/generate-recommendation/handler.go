// internal/workers/matching/generate-recommendation/handler.go
package generaterecommendation

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
	"matching-workers/internal/matching/synthesis"
	"matching-workers/internal/models"
)

const TaskType = "generate-recommendation"

type Handler struct {
	config      *Config
	catalog     catalog.Provider
	synthesizer *synthesis.Synthesizer
	errors      *errors.ErrorHandler
	logger      logger.Logger
}

func NewHandler(config *Config, provider catalog.Provider, synthesizer *synthesis.Synthesizer, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:      config,
		catalog:     provider,
		synthesizer: synthesizer,
		errors:      errors.NewErrorHandler(log),
		logger:      log,
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

// Execute resolves each match against the current snapshot and synthesizes
// the bundle for the profile's track. Matches keep the order they arrive in.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInputValidationError("input cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewTimeoutError(TaskType, err)
	}

	profile := input.IntentProfile
	var collection models.Collection
	switch {
	case profile.Track == models.TrackBusiness && profile.Business != nil:
		collection = models.CollectionTools
	case profile.Track == models.TrackIndividual && profile.Individual != nil:
		collection = models.CollectionProducts
	case profile.Track.Valid():
		return nil, errors.NewTrackMismatchError(fmt.Errorf("%q profile has no matching intent", profile.Track))
	default:
		return nil, errors.NewInputValidationError(fmt.Sprintf("unknown track %q", profile.Track))
	}

	snap, err := h.catalog.Snapshot()
	if err != nil {
		return nil, recommend.MapError(err)
	}

	ranked := make([]models.ScoredMatch, 0, len(input.Matches))
	for _, m := range input.Matches {
		rec, err := snap.Get(collection, m.ID)
		if err != nil {
			return nil, catalog.ToStandardError(err, collection, m.ID)
		}
		ranked = append(ranked, models.ScoredMatch{Record: rec, Score: m.Score})
	}

	output := &Output{}
	if collection == models.CollectionTools {
		output.CompanyRecommendation = recommend.BuildCompany(h.synthesizer, profile, ranked)
	} else {
		output.IndividualRecommendation = recommend.BuildIndividual(h.synthesizer, profile, ranked)
	}

	h.logger.Info("recommendation generated", map[string]interface{}{
		"track":           string(profile.Track),
		"recommendations": len(ranked),
		"catalogVersion":  snap.Version(),
	})

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
