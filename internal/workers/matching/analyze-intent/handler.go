// internal/workers/matching/analyze-intent/handler.go
package analyzeintent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/common/validation"
	"matching-workers/internal/matching/intent"
	"matching-workers/internal/models"
)

const TaskType = "analyze-intent"

type Handler struct {
	config   *Config
	analyzer *intent.Analyzer
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, analyzer *intent.Analyzer, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		analyzer: analyzer,
		errors:   errors.NewErrorHandler(log),
		logger:   log,
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

// Execute builds the intent profile for the requested track.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInputValidationError("input cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewTimeoutError(TaskType, err)
	}

	var profile models.IntentProfile
	switch input.Track {
	case models.TrackBusiness:
		profile = h.analyzer.AnalyzeBusiness(input.Text, intent.BusinessHints{
			CompanySize:          input.CompanySize,
			Industry:             input.Industry,
			TechnicalConstraints: input.TechnicalConstraints,
		})
		h.logger.Info("business intent analyzed", map[string]interface{}{
			"problemDomain":       profile.Business.ProblemDomain,
			"automationPotential": profile.Business.AutomationPotential,
			"requirements":        len(profile.Business.Requirements),
		})
	case models.TrackIndividual:
		profile = h.analyzer.AnalyzeIndividual(input.Text, intent.IndividualHints{
			BudgetRange:         input.BudgetRange,
			EcosystemPreference: input.EcosystemPreference,
			PrimaryUseCases:     input.PrimaryUseCases,
		})
		h.logger.Info("individual intent analyzed", map[string]interface{}{
			"useCase":        profile.Individual.UseCase,
			"priorities":     profile.Individual.Priorities,
			"sophistication": profile.Individual.SophisticationLevel,
		})
	default:
		return nil, errors.NewInputValidationError(fmt.Sprintf("unknown track %q", input.Track))
	}

	return &Output{IntentProfile: profile}, nil
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
