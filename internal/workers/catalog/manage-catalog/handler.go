// internal/workers/catalog/manage-catalog/handler.go
package managecatalog

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
	"matching-workers/internal/models"
)

const TaskType = "manage-catalog"

// Manager is the mutable side of the catalog store.
type Manager interface {
	catalog.Provider
	Add(ctx context.Context, collection models.Collection, record models.CatalogRecord) (models.CatalogRecord, error)
	Update(ctx context.Context, collection models.Collection, id string, patch map[string]interface{}) (models.CatalogRecord, error)
	Delete(ctx context.Context, collection models.Collection, id string) error
	Reload(ctx context.Context) error
}

type Handler struct {
	config  *Config
	manager Manager
	errors  *errors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(config *Config, manager Manager, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		manager: manager,
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

// Execute applies one mutation. The new snapshot is published before the
// job completes, so Info reflects the change.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := h.validate(input); err != nil {
		return nil, err
	}

	id := input.ID
	var err error
	switch input.Operation {
	case OperationAdd:
		id, err = h.add(ctx, input)
	case OperationUpdate:
		_, err = h.manager.Update(ctx, input.Collection, input.ID, input.Record)
	case OperationDelete:
		err = h.manager.Delete(ctx, input.Collection, input.ID)
	case OperationReload:
		err = h.manager.Reload(ctx)
	}
	if err != nil {
		return nil, catalog.ToStandardError(err, input.Collection, id)
	}

	snap, err := h.manager.Snapshot()
	if err != nil {
		return nil, catalog.ToStandardError(err, input.Collection, id)
	}

	h.logger.Info("catalog updated", map[string]interface{}{
		"operation":  string(input.Operation),
		"collection": string(input.Collection),
		"id":         id,
		"version":    snap.Version(),
	})

	return &Output{Success: true, ID: id, Info: snap.Info()}, nil
}

func (h *Handler) validate(input *Input) error {
	if input == nil {
		return errors.NewInputValidationError("input cannot be nil")
	}

	switch input.Operation {
	case OperationReload:
		return nil
	case OperationAdd, OperationUpdate, OperationDelete:
	default:
		return errors.NewUnsupportedOperationError(string(input.Operation))
	}

	collection, err := catalog.ParseCollection(string(input.Collection))
	if err != nil {
		return catalog.ToStandardError(err, input.Collection, input.ID)
	}
	input.Collection = collection
	if input.Operation != OperationAdd && input.ID == "" {
		return errors.NewInputValidationError(fmt.Sprintf("id is required for %s", input.Operation))
	}
	if input.Operation == OperationDelete {
		return nil
	}

	if len(input.Record) == 0 {
		return errors.NewInputValidationError(fmt.Sprintf("record is required for %s", input.Operation))
	}
	result := validation.ValidateInput(input.Record, recordSchema(input.Operation))
	if !result.Valid {
		return errors.NewInputValidationError(strings.Join(result.GetErrorMessages(), "; "))
	}
	return nil
}

func (h *Handler) add(ctx context.Context, input *Input) (string, error) {
	data, err := json.Marshal(input.Record)
	if err != nil {
		return "", errors.NewInputValidationError(fmt.Sprintf("encode record: %v", err))
	}
	var record models.CatalogRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return "", errors.NewInputValidationError(fmt.Sprintf("decode record: %v", err))
	}

	added, err := h.manager.Add(ctx, input.Collection, record)
	if err != nil {
		return record.ID, err
	}
	return added.ID, nil
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
