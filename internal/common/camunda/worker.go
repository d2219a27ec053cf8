// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/observability"
)

// JobHandler completes or fails the job itself.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// Registration describes one job worker to open.
type Registration struct {
	TaskType      string
	MaxJobsActive int
	Timeout       time.Duration
	Handler       JobHandler
}

type Worker struct {
	taskType string
	worker   worker.JobWorker
}

// WorkerSet owns every opened job worker of the process.
type WorkerSet struct {
	client  zbc.Client
	logger  logger.Logger
	obs     *observability.Observability
	errs    *errors.ErrorHandler
	workers []*Worker
}

func NewWorkerSet(client zbc.Client, log logger.Logger, obs *observability.Observability) *WorkerSet {
	return &WorkerSet{
		client: client,
		logger: log,
		obs:    obs,
		errs:   errors.NewErrorHandler(log),
	}
}

// Open starts polling for reg.TaskType.
func (s *WorkerSet) Open(reg Registration) error {
	if reg.TaskType == "" || reg.Handler == nil {
		return fmt.Errorf("worker registration needs a task type and a handler")
	}

	step := s.client.NewJobWorker().
		JobType(reg.TaskType).
		Handler(s.instrument(reg.TaskType, reg.Handler))
	if reg.MaxJobsActive > 0 {
		step = step.MaxJobsActive(reg.MaxJobsActive)
	}
	if reg.Timeout > 0 {
		step = step.Timeout(reg.Timeout)
	}

	s.workers = append(s.workers, &Worker{taskType: reg.TaskType, worker: step.Open()})
	s.logger.Info("worker started", map[string]interface{}{
		"taskType":      reg.TaskType,
		"maxJobsActive": reg.MaxJobsActive,
	})
	return nil
}

// TaskTypes lists the opened workers in registration order.
func (s *WorkerSet) TaskTypes() []string {
	out := make([]string, 0, len(s.workers))
	for _, w := range s.workers {
		out = append(out, w.taskType)
	}
	return out
}

// instrument records duration per job and turns a handler panic into an
// INTERNAL_ERROR so the job does not sit activated until its timeout.
func (s *WorkerSet) instrument(taskType string, h JobHandler) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		status := "handled"
		ctx := context.Background()

		defer func() {
			if r := recover(); r != nil {
				status = "panicked"
				s.logger.Error("handler panicked", map[string]interface{}{
					"taskType": taskType,
					"jobKey":   job.Key,
					"panic":    fmt.Sprint(r),
				})
				s.errs.HandleJobError(ctx, client, job, fmt.Errorf("handler panic: %v", r))
			}
			s.obs.RecordJobProcessed(ctx, taskType, status)
			s.obs.RecordJobDuration(ctx, taskType, time.Since(start), status)
		}()

		h.Handle(client, job)
	}
}

// Close stops polling and waits for in-flight jobs of every worker.
func (s *WorkerSet) Close() {
	for _, w := range s.workers {
		s.logger.Info("stopping worker", map[string]interface{}{"taskType": w.taskType})
		w.worker.Close()
	}
	for _, w := range s.workers {
		w.worker.AwaitClose()
	}
	s.workers = nil
}
