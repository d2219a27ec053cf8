// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"matching-workers/internal/catalog"
	"matching-workers/internal/common/camunda"
	"matching-workers/internal/common/config"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/matching/recommend"
	"matching-workers/internal/matching/scoring"

	mc "matching-workers/internal/workers/catalog/manage-catalog"
	qc "matching-workers/internal/workers/catalog/query-catalog"
	ai "matching-workers/internal/workers/matching/analyze-intent"
	cr "matching-workers/internal/workers/matching/cross-reference"
	gr "matching-workers/internal/workers/matching/generate-recommendation"
	mr "matching-workers/internal/workers/matching/match-request"
)

const shutdownTimeout = 30 * time.Second

func main() {
	bootLog := logger.New("info", "console")
	defer func() { _ = bootLog.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog, err := logger.Build(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		bootLog.Fatal("logger build failed", zap.Error(err))
	}
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		zapLog.Fatal("worker manager failed", zap.Error(err))
	}
	log.Info("worker manager stopped gracefully", nil)
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	obs := observability.New(cfg.App.Name, prometheus.DefaultRegisterer, log)
	defer obs.Shutdown()

	// --- Catalog ---
	backend, err := catalog.OpenBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	store := catalog.NewStoreFromBackend(backend, log)
	if err := store.Load(ctx); err != nil {
		return err
	}

	// --- Zeebe ---
	client, err := camunda.NewClient(ctx, camunda.ConfigFromApp(cfg.Camunda), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Error("error closing zeebe client", map[string]interface{}{"error": err.Error()})
		}
	}()

	workers := camunda.NewWorkerSet(client.GetClient(), log, obs)
	defer workers.Close()

	for _, reg := range registrations(cfg, store, obs, log) {
		if !config.IsWorkerEnabled(cfg, reg.TaskType) {
			log.Info("worker disabled", map[string]interface{}{"taskType": reg.TaskType})
			continue
		}
		wc := config.GetWorkerConfig(cfg, reg.TaskType)
		reg.MaxJobsActive = wc.MaxJobsActive
		reg.Timeout = config.GetDuration(wc.Timeout)
		if err := workers.Open(reg); err != nil {
			return err
		}
	}
	log.Info("workers registered", map[string]interface{}{"taskTypes": workers.TaskTypes()})

	// --- Health & Metrics Server ---
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           newMux(store),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Info("health/metrics server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// --- Graceful Shutdown ---
	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping workers", nil)
	case runErr = <-serveErr:
		log.Error("health/metrics server failed", map[string]interface{}{"error": runErr.Error()})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("health/metrics server shutdown", map[string]interface{}{"error": err.Error()})
	}
	return runErr
}

// registrations builds every handler over one shared store and core.
func registrations(cfg *config.Config, store *catalog.Store, obs *observability.Observability, log logger.Logger) []camunda.Registration {
	weights := scoring.Weights{
		Structural: cfg.Matching.StructuralWeight,
		Precision:  cfg.Matching.PrecisionWeight,
	}
	svc := recommend.NewService(store, recommend.Options{
		Weights:       weights,
		TopN:          cfg.Matching.TopN,
		Logger:        log,
		Observability: obs,
	})

	return []camunda.Registration{
		{TaskType: ai.TaskType, Handler: ai.NewHandler(ai.ConfigFromApp(cfg), svc.Analyzer(), log)},
		{TaskType: cr.TaskType, Handler: cr.NewHandler(cr.ConfigFromApp(cfg), store, svc.Scorer(), log)},
		{TaskType: gr.TaskType, Handler: gr.NewHandler(gr.ConfigFromApp(cfg), store, svc.Synthesizer(), log)},
		{TaskType: mr.TaskType, Handler: mr.NewHandler(mr.ConfigFromApp(cfg), svc, log)},
		{TaskType: qc.TaskType, Handler: qc.NewHandler(qc.ConfigFromApp(cfg), store, log)},
		{TaskType: mc.TaskType, Handler: mc.NewHandler(mc.ConfigFromApp(cfg), store, log)},
	}
}

func newMux(store *catalog.Store) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		snap, err := store.Snapshot()
		if err != nil {
			writeStatus(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}
		writeStatus(w, http.StatusOK, map[string]string{
			"status":         "ready",
			"catalogVersion": snap.Version(),
			"catalogSource":  snap.Source(),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
