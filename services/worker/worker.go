package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"kwestendorf/scopeworker/internal/orchestrator"
	"kwestendorf/scopeworker/logger"
	"kwestendorf/scopeworker/services/publisher"
)

// Worker drives the periodic refresh of every source.
type Worker struct {
	orch            *orchestrator.Orchestrator
	publisher       publisher.Publisher
	refreshInterval time.Duration
	log             *logger.Logger
}

// NewWorker creates a new worker. The publisher may be nil when stream
// trimming is not wanted.
func NewWorker(orch *orchestrator.Orchestrator, pub publisher.Publisher, refreshInterval time.Duration) *Worker {
	return &Worker{
		orch:            orch,
		publisher:       pub,
		refreshInterval: refreshInterval,
		log:             logger.ForWorker(),
	}
}

// Start runs refresh cycles until the context is cancelled. The first cycle
// runs immediately.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.refreshInterval)
	defer ticker.Stop()

	w.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping")
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

// runCycle refreshes all sources in parallel and then trims the streams.
// A failing source never takes the worker down with it.
func (w *Worker) runCycle(ctx context.Context) {
	start := time.Now()

	var wg sync.WaitGroup
	for _, name := range w.orch.Sources() {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			w.refreshSource(ctx, name)
		}(name)
	}
	wg.Wait()

	if w.publisher != nil {
		if err := w.publisher.TrimStreams(); err != nil {
			w.log.Error().Err(err).Msg("Failed to trim streams")
		}
	}

	w.log.Info().Dur("elapsed", time.Since(start)).Msg("Refresh cycle completed")
}

func (w *Worker) refreshSource(ctx context.Context, name string) {
	err := w.orch.Refresh(ctx, name)
	if errors.Is(err, orchestrator.ErrCoolingDown) {
		w.log.Debug().Str("source", name).Msg("Refresh skipped, cooldown open")
		return
	}
	if err != nil {
		w.log.Error().Err(err).Str("source", name).Msg("Refresh failed")
	}
}
