package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"
)

// Syncer defines the interface for corpus resync
type Syncer interface {
	Sync(ctx context.Context) (int, error)
}

// ResyncWorker re-runs the corpus sync on a fixed interval so edits to the
// source documents show up without a restart.
type ResyncWorker struct {
	syncer   Syncer
	interval time.Duration
	cron     *cron.Cron
	logger   *log.Logger
}

// NewResyncWorker creates a ResyncWorker.
func NewResyncWorker(syncer Syncer, interval time.Duration, logger *log.Logger) *ResyncWorker {
	if logger == nil {
		logger = &log.DefaultLogger
	}
	return &ResyncWorker{
		syncer:   syncer,
		interval: interval,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start schedules the periodic resync. The context bounds each sync run,
// not the scheduler itself.
func (w *ResyncWorker) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", w.interval)
	_, err := w.cron.AddFunc(spec, func() {
		count, err := w.syncer.Sync(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("scheduled resync failed")
			return
		}
		w.logger.Info().Int("chunks", count).Msg("scheduled resync complete")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule resync: %w", err)
	}

	w.cron.Start()
	w.logger.Info().Dur("interval", w.interval).Msg("resync worker started")
	return nil
}

// Stop stops the scheduler and waits for a running sync to finish.
func (w *ResyncWorker) Stop() {
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	w.logger.Info().Msg("resync worker stopped")
}
