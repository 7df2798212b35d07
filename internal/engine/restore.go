package engine

import (
	"context"
	"fmt"

	"github.com/tabnap/tabnap/internal/logger"
)

// Start restores trigger state from the store, installs the heartbeat,
// launches the scan worker and kicks an immediate pass to catch records
// that came due while the process was down.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.restore(ctx); err != nil {
		// Not fatal: the heartbeat below still guarantees delivery.
		e.logger.Warn("failed to restore snooze triggers",
			logger.Error(err))
	}

	if err := e.ensureHeartbeat(); err != nil {
		return err
	}

	go e.run(ctx)
	return nil
}

// Stop halts the scan worker. Safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.stopCh)
	})
}

// restore re-registers a one-shot trigger for every persisted record.
// Trigger state lives in-process and is lost on restart; the store is
// the durable truth.
func (e *Engine) restore(ctx context.Context) error {
	records, err := e.store.AllRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}

	registered := make(map[string]bool)
	for _, name := range e.triggers.Names() {
		registered[name] = true
	}

	restored := 0
	for _, rec := range records {
		if registered[rec.Key] {
			continue
		}
		e.scheduleTrigger(rec.Key, rec.DueTime())
		restored++
	}

	if restored > 0 {
		e.logger.Info("restored snooze triggers",
			logger.Int("count", restored))
	}
	return nil
}

// ensureHeartbeat idempotently installs the periodic due-scan trigger,
// so the system self-heals if the schedule was lost.
func (e *Engine) ensureHeartbeat() error {
	for _, name := range e.triggers.Names() {
		if name == HeartbeatName {
			return nil
		}
	}

	if err := e.triggers.SchedulePeriodic(HeartbeatName, e.heartbeat); err != nil {
		return fmt.Errorf("failed to install heartbeat: %w", err)
	}

	e.logger.Info("heartbeat installed",
		logger.Duration("interval", e.heartbeat))
	return nil
}
