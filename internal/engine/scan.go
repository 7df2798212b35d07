package engine

import (
	"context"
	"errors"
	"time"

	"github.com/tabnap/tabnap/internal/domain"
	"github.com/tabnap/tabnap/internal/logger"
)

// RequestScan asks the worker for a due scan. If a scan is already in
// flight the request is dropped: due detection re-evaluates the full
// store on every pass, so a dropped request costs at most one heartbeat
// of delay.
func (e *Engine) RequestScan() {
	select {
	case e.scanCh <- struct{}{}:
	default:
		e.logger.Debug("scan already in flight, skipping")
	}
}

// run is the single scan worker. Having exactly one consumer makes
// at-most-one-scan-in-flight structural rather than flag-checked.
// An initial pass catches anything that came due while the process was
// down.
func (e *Engine) run(ctx context.Context) {
	if err := e.scanDue(ctx); err != nil {
		e.logger.Warn("initial due scan failed",
			logger.Error(err))
	}

	for {
		select {
		case <-e.scanCh:
			if err := e.scanDue(ctx); err != nil {
				e.logger.Error("due scan failed",
					logger.Error(err))
			}
		case <-e.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// scanDue is one full detection pass: claim each due record, deliver it,
// re-arm recurring series and retire the rest. A store read failure
// aborts the pass; the next trigger retries the whole thing.
func (e *Engine) scanDue(ctx context.Context) error {
	now := e.now()

	records, err := e.store.AllRecords(ctx)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if !rec.Due(now) {
			continue
		}

		if rec.Processing {
			if !rec.LeaseExpired(now, e.lease) {
				e.logger.Debug("delivery already in flight, skipping",
					logger.String("key", rec.Key))
				continue
			}
			// Orphaned lease from a crashed delivery; reclaim and retry.
			e.logger.Warn("reclaiming stale delivery lease",
				logger.String("key", rec.Key),
				logger.Time("claimed_at", time.UnixMilli(rec.ProcessingAt)))
		}

		// Claim before any side effect so an overlapping pass never
		// double-delivers.
		rec.Claim(now)
		if err := e.store.SaveRecord(ctx, rec); err != nil {
			e.logger.Error("failed to claim record, skipping",
				logger.String("key", rec.Key),
				logger.Error(err))
			continue
		}

		e.deliver(ctx, now, rec)
	}

	return nil
}

// deliver reopens the record's tab and retires it, re-arming the series
// first for recurring records. On reopen failure the claim is released so
// the next scan retries.
func (e *Engine) deliver(ctx context.Context, now time.Time, rec *domain.SnoozeRecord) {
	if err := e.tabs.OpenTab(ctx, rec.URL); err != nil {
		e.logger.Error("failed to reopen tab, will retry next scan",
			logger.String("key", rec.Key),
			logger.String("url", rec.URL),
			logger.Error(err))
		rec.Release()
		if err := e.store.SaveRecord(ctx, rec); err != nil {
			// The lease expiry still unblocks the record eventually.
			e.logger.Error("failed to release claim",
				logger.String("key", rec.Key),
				logger.Error(err))
		}
		return
	}

	e.logger.Info("reopened snoozed tab",
		logger.String("key", rec.Key),
		logger.String("url", rec.URL))

	if rec.RecurringID != "" {
		e.rearm(ctx, now, rec)
	}

	if err := e.store.DeleteRecord(ctx, rec.Key); err != nil {
		// Delivered but not retired: the record sits claimed until its
		// lease expires, then gets delivered once more. At-least-once on
		// this failure path.
		e.logger.Error("failed to retire delivered record",
			logger.String("key", rec.Key),
			logger.Error(err))
	}
}

// rearm creates and schedules the successor record for a recurring series.
func (e *Engine) rearm(ctx context.Context, now time.Time, rec *domain.SnoozeRecord) {
	cfg, err := e.store.GetConfig(ctx, rec.RecurringID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Series was removed; retire this occurrence quietly.
			e.logger.Info("recurring config gone, series ends",
				logger.String("key", rec.Key),
				logger.String("config_id", rec.RecurringID))
		} else {
			e.logger.Error("failed to load recurring config",
				logger.String("config_id", rec.RecurringID),
				logger.Error(err))
		}
		return
	}

	next, err := cfg.NextOccurrence(now)
	if err != nil {
		e.logger.Error("failed to compute next occurrence",
			logger.String("config_id", cfg.ID),
			logger.Error(err))
		return
	}

	succ := domain.NewRecurringRecord(cfg, now, next)
	if err := e.store.SaveRecord(ctx, succ); err != nil {
		e.logger.Error("failed to persist next occurrence",
			logger.String("config_id", cfg.ID),
			logger.Error(err))
		return
	}

	e.scheduleTrigger(succ.Key, next)
	e.logger.Info("recurring snooze re-armed",
		logger.String("config_id", cfg.ID),
		logger.String("key", succ.Key),
		logger.Time("due_at", next))
}
