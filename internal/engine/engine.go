package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tabnap/tabnap/internal/browser"
	"github.com/tabnap/tabnap/internal/domain"
	"github.com/tabnap/tabnap/internal/logger"
)

// HeartbeatName is the reserved trigger name for the periodic due-scan.
// Snooze record keys carry the "snooze-" prefix so the two can never collide.
const HeartbeatName = "tabnap-heartbeat"

const (
	DefaultHeartbeatInterval = 5 * time.Minute
	DefaultProcessingLease   = 10 * time.Minute
)

// RecordStore is the key-value persistence the engine runs against.
// No cross-key transactions are assumed; the scan path is written to
// recover from partial application (see deliver).
type RecordStore interface {
	SaveRecord(ctx context.Context, rec *domain.SnoozeRecord) error
	GetRecord(ctx context.Context, key string) (*domain.SnoozeRecord, error)
	AllRecords(ctx context.Context) ([]*domain.SnoozeRecord, error)
	DeleteRecord(ctx context.Context, key string) error

	SaveConfig(ctx context.Context, cfg *domain.RecurringConfig) error
	GetConfig(ctx context.Context, id string) (*domain.RecurringConfig, error)
	DeleteConfig(ctx context.Context, id string) error
}

// Triggers is the external timer facility: named one-shot alarms plus a
// named periodic heartbeat.
type Triggers interface {
	ScheduleAt(name string, at time.Time) error
	SchedulePeriodic(name string, every time.Duration) error
	Cancel(name string)
	Names() []string
}

// Options tunes engine behavior. Zero values fall back to defaults;
// Now is injectable for tests.
type Options struct {
	HeartbeatInterval time.Duration
	ProcessingLease   time.Duration
	Now               func() time.Time
}

// Engine orchestrates snooze creation, due detection, delivery and
// recurrence re-arming. Scans run on a single worker goroutine; a scan
// requested while one is in flight is dropped, not queued — the next
// heartbeat re-evaluates the full store anyway.
type Engine struct {
	store    RecordStore
	triggers Triggers
	tabs     browser.Tabs
	logger   logger.Logger

	heartbeat time.Duration
	lease     time.Duration
	now       func() time.Time

	scanCh   chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates an engine. Call Start to restore persisted triggers and
// begin serving scans.
func New(store RecordStore, triggers Triggers, tabs browser.Tabs, log logger.Logger, opts Options) *Engine {
	if opts.HeartbeatInterval <= 0 {
		opts.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if opts.ProcessingLease <= 0 {
		opts.ProcessingLease = DefaultProcessingLease
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Engine{
		store:     store,
		triggers:  triggers,
		tabs:      tabs,
		logger:    log,
		heartbeat: opts.HeartbeatInterval,
		lease:     opts.ProcessingLease,
		now:       opts.Now,
		scanCh:    make(chan struct{}),
		stopCh:    make(chan struct{}),
	}
}

// CreateOneShot snoozes a tab once: the tab is closed now and reopened
// hoursFromNow hours later.
func (e *Engine) CreateOneShot(ctx context.Context, tab browser.Tab, hoursFromNow float64) (*domain.SnoozeRecord, error) {
	if hoursFromNow <= 0 {
		return nil, fmt.Errorf("%w: snooze duration must be positive, got %v hours", domain.ErrInvalidInput, hoursFromNow)
	}
	if tab.URL == "" {
		return nil, domain.ErrNoActiveTab
	}

	now := e.now()
	dueAt := now.Add(time.Duration(hoursFromNow * float64(time.Hour)))

	origin := tab.ID
	if origin == 0 {
		// No live tab behind this snooze; disambiguate by creation instant.
		origin = now.UnixMilli()
	}

	rec := domain.NewOneShotRecord(tab.URL, tab.Title, origin, dueAt)
	if err := e.store.SaveRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to persist snooze: %w", err)
	}

	e.scheduleTrigger(rec.Key, dueAt)
	e.closeTab(ctx, tab)

	e.logger.Info("tab snoozed",
		logger.String("key", rec.Key),
		logger.String("url", rec.URL),
		logger.Time("due_at", dueAt))
	return rec, nil
}

// CreateRecurring sets up a weekly schedule for a tab and arms its first
// occurrence.
func (e *Engine) CreateRecurring(ctx context.Context, tab browser.Tab, clock string, days []int) (*domain.SnoozeRecord, *domain.RecurringConfig, error) {
	if tab.URL == "" {
		return nil, nil, domain.ErrNoActiveTab
	}

	cfg, err := domain.NewRecurringConfig(tab.URL, tab.Title, clock, days)
	if err != nil {
		return nil, nil, err
	}

	now := e.now()
	next, err := cfg.NextOccurrence(now)
	if err != nil {
		return nil, nil, err
	}

	if err := e.store.SaveConfig(ctx, cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to persist recurring config: %w", err)
	}

	rec := domain.NewRecurringRecord(cfg, now, next)
	if err := e.store.SaveRecord(ctx, rec); err != nil {
		return nil, nil, fmt.Errorf("failed to persist snooze: %w", err)
	}

	e.scheduleTrigger(rec.Key, next)
	e.closeTab(ctx, tab)

	e.logger.Info("recurring snooze created",
		logger.String("config_id", cfg.ID),
		logger.String("url", cfg.URL),
		logger.String("time", cfg.Time),
		logger.Time("first_due", next))
	return rec, cfg, nil
}

// Cancel removes a snooze according to mode. CancelNone is an explicit
// no-op; see domain.CancelMode for the full table.
func (e *Engine) Cancel(ctx context.Context, key string, mode domain.CancelMode) error {
	if mode == domain.CancelNone {
		return nil
	}

	rec, err := e.store.GetRecord(ctx, key)
	if err != nil {
		return err
	}
	if !mode.ValidFor(rec.Kind) {
		return fmt.Errorf("%w: mode %q does not apply to %s record %s", domain.ErrInvalidInput, mode, rec.Kind, key)
	}

	e.triggers.Cancel(key)
	if err := e.store.DeleteRecord(ctx, key); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	if mode.RemovesSeries() && rec.RecurringID != "" {
		if err := e.store.DeleteConfig(ctx, rec.RecurringID); err != nil {
			return fmt.Errorf("failed to delete recurring config: %w", err)
		}
		e.logger.Info("recurring series removed",
			logger.String("config_id", rec.RecurringID))
	}

	// removeSingleAndOpen keeps the series alive: the next occurrence is
	// re-armed immediately so the schedule survives skipping one cycle.
	if mode == domain.RemoveSingleAndOpen {
		e.rearm(ctx, e.now(), rec)
	}

	if mode.OpensTab() {
		if err := e.tabs.OpenTab(ctx, rec.URL); err != nil {
			return fmt.Errorf("failed to reopen tab: %w", err)
		}
	}

	e.logger.Info("snooze cancelled",
		logger.String("key", key),
		logger.String("mode", string(mode)))
	return nil
}

// Snapshot is the read-only listing of all live snoozes, partitioned for
// display.
type Snapshot struct {
	OneShot   []*domain.SnoozeRecord `json:"one_shot"`
	Recurring []*domain.SnoozeRecord `json:"recurring"`
}

// List returns all records partitioned into one-shot vs recurring, each
// ascending by due instant. Read-only; no side effects.
func (e *Engine) List(ctx context.Context) (*Snapshot, error) {
	records, err := e.store.AllRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list snoozes: %w", err)
	}

	snap := &Snapshot{
		OneShot:   []*domain.SnoozeRecord{},
		Recurring: []*domain.SnoozeRecord{},
	}
	for _, rec := range records {
		if rec.Kind == domain.KindRecurring {
			snap.Recurring = append(snap.Recurring, rec)
		} else {
			snap.OneShot = append(snap.OneShot, rec)
		}
	}

	byDue := func(recs []*domain.SnoozeRecord) func(i, j int) bool {
		return func(i, j int) bool {
			if recs[i].DueAt != recs[j].DueAt {
				return recs[i].DueAt < recs[j].DueAt
			}
			return recs[i].Key < recs[j].Key
		}
	}
	sort.Slice(snap.OneShot, byDue(snap.OneShot))
	sort.Slice(snap.Recurring, byDue(snap.Recurring))

	return snap, nil
}

// HandleTrigger is the callback wired into the trigger facility. Every
// trigger, heartbeat or per-record, requests a full due scan.
func (e *Engine) HandleTrigger(name string) {
	if name == HeartbeatName {
		e.logger.Debug("heartbeat: scanning for due snoozes")
	} else {
		e.logger.Debug("snooze trigger fired",
			logger.String("key", name))
	}
	e.RequestScan()
}

// scheduleTrigger registers a one-shot trigger, tolerating failure: a
// record without a precise trigger is still picked up by the heartbeat.
func (e *Engine) scheduleTrigger(key string, at time.Time) {
	if err := e.triggers.ScheduleAt(key, at); err != nil {
		e.logger.Warn("failed to schedule trigger, heartbeat will cover",
			logger.String("key", key),
			logger.Error(err))
	}
}

// closeTab closes the origin tab, best effort. The snooze is already
// persisted; a close failure leaves the tab open but does not undo it.
func (e *Engine) closeTab(ctx context.Context, tab browser.Tab) {
	if tab.ID == 0 {
		return
	}
	if err := e.tabs.CloseTab(ctx, tab.ID); err != nil {
		e.logger.Warn("failed to close snoozed tab",
			logger.Int64("tab_id", tab.ID),
			logger.Error(err))
	}
}
