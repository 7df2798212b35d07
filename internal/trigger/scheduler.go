package trigger

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/tabnap/tabnap/internal/logger"
)

// Handler receives the name of a fired trigger.
type Handler func(name string)

// Scheduler manages named triggers on top of gocron: one one-shot alarm
// per snooze record plus a periodic heartbeat. Trigger state is
// process-local; the engine re-registers record triggers from the store
// on startup.
type Scheduler struct {
	sched   gocron.Scheduler
	logger  logger.Logger
	handler Handler
}

// New creates a trigger scheduler. Fired triggers are reported to handler
// by name.
func New(log logger.Logger, handler Handler) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		sched:   s,
		logger:  log,
		handler: handler,
	}, nil
}

// Start begins dispatching triggers.
func (s *Scheduler) Start() {
	s.sched.Start()
}

// Stop shuts the scheduler down, waiting for running callbacks.
func (s *Scheduler) Stop() error {
	if err := s.sched.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down scheduler: %w", err)
	}
	return nil
}

// ScheduleAt registers a named one-shot trigger at an absolute instant.
// Re-registering a name replaces the previous trigger. An instant already
// in the past fires immediately.
func (s *Scheduler) ScheduleAt(name string, at time.Time) error {
	s.Cancel(name)

	def := gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(at))
	if !at.After(time.Now()) {
		def = gocron.OneTimeJob(gocron.OneTimeJobStartImmediately())
	}

	_, err := s.sched.NewJob(
		def,
		gocron.NewTask(s.fire, name),
		gocron.WithName(name),
		gocron.WithTags(name),
	)
	if err != nil {
		return fmt.Errorf("failed to create one-shot trigger %s: %w", name, err)
	}

	s.logger.Debug("one-shot trigger registered",
		logger.String("name", name),
		logger.Time("at", at))
	return nil
}

// SchedulePeriodic registers a named repeating trigger.
func (s *Scheduler) SchedulePeriodic(name string, every time.Duration) error {
	s.Cancel(name)

	_, err := s.sched.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(s.fire, name),
		gocron.WithName(name),
		gocron.WithTags(name),
	)
	if err != nil {
		return fmt.Errorf("failed to create periodic trigger %s: %w", name, err)
	}

	s.logger.Debug("periodic trigger registered",
		logger.String("name", name),
		logger.Duration("every", every))
	return nil
}

// Cancel removes the named trigger if present.
func (s *Scheduler) Cancel(name string) {
	s.sched.RemoveByTags(name)
}

// Names enumerates the currently registered trigger names.
func (s *Scheduler) Names() []string {
	jobs := s.sched.Jobs()
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.Name())
	}
	return names
}

func (s *Scheduler) fire(name string) {
	s.handler(name)
}
