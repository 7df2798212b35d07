package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecurringConfig represents a saved weekly schedule, independent of any
// single due record. Every record in the series references it; it is
// destroyed only by an explicit remove-series action.
type RecurringConfig struct {
	// ID is the canonical unique identifier.
	// Format: recurring-<uuid>. The prefix keeps config ids out of the
	// record key space in the shared flat namespace.
	ID string `json:"id"`

	// URL and Title identify the tab to reopen each cycle.
	URL   string `json:"url"`
	Title string `json:"title"`

	// Time is the target wall-clock time, "HH:MM" in the host's local zone.
	Time string `json:"time"`

	// Days is the set of weekdays the series fires on (0=Sunday..6=Saturday).
	// Never empty for a stored config.
	Days []int `json:"days"`
}

// NewConfigID returns a fresh recurring config identifier.
func NewConfigID() string {
	return "recurring-" + uuid.NewString()
}

// NewRecurringConfig validates the schedule and builds a config.
func NewRecurringConfig(url, title, clock string, days []int) (*RecurringConfig, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	if _, _, err := ParseClock(clock); err != nil {
		return nil, err
	}
	if err := validateDays(days); err != nil {
		return nil, err
	}
	return &RecurringConfig{
		ID:    NewConfigID(),
		URL:   url,
		Title: title,
		Time:  clock,
		Days:  days,
	}, nil
}

// NextOccurrence computes the earliest future instant matching the
// config's schedule, relative to now.
func (c *RecurringConfig) NextOccurrence(now time.Time) (time.Time, error) {
	hour, minute, err := ParseClock(c.Time)
	if err != nil {
		return time.Time{}, err
	}
	return NextOccurrence(now, hour, minute, c.Days)
}

func validateDays(days []int) error {
	if len(days) == 0 {
		return fmt.Errorf("%w: at least one weekday is required", ErrInvalidInput)
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: weekday %d out of range 0..6", ErrInvalidInput, d)
		}
	}
	return nil
}
