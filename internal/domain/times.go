package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Pure wall-clock arithmetic. Every function takes "now" explicitly so
// callers and tests control the reference instant; nothing here reads the
// system clock.

// HoursUntil computes the fractional hours from now until the next
// wall-clock instant matching hour:minute in now's location. If
// minDaysAhead > 0, or today's hour:minute is not strictly in the future,
// the target advances by minDaysAhead days (at least one).
func HoursUntil(now time.Time, hour, minute, minDaysAhead int) float64 {
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if minDaysAhead > 0 || !target.After(now) {
		add := minDaysAhead
		if add == 0 {
			add = 1
		}
		target = target.AddDate(0, 0, add)
	}
	return target.Sub(now).Hours()
}

// HoursUntilWeekday computes the fractional hours from now until the next
// future instant that is hour:minute on the given weekday.
func HoursUntilWeekday(now time.Time, day time.Weekday, hour, minute int) float64 {
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	for target.Weekday() != day || !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target.Sub(now).Hours()
}

// NextOccurrence finds the earliest future instant matching hour:minute on
// a weekday in days (0=Sunday..6). If today's hour:minute has already
// passed the search starts from tomorrow; it then advances day by day
// until the weekday matches, terminating within seven steps.
func NextOccurrence(now time.Time, hour, minute int, days []int) (time.Time, error) {
	if err := validateDays(days); err != nil {
		return time.Time{}, err
	}

	selected := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		selected[time.Weekday(d)] = true
	}

	result := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !result.After(now) {
		result = result.AddDate(0, 0, 1)
	}
	for i := 0; i < 7; i++ {
		if selected[result.Weekday()] {
			return result, nil
		}
		result = result.AddDate(0, 0, 1)
	}
	// Unreachable with a validated day set.
	return time.Time{}, fmt.Errorf("%w: no weekday in %v matches within a week", ErrInvalidInput, days)
}

// ParseClock parses a "HH:MM" wall-clock string.
func ParseClock(clock string) (hour, minute int, err error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidInput, clock)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: bad hour in %q", ErrInvalidInput, clock)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: bad minute in %q", ErrInvalidInput, clock)
	}
	return hour, minute, nil
}
