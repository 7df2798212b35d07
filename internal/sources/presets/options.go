package presets

import (
	"time"

	"github.com/tabnap/tabnap/internal/domain"
)

const (
	whenMorning   = "morning"
	whenAfternoon = "afternoon"
	whenEvening   = "evening"
)

// Option is a resolved preset: a label plus the fractional hours until its
// target, computed against a concrete instant.
type Option struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Hours float64 `json:"hours"`
}

// Compute resolves the definitions against now, dropping presets whose
// window or hide rules exclude the current moment.
func Compute(now time.Time, defs []Definition) []Option {
	options := make([]Option, 0, len(defs))
	for i := range defs {
		def := &defs[i]
		if !offeredAt(now, def) {
			continue
		}
		hours, ok := resolveHours(now, def)
		if !ok {
			continue
		}
		options = append(options, Option{ID: def.ID, Label: def.Label, Hours: hours})
	}
	return options
}

func offeredAt(now time.Time, def *Definition) bool {
	hour := now.Hour()
	switch def.When {
	case whenMorning:
		if hour >= 12 {
			return false
		}
	case whenAfternoon:
		if hour < 12 || hour >= 17 {
			return false
		}
	case whenEvening:
		if hour < 17 {
			return false
		}
	}

	for _, d := range def.HideOn {
		if now.Weekday() == time.Weekday(d) {
			return false
		}
	}
	return true
}

func resolveHours(now time.Time, def *Definition) (float64, bool) {
	if def.At == "" {
		return def.Hours, true
	}

	hour, minute, err := domain.ParseClock(def.At)
	if err != nil {
		return 0, false
	}

	if def.Weekday != nil {
		day := time.Weekday(*def.Weekday)
		if def.HideSameDay && now.Weekday() == day {
			today := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
			if today.After(now) {
				return 0, false
			}
		}
		return domain.HoursUntilWeekday(now, day, hour, minute), true
	}

	return domain.HoursUntil(now, hour, minute, def.DaysAhead), true
}
