package presets

// Definition describes one snooze preset. A preset resolves to a fractional
// hour offset from "now" in one of three ways:
//
//   - Hours: a fixed offset ("10 min", "1 hour").
//   - At: the next wall-clock instant "HH:MM", pushed DaysAhead days forward.
//   - Weekday + At: the next future instant on that weekday.
//
// When and the Hide fields gate whether the preset is offered at a given
// moment, so the option list stays short and context-aware.
type Definition struct {
	ID        string  `yaml:"id"`
	Label     string  `yaml:"label"`
	Hours     float64 `yaml:"hours,omitempty"`
	At        string  `yaml:"at,omitempty"`
	DaysAhead int     `yaml:"daysAhead,omitempty"`
	Weekday   *int    `yaml:"weekday,omitempty"`

	// When restricts the preset to a time-of-day window:
	// "morning" (before 12), "afternoon" (12 to 17), "evening" (17 onward).
	When string `yaml:"when,omitempty"`

	// HideOn suppresses the preset on the listed weekdays (0=Sunday..6).
	HideOn []int `yaml:"hideOn,omitempty"`

	// HideSameDay suppresses a weekday preset when its target would land
	// later today (a "next Monday" button is noise on Monday morning).
	HideSameDay bool `yaml:"hideSameDay,omitempty"`
}

// Config is the top-level structure of a presets YAML file.
type Config struct {
	Presets []Definition `yaml:"presets"`
}

// Defaults returns the built-in preset set used when no file is configured.
func Defaults() []Definition {
	saturday, monday := 6, 1
	return []Definition{
		{ID: "snooze10min", Label: "10 min", Hours: 0.17},
		{ID: "snooze1hour", Label: "1 hour", Hours: 1},
		{ID: "snoozeAfternoon", Label: "Today 2 PM", At: "14:00", When: "morning"},
		{ID: "snoozeEvening", Label: "Today 6 PM", At: "18:00", When: "afternoon"},
		{ID: "snoozeNextMorning", Label: "Tomorrow 9 AM", At: "09:00", DaysAhead: 1, When: "evening"},
		{ID: "snoozeWeekend", Label: "Sat 10 AM", At: "10:00", Weekday: &saturday, HideOn: []int{6}},
		{ID: "snoozeNextWeek", Label: "Mon 9 AM", At: "09:00", Weekday: &monday, HideSameDay: true},
	}
}
