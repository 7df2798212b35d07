package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

// fixedNow is Monday, 10 March 2025, 10:30. All arithmetic tests pin
// "now" here so results are reproducible.
func fixedNow() time.Time {
	return time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)
}

func TestHoursUntil(t *testing.T) {
	now := fixedNow()

	tests := []struct {
		name         string
		hour, minute int
		minDaysAhead int
		want         float64
	}{
		{
			name: "later today",
			hour: 14, minute: 0,
			want: 3.5,
		},
		{
			name: "already passed, rolls to tomorrow",
			hour: 9, minute: 0,
			want: 22.5,
		},
		{
			name: "exactly now, rolls to tomorrow",
			hour: 10, minute: 30,
			want: 24,
		},
		{
			name: "forced one day ahead",
			hour: 9, minute: 0,
			minDaysAhead: 1,
			want:         22.5,
		},
		{
			name: "forced two days ahead",
			hour: 14, minute: 0,
			minDaysAhead: 2,
			want:         51.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HoursUntil(now, tt.hour, tt.minute, tt.minDaysAhead)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("HoursUntil(%d:%02d, +%dd) = %v, want %v",
					tt.hour, tt.minute, tt.minDaysAhead, got, tt.want)
			}

			// The computed duration must land exactly on hour:minute:00.
			landed := now.Add(time.Duration(got * float64(time.Hour)))
			if landed.Hour() != tt.hour || landed.Minute() != tt.minute ||
				landed.Second() != 0 || landed.Nanosecond() != 0 {
				t.Errorf("now + %vh = %v, does not land on %d:%02d:00",
					got, landed, tt.hour, tt.minute)
			}
			if !landed.After(now) {
				t.Errorf("target %v is not in the future of %v", landed, now)
			}
		})
	}
}

func TestHoursUntilWeekday(t *testing.T) {
	now := fixedNow() // Monday 10:30

	tests := []struct {
		name         string
		day          time.Weekday
		hour, minute int
		want         float64
	}{
		{name: "saturday morning", day: time.Saturday, hour: 10, minute: 0, want: 119.5},
		{name: "next monday, time already passed today", day: time.Monday, hour: 9, minute: 0, want: 166.5},
		{name: "same day later", day: time.Monday, hour: 18, minute: 0, want: 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HoursUntilWeekday(now, tt.day, tt.hour, tt.minute)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("HoursUntilWeekday(%v %d:%02d) = %v, want %v",
					tt.day, tt.hour, tt.minute, got, tt.want)
			}
		})
	}
}

func TestNextOccurrence(t *testing.T) {
	now := fixedNow() // Monday 10:30

	tests := []struct {
		name         string
		hour, minute int
		days         []int
		want         time.Time
		wantErr      bool
	}{
		{
			name: "later today, today selected",
			hour: 14, minute: 0,
			days: []int{1}, // Monday
			want: time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
		},
		{
			name: "time passed, mon/wed/fri rolls to wednesday",
			hour: 9, minute: 0,
			days: []int{1, 3, 5},
			want: time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "time passed, only monday selected, next week",
			hour: 9, minute: 0,
			days: []int{1},
			want: time.Date(2025, 3, 17, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday only",
			hour: 8, minute: 15,
			days: []int{0},
			want: time.Date(2025, 3, 16, 8, 15, 0, 0, time.UTC),
		},
		{
			name: "empty day set rejected",
			hour: 9, minute: 0,
			days:    nil,
			wantErr: true,
		},
		{
			name: "weekday out of range rejected",
			hour: 9, minute: 0,
			days:    []int{7},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextOccurrence(now, tt.hour, tt.minute, tt.days)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("NextOccurrence() error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NextOccurrence() unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("NextOccurrence() = %v, want %v", got, tt.want)
			}
			if !got.After(now) {
				t.Errorf("NextOccurrence() = %v, not strictly after now %v", got, now)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		clock      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{clock: "09:00", wantHour: 9, wantMinute: 0},
		{clock: "23:59", wantHour: 23, wantMinute: 59},
		{clock: "0:05", wantHour: 0, wantMinute: 5},
		{clock: "24:00", wantErr: true},
		{clock: "12:60", wantErr: true},
		{clock: "noon", wantErr: true},
		{clock: "", wantErr: true},
		{clock: "12:00:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			h, m, err := ParseClock(tt.clock)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("ParseClock(%q) error = %v, want ErrInvalidInput", tt.clock, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) unexpected error: %v", tt.clock, err)
			}
			if h != tt.wantHour || m != tt.wantMinute {
				t.Errorf("ParseClock(%q) = %d:%02d, want %d:%02d", tt.clock, h, m, tt.wantHour, tt.wantMinute)
			}
		})
	}
}
