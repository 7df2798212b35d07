package domain

import "fmt"

// CancelMode selects what removing a snooze does with the record, its
// series config, and the tab.
type CancelMode string

const (
	// CancelNone aborts the removal (explicit no-op).
	CancelNone CancelMode = "cancel"
	// RemoveOnly clears the trigger and the record; the tab stays closed.
	RemoveOnly CancelMode = "removeOnly"
	// RemoveAndOpen clears a one-shot record and reopens its tab now.
	RemoveAndOpen CancelMode = "removeAndOpen"
	// RemoveAllAndOpen ends a recurring series (record + config) and
	// reopens the tab once.
	RemoveAllAndOpen CancelMode = "removeAllAndOpen"
	// RemoveSeriesOnly ends a recurring series without reopening anything.
	RemoveSeriesOnly CancelMode = "removeSeriesOnly"
	// RemoveSingleAndOpen reopens this occurrence but leaves the series
	// config in place; the next cycle stays scheduled.
	RemoveSingleAndOpen CancelMode = "removeSingleAndOpen"
)

// ParseCancelMode validates a mode string.
func ParseCancelMode(s string) (CancelMode, error) {
	switch m := CancelMode(s); m {
	case CancelNone, RemoveOnly, RemoveAndOpen, RemoveAllAndOpen, RemoveSeriesOnly, RemoveSingleAndOpen:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown cancel mode %q", ErrInvalidInput, s)
	}
}

// ValidFor reports whether the mode applies to a record of the given kind.
// Series modes only make sense for recurring records; RemoveAndOpen is the
// one-shot counterpart of RemoveSingleAndOpen.
func (m CancelMode) ValidFor(kind RecordKind) bool {
	switch m {
	case CancelNone, RemoveOnly:
		return true
	case RemoveAndOpen:
		return kind == KindOneShot
	case RemoveAllAndOpen, RemoveSeriesOnly, RemoveSingleAndOpen:
		return kind == KindRecurring
	default:
		return false
	}
}

// OpensTab reports whether the mode reopens the record's tab immediately.
func (m CancelMode) OpensTab() bool {
	return m == RemoveAndOpen || m == RemoveAllAndOpen || m == RemoveSingleAndOpen
}

// RemovesSeries reports whether the mode deletes the recurring config,
// terminating all future cycles.
func (m CancelMode) RemovesSeries() bool {
	return m == RemoveAllAndOpen || m == RemoveSeriesOnly
}
