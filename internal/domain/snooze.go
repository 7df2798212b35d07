package domain

import (
	"fmt"
	"time"
)

// RecordKind discriminates one-shot records from recurring-series records.
// It is stored explicitly on every record so that no caller ever has to
// infer the kind from key formatting.
type RecordKind string

const (
	// KindOneShot marks a record that fires once and is then retired.
	KindOneShot RecordKind = "one-shot"
	// KindRecurring marks a record that belongs to a recurring series.
	KindRecurring RecordKind = "recurring"
)

// SnoozeRecord represents one deferred tab.
//
// A record is created when a tab is snoozed (one-shot) or each time a
// recurring series re-arms. It is mutated only to claim/release the
// processing lease, and destroyed once its tab has been reopened, once
// replaced by the next cycle's record, or on explicit cancellation.
type SnoozeRecord struct {
	// Key is the canonical unique identifier.
	// Format: snooze-<origin>-<dueUnixMilli>, where origin is the
	// originating tab id (one-shot from a live tab) or the creation
	// unix-milli (recurring re-arm). Keys sort and are trivially unique.
	Key string `json:"key"`

	// URL and Title capture the tab identity at snooze time.
	URL   string `json:"url"`
	Title string `json:"title"`

	// DueAt is the absolute wake-up instant in epoch milliseconds.
	DueAt int64 `json:"due_at"`

	// Kind is the explicit record variant tag.
	Kind RecordKind `json:"kind"`

	// RecurringID is a back-reference (not ownership) to the series
	// config. Non-empty iff Kind == KindRecurring.
	RecurringID string `json:"recurring_id,omitempty"`

	// Processing is true while a delivery attempt is in flight.
	// ProcessingAt records when the lease was claimed (epoch millis) so
	// that an orphaned lease can be reclaimed after a staleness bound.
	Processing   bool  `json:"processing,omitempty"`
	ProcessingAt int64 `json:"processing_at,omitempty"`
}

// RecordKey builds a snooze record key from an origin discriminator and
// the due instant.
func RecordKey(origin int64, dueAt time.Time) string {
	return fmt.Sprintf("snooze-%d-%d", origin, dueAt.UnixMilli())
}

// NewOneShotRecord builds a one-shot record due at the given instant.
func NewOneShotRecord(url, title string, originTabID int64, dueAt time.Time) *SnoozeRecord {
	return &SnoozeRecord{
		Key:   RecordKey(originTabID, dueAt),
		URL:   url,
		Title: title,
		DueAt: dueAt.UnixMilli(),
		Kind:  KindOneShot,
	}
}

// NewRecurringRecord builds the record for one occurrence of a recurring
// series. The origin discriminator is the creation instant, since a
// re-armed occurrence has no originating tab.
func NewRecurringRecord(cfg *RecurringConfig, createdAt, dueAt time.Time) *SnoozeRecord {
	return &SnoozeRecord{
		Key:         RecordKey(createdAt.UnixMilli(), dueAt),
		URL:         cfg.URL,
		Title:       cfg.Title,
		DueAt:       dueAt.UnixMilli(),
		Kind:        KindRecurring,
		RecurringID: cfg.ID,
	}
}

// Due reports whether the record's wake-up instant is at or before now.
func (r *SnoozeRecord) Due(now time.Time) bool {
	return r.DueAt <= now.UnixMilli()
}

// DueTime returns the wake-up instant as a time.Time.
func (r *SnoozeRecord) DueTime() time.Time {
	return time.UnixMilli(r.DueAt)
}

// LeaseExpired reports whether a claimed processing lease is older than
// the given bound. A record with an expired lease is treated as an
// abandoned delivery (crash mid-flight) and becomes eligible for retry.
func (r *SnoozeRecord) LeaseExpired(now time.Time, lease time.Duration) bool {
	if !r.Processing {
		return false
	}
	return now.Sub(time.UnixMilli(r.ProcessingAt)) >= lease
}

// Claim marks the record as having a delivery in flight.
func (r *SnoozeRecord) Claim(now time.Time) {
	r.Processing = true
	r.ProcessingAt = now.UnixMilli()
}

// Release clears the processing lease so the next scan can retry.
func (r *SnoozeRecord) Release() {
	r.Processing = false
	r.ProcessingAt = 0
}
