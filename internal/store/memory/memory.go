package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/tabnap/tabnap/internal/domain"
)

// Store is an in-memory implementation of the snooze record store.
// It backs tests and keeps the engine usable while Redis is unreachable.
// Values are copied on the way in and out, matching the serialize-through
// semantics of the Redis store.
type Store struct {
	mu      sync.RWMutex
	records map[string]domain.SnoozeRecord
	configs map[string]domain.RecurringConfig
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		records: make(map[string]domain.SnoozeRecord),
		configs: make(map[string]domain.RecurringConfig),
	}
}

// SaveRecord stores a snooze record
func (s *Store) SaveRecord(_ context.Context, rec *domain.SnoozeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.Key] = *rec
	return nil
}

// GetRecord retrieves a snooze record by key
func (s *Store) GetRecord(_ context.Context, key string) (*domain.SnoozeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[key]
	if !ok {
		return nil, fmt.Errorf("record %s: %w", key, domain.ErrNotFound)
	}
	out := rec
	return &out, nil
}

// AllRecords returns all snooze records
func (s *Store) AllRecords(_ context.Context) ([]*domain.SnoozeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*domain.SnoozeRecord, 0, len(s.records))
	for _, rec := range s.records {
		out := rec
		records = append(records, &out)
	}
	return records, nil
}

// DeleteRecord removes a snooze record
func (s *Store) DeleteRecord(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}

// SaveConfig stores a recurring config
func (s *Store) SaveConfig(_ context.Context, cfg *domain.RecurringConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *cfg
	c.Days = append([]int(nil), cfg.Days...)
	s.configs[cfg.ID] = c
	return nil
}

// GetConfig retrieves a recurring config by id
func (s *Store) GetConfig(_ context.Context, id string) (*domain.RecurringConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.configs[id]
	if !ok {
		return nil, fmt.Errorf("config %s: %w", id, domain.ErrNotFound)
	}
	out := cfg
	out.Days = append([]int(nil), cfg.Days...)
	return &out, nil
}

// AllConfigs returns all recurring configs
func (s *Store) AllConfigs(_ context.Context) ([]*domain.RecurringConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	configs := make([]*domain.RecurringConfig, 0, len(s.configs))
	for _, cfg := range s.configs {
		out := cfg
		out.Days = append([]int(nil), cfg.Days...)
		configs = append(configs, &out)
	}
	return configs, nil
}

// DeleteConfig removes a recurring config
func (s *Store) DeleteConfig(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.configs, id)
	return nil
}

// Count returns the number of stored records
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
