package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tabnap/tabnap/internal/domain"
)

// Store handles Redis operations for snooze records and recurring configs.
// Records carry no TTL: a snooze must survive until it is delivered or
// cancelled, however far away its due instant is.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveRecord stores a snooze record in Redis
func (s *Store) SaveRecord(ctx context.Context, rec *domain.SnoozeRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	key := RecordKey(rec.Key)

	// Store record data
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	// Add to set of all records
	if err := s.client.SAdd(ctx, KeyAllRecords, rec.Key).Err(); err != nil {
		return fmt.Errorf("failed to add record to set: %w", err)
	}

	return nil
}

// GetRecord retrieves a snooze record from Redis by key
func (s *Store) GetRecord(ctx context.Context, key string) (*domain.SnoozeRecord, error) {
	data, err := s.client.Get(ctx, RecordKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("record %s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	var rec domain.SnoozeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return &rec, nil
}

// AllRecords retrieves all snooze records from Redis
func (s *Store) AllRecords(ctx context.Context) ([]*domain.SnoozeRecord, error) {
	keys, err := s.client.SMembers(ctx, KeyAllRecords).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get record keys: %w", err)
	}

	if len(keys) == 0 {
		return []*domain.SnoozeRecord{}, nil
	}

	records := make([]*domain.SnoozeRecord, 0, len(keys))
	for _, key := range keys {
		rec, err := s.GetRecord(ctx, key)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Stale set member, drop it (best effort)
				_ = s.client.SRem(ctx, KeyAllRecords, key).Err()
				continue
			}
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// DeleteRecord removes a snooze record from Redis
func (s *Store) DeleteRecord(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, RecordKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	if err := s.client.SRem(ctx, KeyAllRecords, key).Err(); err != nil {
		return fmt.Errorf("failed to remove record from set: %w", err)
	}

	return nil
}
