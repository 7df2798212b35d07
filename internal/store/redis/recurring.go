package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tabnap/tabnap/internal/domain"
)

// SaveConfig stores a recurring config in Redis
func (s *Store) SaveConfig(ctx context.Context, cfg *domain.RecurringConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := s.client.Set(ctx, ConfigKey(cfg.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	if err := s.client.SAdd(ctx, KeyAllConfigs, cfg.ID).Err(); err != nil {
		return fmt.Errorf("failed to add config to set: %w", err)
	}

	return nil
}

// GetConfig retrieves a recurring config from Redis by id
func (s *Store) GetConfig(ctx context.Context, id string) (*domain.RecurringConfig, error) {
	data, err := s.client.Get(ctx, ConfigKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("config %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	var cfg domain.RecurringConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// AllConfigs retrieves all recurring configs from Redis
func (s *Store) AllConfigs(ctx context.Context) ([]*domain.RecurringConfig, error) {
	ids, err := s.client.SMembers(ctx, KeyAllConfigs).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get config ids: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.RecurringConfig{}, nil
	}

	configs := make([]*domain.RecurringConfig, 0, len(ids))
	for _, id := range ids {
		cfg, err := s.GetConfig(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				_ = s.client.SRem(ctx, KeyAllConfigs, id).Err()
				continue
			}
			return nil, err
		}
		configs = append(configs, cfg)
	}

	return configs, nil
}

// DeleteConfig removes a recurring config from Redis
func (s *Store) DeleteConfig(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, ConfigKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete config: %w", err)
	}

	if err := s.client.SRem(ctx, KeyAllConfigs, id).Err(); err != nil {
		return fmt.Errorf("failed to remove config from set: %w", err)
	}

	return nil
}
