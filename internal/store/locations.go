// Package store persists the saved-locations list and the last selected
// city under two fixed keys, mirroring the dashboard's storage contract:
// "locations" holds a JSON-encoded ordered list of city labels (insertion
// order, no duplicates) and "lastCity" holds a plain trimmed string.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyList = "locations"
	keyLast = "lastCity"
)

type LocationStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewLocationStore(ctx context.Context, addr string, logger *zap.Logger) (*LocationStore, error) {
	if addr == "" {
		return nil, errors.New("redis address is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &LocationStore{rdb: rdb, logger: logger}, nil
}

func (s *LocationStore) Close() error {
	return s.rdb.Close()
}

// List returns the saved locations in insertion order. A missing or
// unreadable list reads as empty.
func (s *LocationStore) List(ctx context.Context) ([]string, error) {
	raw, err := s.rdb.Get(ctx, keyList).Result()
	if errors.Is(err, redis.Nil) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET %s: %w", keyList, err)
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Warn("Discarding malformed locations list", zap.Error(err))
		return []string{}, nil
	}
	return list, nil
}

// Add appends city to the list unless it is already present, returning the
// resulting list. Blank input is a no-op.
func (s *LocationStore) Add(ctx context.Context, city string) ([]string, error) {
	trimmed := strings.TrimSpace(city)
	if trimmed == "" {
		return s.List(ctx)
	}

	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		if c == trimmed {
			return list, nil
		}
	}

	list = append(list, trimmed)
	if err := s.save(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Remove deletes city from the list and clears the last-city marker when it
// pointed at the removed city.
func (s *LocationStore) Remove(ctx context.Context, city string) ([]string, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	kept := list[:0]
	for _, c := range list {
		if c != city {
			kept = append(kept, c)
		}
	}
	if err := s.save(ctx, kept); err != nil {
		return nil, err
	}

	last, err := s.LastCity(ctx)
	if err != nil {
		return nil, err
	}
	if last == city {
		if err := s.rdb.Del(ctx, keyLast).Err(); err != nil {
			return nil, fmt.Errorf("redis DEL %s: %w", keyLast, err)
		}
	}
	return kept, nil
}

// LastCity returns the last selected city, or "" when none is set.
func (s *LocationStore) LastCity(ctx context.Context) (string, error) {
	last, err := s.rdb.Get(ctx, keyLast).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis GET %s: %w", keyLast, err)
	}
	return last, nil
}

func (s *LocationStore) SetLastCity(ctx context.Context, city string) error {
	if err := s.rdb.Set(ctx, keyLast, strings.TrimSpace(city), 0).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", keyLast, err)
	}
	return nil
}

// Init loads the startup state: the saved list and the last selected city.
func (s *LocationStore) Init(ctx context.Context) ([]string, string, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, "", err
	}
	last, err := s.LastCity(ctx)
	if err != nil {
		return nil, "", err
	}
	return list, last, nil
}

func (s *LocationStore) save(ctx context.Context, list []string) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding locations: %w", err)
	}
	if err := s.rdb.Set(ctx, keyList, data, 0).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", keyList, err)
	}
	return nil
}
