package apilog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const defaultKey = "storefront:apilog"

// RedisSink keeps the last MaxEntries entries in a capped Redis list, so the
// log feed survives restarts and is shared across instances.
type RedisSink struct {
	client *redis.Client
	key    string
}

// NewRedisSink returns a sink backed by the given Redis client.
func NewRedisSink(client *redis.Client) *RedisSink {
	return &RedisSink{client: client, key: defaultKey}
}

// Append pushes the entry to the head of the list and trims to MaxEntries.
func (s *RedisSink) Append(ctx context.Context, e Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("apilog: marshal entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, raw)
	pipe.LTrim(ctx, s.key, 0, MaxEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("apilog: append: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 means all.
func (s *RedisSink) List(ctx context.Context, limit int) ([]Entry, error) {
	stop := int64(MaxEntries - 1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	raws, err := s.client.LRange(ctx, s.key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("apilog: list: %w", err)
	}

	entries := make([]Entry, 0, len(raws))
	for _, raw := range raws {
		var e Entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			// Skip entries written by incompatible versions.
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

var _ Sink = (*RedisSink)(nil)
