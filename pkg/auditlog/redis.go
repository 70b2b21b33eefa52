package auditlog

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Redis is a Log backed by a capped Redis list, shared across nodes.
// Each Push is an LPUSH followed by an LTRIM in one pipeline, so the list
// never exceeds its capacity.
type Redis struct {
	client   redis.UniversalClient
	key      string
	capacity int
}

// RedisOption configures the Redis log.
type RedisOption func(*Redis)

// WithRedisKey sets the list key. Default: "wechat_login:events".
func WithRedisKey(key string) RedisOption {
	return func(r *Redis) {
		if key != "" {
			r.key = key
		}
	}
}

// WithRedisCapacity sets the retained entry count. Default: DefaultCapacity.
func WithRedisCapacity(capacity int) RedisOption {
	return func(r *Redis) {
		if capacity > 0 {
			r.capacity = capacity
		}
	}
}

// NewRedis creates a Redis-backed audit trail.
// The client should be obtained from pkg/redis.Open or pkg/redis.MustOpen.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{
		client:   client,
		key:      "wechat_login:events",
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Push appends an event, trimming the list to capacity.
func (r *Redis) Push(ctx context.Context, msg string) error {
	data, err := json.Marshal(newEntry(msg))
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.LPush(ctx, r.key, data)
	pipe.LTrim(ctx, r.key, 0, int64(r.capacity-1))
	_, err = pipe.Exec(ctx)
	return err
}

// List returns up to limit entries starting at offset, newest first.
// Rows that fail to decode are returned as raw messages rather than
// dropped, so a corrupted entry stays visible to the operator.
func (r *Redis) List(ctx context.Context, limit, offset int) ([]Entry, error) {
	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	rows, err := r.client.LRange(ctx, r.key, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(rows))
	for _, row := range rows {
		var e Entry
		if err := json.Unmarshal([]byte(row), &e); err != nil {
			e = Entry{Msg: row}
		}
		out = append(out, e)
	}

	return out, nil
}

// Clear removes all entries.
func (r *Redis) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

var _ Log = (*Redis)(nil)
