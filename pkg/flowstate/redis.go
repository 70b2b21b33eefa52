package flowstate

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by Redis. Records are stored as JSON under a
// configurable key prefix with a server-side TTL, so expiry holds across
// application restarts and multiple nodes.
type Redis struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisOption configures the Redis store.
type RedisOption func(*Redis)

// WithRedisPrefix sets the key prefix. Default: "wechat_login:state".
func WithRedisPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// WithRedisTTL sets the record lifetime. Default: DefaultTTL.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// NewRedis creates a Redis-backed pending-state store.
// The client should be obtained from pkg/redis.Open or pkg/redis.MustOpen.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		prefix: "wechat_login:state",
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Save persists a record keyed by its token with the configured TTL.
func (r *Redis) Save(ctx context.Context, rec Record) error {
	if rec.Token == "" {
		return ErrEmptyToken
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.key(rec.Token), data, r.ttl).Err()
}

// Consume retrieves and deletes the record for the token using GETDEL,
// so two concurrent callbacks with the same state cannot both succeed.
func (r *Redis) Consume(ctx context.Context, token string) (Record, error) {
	if token == "" {
		return Record{}, ErrNotFound
	}

	data, err := r.client.GetDel(ctx, r.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, err
	}

	return rec, nil
}

func (r *Redis) key(token string) string {
	return r.prefix + ":" + token
}

var _ Store = (*Redis)(nil)
