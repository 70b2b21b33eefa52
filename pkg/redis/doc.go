// Package redis bootstraps the shared Redis client used by the pending-state
// store and the audit trail.
//
// It wraps [github.com/redis/go-redis/v9] with URL-based configuration,
// startup retry logic, and a shutdown hook. Both redis:// and rediss://
// (TLS) schemes are supported.
//
// # Usage
//
//	client, err := redis.Open(ctx, os.Getenv("WECHAT_REDIS_URL"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// MustOpen exits the process on failure, for deployments where the plugin
// cannot run without Redis:
//
//	client := redis.MustOpen(ctx, os.Getenv("WECHAT_REDIS_URL"))
package redis
