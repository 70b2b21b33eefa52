package redis

import (
	"context"
	"io"
)

// Shutdown returns a hook that closes the Redis client, for wiring into
// the host platform's shutdown sequence.
func Shutdown(client io.Closer) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Close()
	}
}
