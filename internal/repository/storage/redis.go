package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// New dials Redis and pings it so a bad address fails at startup.
func New(ctx context.Context, addr string) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return conn, nil
}
