package redis

import (
	"context"
	"fmt"
	"log"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// NewLocker connects to Redis and wraps the client in a redislock client.
// An empty URL returns a nil locker without error; callers treat that as
// "distributed locking disabled".
func NewLocker(ctx context.Context, redisURL string) (*redislock.Client, func(), error) {
	if redisURL == "" {
		return nil, func() {}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Println("Successfully connected to Redis.")
	closeFn := func() {
		if err := rdb.Close(); err != nil {
			log.Printf("Error closing redis client: %v\n", err)
		}
	}
	return redislock.New(rdb), closeFn, nil
}
