package db

import (
	"context"
	"time"

	"github.com/nazir19980501/mapty/internal/config"

	"github.com/redis/go-redis/v9"
)

const redisDialTimeout = 2 * time.Second

// ConnectRedis returns nil when no address is configured. The client dials
// lazily; use PingRedis to fail early.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DialTimeout: redisDialTimeout,
	})
}

func PingRedis(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	return client.Ping(ctx).Err()
}
