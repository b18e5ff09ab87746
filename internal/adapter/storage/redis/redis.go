package redis

import (
	"context"
	"fmt"
	"time"

	"checkout-gateway/config"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// connectTimeout bounds the startup PING.
const connectTimeout = 5 * time.Second

// NewClient connects to the Redis instance backing the rate limiter and the
// confirmation cache. Both tolerate Redis going away later, but a bad address
// at startup is an error.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:       cfg.Addr(),
		Password:   cfg.Password,
		DB:         cfg.DB,
		ClientName: "checkout-gateway",
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Addr(), err)
	}

	log.Debug().Str("addr", cfg.Addr()).Int("db", cfg.DB).Msg("redis ready")
	return client, nil
}
