package config

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InitRedisServer connects the shared redis client used for refresh tokens
// and the availability calendar cache.
func InitRedisServer(ctx context.Context) *redis.Client {
	addr := GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379")
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: GetEnvOrDefault("REDIS_PASSWORD", ""),
		DB:       0,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		Logger.Fatal("Redis is unreachable", zap.String("addr", addr), zap.Error(err))
	}

	Logger.Info("Connected to redis", zap.String("addr", addr))
	return client
}
