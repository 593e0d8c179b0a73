package cache

import (
	"context"

	"farmdirect/internal/platform/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Redis holds sessions, one-time codes and rate-limit keys. Nothing in it
// is the source of truth; losing it only signs users out.
var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	_, err := RDB.Ping(ctx).Result()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to Redis")
	}
	log.Info().Msg("Successfully connected to Redis")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		log.Info().Msg("Redis connection closed")
	}
}
