package utils

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var (
	// RedisClient is the shared client used for the notification
	// pub/sub stream. Nil when Redis is not configured; callers must
	// treat publishing as best-effort.
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// InitRedis connects to Redis using REDIS_ADDR. Returns an error only
// when an address is configured but unreachable; a missing address
// disables the live stream instead of failing startup.
func InitRedis() error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR not set, live notification stream disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	if err := client.Ping(Ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	RedisClient = client
	log.Println("✅ Redis connected")
	return nil
}
