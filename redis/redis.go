package redis

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// InitRedis connects to the refresh-token store. The API degrades gracefully
// when Redis is absent: tokens simply cannot be revoked before expiry.
func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	if _, err := Client.Ping(Ctx).Result(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	log.Println("Connected to Redis")
}

func refreshKey(userID uint, token string) string {
	return fmt.Sprintf("refresh:%d:%s", userID, token)
}

// StoreRefreshToken records an issued refresh token so it can be revoked.
func StoreRefreshToken(userID uint, token string, ttl time.Duration) error {
	if Client == nil {
		return nil
	}
	return Client.Set(Ctx, refreshKey(userID, token), "1", ttl).Err()
}

// RefreshTokenActive reports whether the token was issued and not revoked.
// Without Redis every syntactically valid token is accepted.
func RefreshTokenActive(userID uint, token string) bool {
	if Client == nil {
		return true
	}
	n, err := Client.Exists(Ctx, refreshKey(userID, token)).Result()
	return err == nil && n > 0
}

// RevokeRefreshToken drops the token on logout.
func RevokeRefreshToken(userID uint, token string) error {
	if Client == nil {
		return nil
	}
	return Client.Del(Ctx, refreshKey(userID, token)).Err()
}
