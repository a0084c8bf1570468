package infrastructure

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"library-service/internal/config"
)

// RedisService caches issued tokens and the public statistics payload. It is
// strictly an optimization: when Redis is unreachable the service degrades to
// direct verification and queries.
type RedisService struct {
	client *redis.Client
}

func NewRedisService(cfg *config.Config) *RedisService {
	if cfg.RedisURL != "" {
		if opt, err := redis.ParseURL(cfg.RedisURL); err == nil {
			client := redis.NewClient(opt)
			if err := client.Ping(context.Background()).Err(); err == nil {
				return &RedisService{client: client}
			}
			log.Printf("redis connection failed with REDIS_URL: falling back to host/port")
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis connection failed: %v; token and stats caching disabled", err)
		return &RedisService{client: nil}
	}

	return &RedisService{client: client}
}

// NewRedisServiceWithClient wraps an existing client; a nil client disables
// caching entirely.
func NewRedisServiceWithClient(client *redis.Client) *RedisService {
	return &RedisService{client: client}
}

func (r *RedisService) SetToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, "token:"+token, fmt.Sprintf("%d", userID), ttl).Err()
}

// GetToken returns the cached user id for a token, or redis.Nil when unknown.
func (r *RedisService) GetToken(ctx context.Context, token string) (string, error) {
	if r.client == nil {
		return "", redis.Nil
	}
	return r.client.Get(ctx, "token:"+token).Result()
}

func (r *RedisService) SetStats(ctx context.Context, payload []byte, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, "stats:general", payload, ttl).Err()
}

func (r *RedisService) GetStats(ctx context.Context) ([]byte, error) {
	if r.client == nil {
		return nil, redis.Nil
	}
	return r.client.Get(ctx, "stats:general").Bytes()
}

func (r *RedisService) DeleteKey(ctx context.Context, key string) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, key).Err()
}
