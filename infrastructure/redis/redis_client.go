package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"people-directory/domain/repositories"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RedisClient wraps go-redis and implements the key-value store.
type RedisClient struct {
	client *goredis.Client
}

var _ repositories.KeyValueStore = (*RedisClient)(nil)

func NewRedisClient(config RedisConfig) *RedisClient {
	return &RedisClient{
		client: goredis.NewClient(&goredis.Options{
			Addr:         fmt.Sprintf("%s:%s", config.Host, config.Port),
			Password:     config.Password,
			DB:           config.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}),
	}
}

// NewRedisClientFrom wraps an existing client.
func NewRedisClientFrom(client *goredis.Client) *RedisClient {
	return &RedisClient{client: client}
}

func (r *RedisClient) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value without expiry.
func (r *RedisClient) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisClient) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
