package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"ssmv/internal/config"
	"ssmv/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisStore holds the whole collection as one JSON value under a single key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisClient creates a redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = models.DefaultBookingsKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) LoadAll(ctx context.Context) ([]models.Booking, error) {
	if s.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}

	val, err := s.client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return []models.Booking{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings from redis: %w", err)
	}

	var bookings []models.Booking
	if err := json.Unmarshal([]byte(val), &bookings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookings: %w", err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (s *RedisStore) SaveAll(ctx context.Context, bookings []models.Booking) error {
	if s.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	data, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("failed to marshal bookings: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set bookings in redis: %w", err)
	}
	return nil
}

// Ping verifies the redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// Close closes the redis connection.
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
