package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cleanadmin/internal/config"
	"cleanadmin/internal/models"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a client from the shared redis settings.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// RedisStore keeps token and admin under two keys that are written and
// deleted in one MULTI block.
type RedisStore struct {
	client   *redis.Client
	tokenKey string
	adminKey string
	ttl      time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:   client,
		tokenKey: prefix + ":token",
		adminKey: prefix + ":admin",
		ttl:      ttl,
	}
}

func (r *RedisStore) Save(ctx context.Context, s models.Session) error {
	if r.client == nil {
		return errors.New("redis client is nil")
	}
	if err := validate(s); err != nil {
		return err
	}
	admin, err := json.Marshal(s.Admin)
	if err != nil {
		return fmt.Errorf("failed to marshal admin: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.tokenKey, s.Token, r.ttl)
		pipe.Set(ctx, r.adminKey, admin, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store session in redis: %w", err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context) (*models.Session, error) {
	if r.client == nil {
		return nil, errors.New("redis client is nil")
	}
	vals, err := r.client.MGet(ctx, r.tokenKey, r.adminKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}

	token, _ := vals[0].(string)
	admin, _ := vals[1].(string)
	if token == "" || admin == "" {
		return nil, nil
	}

	s := models.Session{Token: token}
	if err := json.Unmarshal([]byte(admin), &s.Admin); err != nil {
		return nil, fmt.Errorf("failed to unmarshal admin: %w", err)
	}
	if !complete(s) {
		return nil, nil
	}
	return &s, nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if r.client == nil {
		return errors.New("redis client is nil")
	}
	if err := r.client.Del(ctx, r.tokenKey, r.adminKey).Err(); err != nil {
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}
	return nil
}
