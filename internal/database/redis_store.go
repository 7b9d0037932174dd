// internal/database/redis_store.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tusep-web/config"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "tusep:session:"

// ConnectRedis opens a client and pings it once.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Address, err)
	}
	return rdb, nil
}

// RedisStore shares credentials across BFF replicas. Entries expire after ttl.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(key string) string { return redisKeyPrefix + key }

func (s *RedisStore) Load(ctx context.Context, key string) (Credential, bool, error) {
	val, err := s.rdb.Get(ctx, redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return Credential{}, false, nil
	}
	if err != nil {
		return Credential{}, false, err
	}
	var cred Credential
	if err := json.Unmarshal([]byte(val), &cred); err != nil {
		return Credential{}, false, err
	}
	return cred, true, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, cred Credential) error {
	b, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, redisKey(key), b, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, redisKey(key)).Err()
}
