package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// generationKey хранится без TTL
const generationKey = "generation"

// RedisBackend хранит ответы в Redis с TTL
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend создает бэкенд; prefix отделяет ключи сервиса от чужих
func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, wrapErr("redis get", err)
	}
	return val, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.prefix+key, val, ttl).Err(); err != nil {
		return wrapErr("redis set", err)
	}
	return nil
}

func (b *RedisBackend) Generation(ctx context.Context) (uint64, error) {
	raw, err := b.client.Get(ctx, b.prefix+generationKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, wrapErr("redis generation", err)
	}
	gen, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, wrapErr("redis generation", err)
	}
	return gen, nil
}

func (b *RedisBackend) BumpGeneration(ctx context.Context) (uint64, error) {
	gen, err := b.client.Incr(ctx, b.prefix+generationKey).Result()
	if err != nil {
		return 0, wrapErr("redis incr generation", err)
	}
	return uint64(gen), nil
}
