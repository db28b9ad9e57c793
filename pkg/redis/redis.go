package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	connectAttempts = 5
	connectInterval = 300 * time.Millisecond
)

// Options - параметры подключения к Redis
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient создает клиент Redis; ping повторяется с экспоненциальной задержкой
func NewRedisClient(ctx context.Context, opts Options, log *logrus.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: 10,
	})

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = connectInterval
	bo.MaxElapsedTime = 0

	ping := func() error {
		return rdb.Ping(ctx).Err()
	}
	notify := func(err error, next time.Duration) {
		log.WithError(err).WithField("retry_in", next.String()).Warn("Redis is not ready")
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(backoff.WithMaxRetries(bo, connectAttempts), ctx), notify); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	return rdb, nil
}
