package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const (
	connectAttempts = 5
	connectInterval = 500 * time.Millisecond
)

// NewPostgresDB создает пул соединений PostgreSQL; ping повторяется с экспоненциальной задержкой
func NewPostgresDB(ctx context.Context, databaseURL string, log *logrus.Logger) (*pgxpool.Pool, error) {
	cfgPool, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе конфигурации postgres: %w", err)
	}

	dbpool, err := pgxpool.NewWithConfig(ctx, cfgPool)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пул соединений: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = connectInterval
	bo.MaxElapsedTime = 0

	ping := func() error {
		return dbpool.Ping(ctx)
	}
	notify := func(err error, next time.Duration) {
		log.WithError(err).WithField("retry_in", next.String()).Warn("PostgreSQL is not ready")
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(backoff.WithMaxRetries(bo, connectAttempts), ctx), notify); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("не удалось выполнить ping к postgres: %w", err)
	}

	return dbpool, nil
}
