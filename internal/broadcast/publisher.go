package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	resetChannel = "accident_hotspots:dataset_reset"
)

// ResetEvent - уведомление о сбросе загруженного датасета
type ResetEvent struct {
	InstanceID string    `json:"instance_id"`
	Reason     string    `json:"reason,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ResetPublisher - интерфейс для рассылки события сброса другим экземплярам сервиса
type ResetPublisher interface {
	Publish(ctx context.Context, event ResetEvent) error
}

// RedisResetPublisher - реализация ResetPublisher через Redis Pub/Sub
type RedisResetPublisher struct {
	redisClient *redis.Client
}

// NewRedisResetPublisher создает новый RedisResetPublisher
func NewRedisResetPublisher(client *redis.Client) *RedisResetPublisher {
	return &RedisResetPublisher{
		redisClient: client,
	}
}

// Publish отправляет событие в канал сброса
func (p *RedisResetPublisher) Publish(ctx context.Context, event ResetEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal reset event: %w", err)
	}

	if err := p.redisClient.Publish(ctx, resetChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish reset event to Redis: %w", err)
	}
	return nil
}

// NopPublisher используется, когда Redis не настроен: сброс затрагивает только текущий процесс
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ResetEvent) error {
	return nil
}
