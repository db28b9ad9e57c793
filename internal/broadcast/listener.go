package broadcast

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ResetHandler вызывается на каждое событие сброса от другого экземпляра
type ResetHandler func(event ResetEvent)

// Listener - подписчик канала сброса датасета
type Listener struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	instanceID  string
	onReset     ResetHandler
}

// NewListener создает подписчика; события от instanceID (своего процесса) пропускаются
func NewListener(redisClient *redis.Client, logger *logrus.Logger, instanceID string, onReset ResetHandler) *Listener {
	return &Listener{
		redisClient: redisClient,
		logger:      logger,
		instanceID:  instanceID,
		onReset:     onReset,
	}
}

// Start запускает горутину, читающую канал до отмены контекста
func (l *Listener) Start(ctx context.Context) {
	l.logger.Info("Starting dataset reset listener...")

	pubsub := l.redisClient.Subscribe(ctx, resetChannel)
	go func() {
		defer pubsub.Close()

		// Channel сам переподключается при обрыве соединения
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				l.logger.Info("Stopping dataset reset listener.")
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				l.handle(msg.Payload)
			}
		}
	}()
}

func (l *Listener) handle(payload string) {
	var event ResetEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		l.logger.WithError(err).Error("Failed to unmarshal reset event from Redis")
		return
	}
	if event.InstanceID == l.instanceID {
		return
	}

	l.logger.WithFields(logrus.Fields{
		"source_instance": event.InstanceID,
		"reason":          event.Reason,
	}).Info("Dataset reset requested by another instance")
	l.onReset(event)
}
