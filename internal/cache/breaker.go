package cache

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
)

// BreakerBackend защищает бэкенд предохранителем: при серии ошибок
// запросы к нему не выполняются до истечения таймаута
type BreakerBackend struct {
	inner Backend
	cb    *gobreaker.CircuitBreaker[lookup]
}

// NewBreakerBackend оборачивает бэкенд; timeout - время в открытом состоянии
func NewBreakerBackend(inner Backend, name string, timeout time.Duration, logger *logrus.Logger) *BreakerBackend {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"service": "cache",
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Cache circuit breaker state changed")
		},
	}
	return &BreakerBackend{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[lookup](settings),
	}
}

type lookup struct {
	val []byte
	ok  bool
	gen uint64
}

func (b *BreakerBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	res, err := b.cb.Execute(func() (lookup, error) {
		val, ok, err := b.inner.Get(ctx, key)
		return lookup{val: val, ok: ok}, err
	})
	if err != nil {
		return nil, false, breakerErr(err)
	}
	return res.val, res.ok, nil
}

func (b *BreakerBackend) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	_, err := b.cb.Execute(func() (lookup, error) {
		return lookup{}, b.inner.Set(ctx, key, val, ttl)
	})
	if err != nil {
		return breakerErr(err)
	}
	return nil
}

func (b *BreakerBackend) Generation(ctx context.Context) (uint64, error) {
	res, err := b.cb.Execute(func() (lookup, error) {
		gen, err := b.inner.Generation(ctx)
		return lookup{gen: gen}, err
	})
	if err != nil {
		return 0, breakerErr(err)
	}
	return res.gen, nil
}

func (b *BreakerBackend) BumpGeneration(ctx context.Context) (uint64, error) {
	res, err := b.cb.Execute(func() (lookup, error) {
		gen, err := b.inner.BumpGeneration(ctx)
		return lookup{gen: gen}, err
	})
	if err != nil {
		return 0, breakerErr(err)
	}
	return res.gen, nil
}

// State возвращает текущее состояние предохранителя
func (b *BreakerBackend) State() gobreaker.State {
	return b.cb.State()
}

func breakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return wrapErr("breaker", errors.Join(ErrBackendUnavailable, err))
	}
	return err
}
