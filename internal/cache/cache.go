package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shenikar/accident_hotspots/internal/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// ErrBackendUnavailable - бэкенд временно недоступен, запрос считается промахом
var ErrBackendUnavailable = errors.New("cache backend unavailable")

// Backend - хранилище готовых ответов с ограниченным сроком жизни.
// Поколение хранится в самом бэкенде, поэтому общий бэкенд дает всем экземплярам одно пространство ключей.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	// Generation возвращает текущее поколение; 0, если сброса еще не было
	Generation(ctx context.Context) (uint64, error)
	// BumpGeneration атомарно увеличивает поколение и возвращает новое значение
	BumpGeneration(ctx context.Context) (uint64, error)
}

// ComputeFunc вычисляет ответ при промахе кэша
type ComputeFunc func(ctx context.Context) ([]byte, error)

// Facade - кэш ответов поверх Backend. Ошибки бэкенда не прерывают запрос:
// чтение считается промахом, запись пропускается.
type Facade struct {
	backend Backend
	logger  *logrus.Logger
	metrics *metrics.Metrics
	group   singleflight.Group
}

// New создает фасад кэша
func New(backend Backend, logger *logrus.Logger, m *metrics.Metrics) *Facade {
	return &Facade{
		backend: backend,
		logger:  logger,
		metrics: m,
	}
}

// GetOrCompute возвращает ответ из кэша или вычисляет и сохраняет его.
// hit == true, если ответ взят из кэша.
func (f *Facade) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, bool, error) {
	kind := keyKind(key)
	log := f.logger.WithFields(logrus.Fields{
		"service": "cache",
		"method":  "GetOrCompute",
		"key":     key,
	})

	// Без поколения неизвестно, какие записи актуальны: ответ вычисляется и не сохраняется
	gen, err := f.backend.Generation(ctx)
	cacheable := err == nil
	if cacheable {
		key = versioned(gen, key)
		log = log.WithField("generation", gen)
	} else {
		log.WithError(err).Warn("Cache generation is unavailable, computing result")
		f.countError("generation")
		key = "uncached:" + key
	}

	if cacheable {
		val, ok, err := f.backend.Get(ctx, key)
		if err != nil {
			log.WithError(err).Warn("Cache read failed, computing result")
			f.countError("get")
		} else if ok {
			f.countLookup(kind, "hit")
			return val, true, nil
		}
	}
	f.countLookup(kind, "miss")

	// Одновременные промахи по одному ключу вычисляются один раз
	res, err, _ := f.group.Do(key, func() (any, error) {
		payload, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		if !cacheable {
			return payload, nil
		}
		if err := f.backend.Set(ctx, key, payload, ttl); err != nil {
			log.WithError(err).Warn("Cache write failed")
			f.countError("set")
		}
		return payload, nil
	})
	if err != nil {
		return nil, false, err
	}

	return res.([]byte), false, nil
}

// Invalidate переводит бэкенд на новое поколение: ранее сохраненные ответы
// перестают читаться всеми экземплярами, которые делят этот бэкенд
func (f *Facade) Invalidate(ctx context.Context) error {
	gen, err := f.backend.BumpGeneration(ctx)
	if err != nil {
		f.countError("invalidate")
		return wrapErr("invalidate", err)
	}
	f.logger.WithFields(logrus.Fields{
		"service":    "cache",
		"generation": gen,
	}).Info("Response cache invalidated")
	return nil
}

func versioned(gen uint64, key string) string {
	return "v" + strconv.FormatUint(gen, 10) + ":" + key
}

func (f *Facade) countLookup(kind, result string) {
	if f.metrics != nil {
		f.metrics.CacheLookups.WithLabelValues(kind, result).Inc()
	}
}

func (f *Facade) countError(op string) {
	if f.metrics != nil {
		f.metrics.CacheErrors.WithLabelValues(op).Inc()
	}
}

// Key собирает ключ вида kind:part1:part2; пустые части сохраняются, чтобы позиции не сдвигались
func Key(kind string, parts ...string) string {
	var b strings.Builder
	b.WriteString(kind)
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}

func keyKind(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}

// Disabled - бэкенд-заглушка: всегда промах, запись игнорируется
type Disabled struct{}

func (Disabled) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (Disabled) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (Disabled) Generation(context.Context) (uint64, error) {
	return 0, nil
}

func (Disabled) BumpGeneration(context.Context) (uint64, error) {
	return 0, nil
}

func wrapErr(op string, err error) error {
	return fmt.Errorf("cache: %s: %w", op, err)
}
