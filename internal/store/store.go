package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shenikar/accident_hotspots/internal/metrics"
	"github.com/shenikar/accident_hotspots/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrDatasetUnavailable - файл датасета отсутствует или не читается. Ошибка конфигурации, повтор не выполняется.
var ErrDatasetUnavailable = errors.New("dataset unavailable")

// Envelope - географическая область покрытия датасета
type Envelope struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains проверяет точку на попадание в область, границы включительно
func (e Envelope) Contains(lat, lon float64) bool {
	return lat >= e.MinLat && lat <= e.MaxLat && lon >= e.MinLon && lon <= e.MaxLon
}

// Config - параметры загрузки датасета
type Config struct {
	Path     string
	Envelope Envelope
}

// LoadStats - итог загрузки датасета
type LoadStats struct {
	Accepted  int           `json:"accepted"`
	Rejected  int           `json:"rejected"`
	Lines     int           `json:"lines"`
	Elapsed   time.Duration `json:"elapsed"`
	LoadedAt  time.Time     `json:"loaded_at"`
	FromCache bool          `json:"from_cache"`
}

type snapshot struct {
	records []models.AccidentRecord
	stats   LoadStats
}

// Store держит записи о ДТП в памяти. Файл читается один раз, до явного Reset.
type Store struct {
	cfg     Config
	logger  *logrus.Logger
	metrics *metrics.Metrics

	mu   sync.Mutex // сериализует загрузку
	snap atomic.Pointer[snapshot]
}

// New создает хранилище; файл не читается до первого вызова Load
func New(cfg Config, logger *logrus.Logger, m *metrics.Metrics) *Store {
	return &Store{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
	}
}

// Load возвращает записи датасета, при первом обращении разбирая файл.
// Конкурентные вызовы во время первой загрузки ждут ее завершения и получают тот же результат.
// Начатая загрузка не прерывается отменой контекста.
func (s *Store) Load(ctx context.Context) ([]models.AccidentRecord, LoadStats, error) {
	if snap := s.snap.Load(); snap != nil {
		return snap.records, cachedStats(snap), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Пока ждали блокировку, загрузку мог выполнить другой запрос
	if snap := s.snap.Load(); snap != nil {
		return snap.records, cachedStats(snap), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, LoadStats{}, err
	}

	records, stats, err := s.loadFile()
	if err != nil {
		return nil, LoadStats{}, err
	}

	s.snap.Store(&snapshot{records: records, stats: stats})
	return records, stats, nil
}

// Reset сбрасывает загруженные данные; следующий Load перечитает файл
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Store(nil)
	s.logger.WithField("service", "store").Info("Dataset cache reset")
}

// Stats возвращает статистику последней загрузки; false, если датасет еще не загружен
func (s *Store) Stats() (LoadStats, bool) {
	snap := s.snap.Load()
	if snap == nil {
		return LoadStats{}, false
	}
	return snap.stats, true
}

func cachedStats(snap *snapshot) LoadStats {
	stats := snap.stats
	stats.FromCache = true
	return stats
}

func (s *Store) loadFile() ([]models.AccidentRecord, LoadStats, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "store",
		"method":  "Load",
		"path":    s.cfg.Path,
	})

	f, err := os.Open(s.cfg.Path)
	if err != nil {
		log.WithError(err).Error("Dataset file is not readable")
		return nil, LoadStats{}, fmt.Errorf("%w: %s: %v", ErrDatasetUnavailable, s.cfg.Path, err)
	}
	defer f.Close()

	log.Info("Loading dataset")
	start := time.Now()

	records, stats, err := parseStream(f, s.cfg.Envelope)
	if err != nil {
		log.WithError(err).Error("Failed to read dataset")
		return nil, LoadStats{}, fmt.Errorf("%w: %s: %v", ErrDatasetUnavailable, s.cfg.Path, err)
	}

	stats.Elapsed = time.Since(start)
	stats.LoadedAt = time.Now()

	seconds := stats.Elapsed.Seconds()
	if seconds < 0.001 {
		seconds = 0.001
	}
	log.WithFields(logrus.Fields{
		"accepted":        stats.Accepted,
		"rejected":        stats.Rejected,
		"lines":           stats.Lines,
		"elapsed":         stats.Elapsed.String(),
		"records_per_sec": int(float64(stats.Accepted) / seconds),
	}).Info("Dataset loaded")

	if s.metrics != nil {
		s.metrics.DatasetLoadsTotal.Inc()
		s.metrics.DatasetRecordsAccepted.Set(float64(stats.Accepted))
		s.metrics.DatasetRecordsRejected.Set(float64(stats.Rejected))
		s.metrics.DatasetLoadDuration.Observe(stats.Elapsed.Seconds())
	}

	return records, stats, nil
}

// parseStream читает датасет построчно; битые строки пропускаются и учитываются в Rejected
func parseStream(r io.Reader, env Envelope) ([]models.AccidentRecord, LoadStats, error) {
	var stats LoadStats
	records := make([]models.AccidentRecord, 0, 1024)

	reader := bufio.NewReaderSize(r, 256*1024)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			stats.Lines++
			rec, ok, skip := parseLine(line, env)
			switch {
			case skip:
			case ok:
				records = append(records, rec)
				stats.Accepted++
			default:
				stats.Rejected++
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, stats, err
		}
	}

	return records, stats, nil
}
