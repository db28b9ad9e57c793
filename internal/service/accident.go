package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/accident_hotspots/internal/broadcast"
	"github.com/shenikar/accident_hotspots/internal/cache"
	"github.com/shenikar/accident_hotspots/internal/config"
	"github.com/shenikar/accident_hotspots/internal/engine"
	"github.com/shenikar/accident_hotspots/internal/geojson"
	"github.com/shenikar/accident_hotspots/internal/metrics"
	"github.com/shenikar/accident_hotspots/internal/models"
	"github.com/shenikar/accident_hotspots/internal/store"
	"github.com/sirupsen/logrus"
)

// PeriodAll - период без ограничения по времени
const PeriodAll = "all"

const remoteResetTimeout = 5 * time.Second

// DatasetStore определяет контракт хранилища записей о ДТП
type DatasetStore interface {
	Load(ctx context.Context) ([]models.AccidentRecord, store.LoadStats, error)
	Reset()
	Stats() (store.LoadStats, bool)
}

// ResponseCache определяет контракт кэша готовых ответов
type ResponseCache interface {
	GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute cache.ComputeFunc) ([]byte, bool, error)
	Invalidate(ctx context.Context) error
}

// AccidentService определяет контракт запросов к датасету ДТП
type AccidentService interface {
	GetAccidents(ctx context.Context, q AccidentQuery) (*QueryResult, error)
	GetHotspots(ctx context.Context, q HotspotQuery) (*QueryResult, error)
	ResetDataset(ctx context.Context, reason string) error
	HandleRemoteReset(event broadcast.ResetEvent)
	DatasetStats(ctx context.Context) (*DatasetStats, error)
}

// AccidentQuery - запрос точек ДТП в bbox
type AccidentQuery struct {
	BBox  models.BBox
	From  *time.Time
	To    *time.Time
	Days  *int // используется, если From не задан
	Limit *int
}

// HotspotQuery - запрос сетки очагов аварийности
type HotspotQuery struct {
	BBox       models.BBox
	Period     string // "<N>d" или "all"
	Threshold  *int
	GridMeters *int
	Shape      string
}

// QueryResult - готовое тело ответа GeoJSON
type QueryResult struct {
	Body     []byte
	CacheHit bool
}

// DatasetStats - состояние загруженного датасета
type DatasetStats struct {
	Loaded   bool
	Accepted int
	Rejected int
	Lines    int
	Elapsed  time.Duration
	LoadedAt time.Time
}

type accidentService struct {
	store      DatasetStore
	cache      ResponseCache
	publisher  broadcast.ResetPublisher
	logger     *logrus.Logger
	cfg        *config.Config
	metrics    *metrics.Metrics
	clock      clockwork.Clock
	risk       engine.RiskConfig
	severe     map[string]struct{}
	instanceID string
}

// NewAccidentService создает сервис запросов; instanceID отличает этот процесс в рассылке сброса
func NewAccidentService(
	store DatasetStore,
	cache ResponseCache,
	publisher broadcast.ResetPublisher,
	logger *logrus.Logger,
	cfg *config.Config,
	m *metrics.Metrics,
	clock clockwork.Clock,
	instanceID string,
) AccidentService {
	return &accidentService{
		store:     store,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
		metrics:   m,
		clock:     clock,
		risk: engine.RiskConfig{
			Low:                  cfg.RiskLow,
			Medium:               cfg.RiskMedium,
			High:                 cfg.RiskHigh,
			LowVisibilityMaxCell: cfg.LowRiskMaxGridMeters,
		},
		severe:     engine.SevereSet(cfg.SevereCategories),
		instanceID: instanceID,
	}
}

// NewInstanceID возвращает случайный идентификатор процесса
func NewInstanceID() string {
	return uuid.NewString()
}

// GetAccidents возвращает точки ДТП в bbox
func (s *accidentService) GetAccidents(ctx context.Context, q AccidentQuery) (*QueryResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "accident",
		"method":  "GetAccidents",
		"bbox":    q.BBox.String(),
	})

	if err := s.validateBBox(q.BBox); err != nil {
		return nil, err
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return nil, invalid("from", "must not be after to")
	}
	if q.Days != nil && *q.Days < 0 {
		return nil, invalid("days", "must not be negative")
	}

	limit := s.cfg.DefaultLimit
	if q.Limit != nil {
		limit = *q.Limit
	}
	limit = engine.ClampLimit(limit, s.cfg.MinLimit, s.cfg.MaxLimit)

	from := q.From
	if from == nil && q.Days != nil && *q.Days > 0 {
		since := models.WallClock(s.clock.Now()).AddDate(0, 0, -*q.Days)
		from = &since
	}

	key := cache.Key("accidents", q.BBox.String(), formatDate(from), formatDate(q.To), strconv.Itoa(limit))
	body, hit, err := s.cache.GetOrCompute(ctx, key, s.cfg.CacheTTL, func(ctx context.Context) ([]byte, error) {
		start := s.clock.Now()
		records, _, err := s.store.Load(ctx)
		if err != nil {
			return nil, err
		}

		found := engine.Filter(records, engine.FilterQuery{
			BBox:  q.BBox,
			From:  from,
			To:    q.To,
			Limit: limit,
		})
		s.observe("accidents", start)
		log.WithField("found", len(found)).Debug("Accidents filtered")

		return geojson.Marshal(geojson.Accidents(found))
	})
	if err != nil {
		log.WithError(err).Error("Failed to query accidents")
		return nil, fmt.Errorf("service: could not query accidents: %w", err)
	}

	return &QueryResult{Body: body, CacheHit: hit}, nil
}

// GetHotspots строит сетку очагов аварийности в bbox
func (s *accidentService) GetHotspots(ctx context.Context, q HotspotQuery) (*QueryResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "accident",
		"method":  "GetHotspots",
		"bbox":    q.BBox.String(),
	})

	if err := s.validateBBox(q.BBox); err != nil {
		return nil, err
	}

	period := q.Period
	if period == "" {
		period = s.cfg.DefaultPeriod
	}
	days, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	threshold := s.cfg.DefaultThreshold
	if q.Threshold != nil {
		threshold = *q.Threshold
	}
	if threshold < 1 {
		return nil, invalid("threshold", "must be at least 1")
	}

	grid := s.cfg.DefaultGridMeters
	if q.GridMeters != nil {
		grid = *q.GridMeters
	}
	if grid < s.cfg.MinGridMeters {
		return nil, invalid("grid", "must be at least %d meters", s.cfg.MinGridMeters)
	}
	latCells, lonCells := engine.CellCount(q.BBox, float64(grid))
	if float64(latCells)*float64(lonCells) > engine.MaxGridCells {
		return nil, invalid("grid", "too small for this bbox: %dx%d cells", latCells, lonCells)
	}

	shape := q.Shape
	if shape == "" {
		shape = geojson.ShapePoint
	}
	if shape != geojson.ShapePoint && shape != geojson.ShapePolygon {
		return nil, invalid("shape", "must be %q or %q", geojson.ShapePoint, geojson.ShapePolygon)
	}

	key := cache.Key("hotspots", q.BBox.String(), period, strconv.Itoa(threshold), strconv.Itoa(grid), shape)
	body, hit, err := s.cache.GetOrCompute(ctx, key, s.cfg.CacheTTL, func(ctx context.Context) ([]byte, error) {
		start := s.clock.Now()
		records, _, err := s.store.Load(ctx)
		if err != nil {
			return nil, err
		}

		var since *time.Time
		if days > 0 {
			t := models.WallClock(start).AddDate(0, 0, -days)
			since = &t
		}

		cells, stats, err := engine.Aggregate(records, engine.AggregateQuery{
			BBox:           q.BBox,
			Since:          since,
			CellSizeMeters: float64(grid),
			CountThreshold: threshold,
			SevereSet:      s.severe,
		})
		if err != nil {
			return nil, err
		}
		zones := engine.Zones(cells, float64(grid), s.risk)

		s.observe("hotspots", start)
		if s.metrics != nil {
			s.metrics.HotspotCells.Observe(float64(stats.LatCells * stats.LonCells))
		}
		log.WithFields(logrus.Fields{
			"processed":       stats.Processed,
			"in_bbox":         stats.InBBox,
			"grid":            fmt.Sprintf("%dx%d", stats.LatCells, stats.LonCells),
			"cells_with_data": stats.CellsWithData,
			"max_count":       stats.MaxCount,
			"cells":           len(cells),
			"zones":           len(zones),
		}).Info("Hotspots aggregated")

		return geojson.Marshal(geojson.Hotspots(zones, shape))
	})
	if err != nil {
		log.WithError(err).Error("Failed to query hotspots")
		return nil, fmt.Errorf("service: could not query hotspots: %w", err)
	}

	return &QueryResult{Body: body, CacheHit: hit}, nil
}

// ResetDataset сбрасывает датасет и кэш ответов и рассылает событие остальным экземплярам
func (s *accidentService) ResetDataset(ctx context.Context, reason string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "accident",
		"method":  "ResetDataset",
		"reason":  reason,
	})
	log.Info("Resetting dataset")

	s.store.Reset()
	invalidateErr := s.cache.Invalidate(ctx)
	if invalidateErr != nil {
		log.WithError(invalidateErr).Error("Failed to invalidate response cache")
	}

	// Событие рассылается и при ошибке кэша: локальные кэши экземпляров сбросятся сами
	event := broadcast.ResetEvent{
		InstanceID: s.instanceID,
		Reason:     reason,
		Timestamp:  s.clock.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to broadcast dataset reset")
	}

	if invalidateErr != nil {
		return fmt.Errorf("service: could not invalidate response cache: %w", invalidateErr)
	}
	return nil
}

// HandleRemoteReset применяет сброс, запрошенный другим экземпляром
func (s *accidentService) HandleRemoteReset(event broadcast.ResetEvent) {
	log := s.logger.WithFields(logrus.Fields{
		"service":         "accident",
		"method":          "HandleRemoteReset",
		"source_instance": event.InstanceID,
	})
	log.Info("Applying remote dataset reset")
	s.store.Reset()

	// Для общего бэкенда это лишний, но безвредный переход на новое поколение
	ctx, cancel := context.WithTimeout(context.Background(), remoteResetTimeout)
	defer cancel()
	if err := s.cache.Invalidate(ctx); err != nil {
		log.WithError(err).Error("Failed to invalidate response cache")
	}
}

// DatasetStats возвращает статистику загрузки без чтения файла
func (s *accidentService) DatasetStats(ctx context.Context) (*DatasetStats, error) {
	stats, ok := s.store.Stats()
	if !ok {
		return &DatasetStats{Loaded: false}, nil
	}
	return &DatasetStats{
		Loaded:   true,
		Accepted: stats.Accepted,
		Rejected: stats.Rejected,
		Lines:    stats.Lines,
		Elapsed:  stats.Elapsed,
		LoadedAt: stats.LoadedAt,
	}, nil
}

func (s *accidentService) validateBBox(b models.BBox) error {
	if b.MinLat < -90 || b.MaxLat > 90 {
		return invalid("bbox", "latitude must be within [-90, 90]")
	}
	if b.MinLon < -180 || b.MaxLon > 180 {
		return invalid("bbox", "longitude must be within [-180, 180]")
	}
	if !(b.MinLon < b.MaxLon) || !(b.MinLat < b.MaxLat) {
		return invalid("bbox", "min must be less than max")
	}
	if b.Width() > s.cfg.MaxBBoxDegrees || b.Height() > s.cfg.MaxBBoxDegrees {
		return invalid("bbox", "too large, maximum size: %s degrees", strconv.FormatFloat(s.cfg.MaxBBoxDegrees, 'f', -1, 64))
	}
	return nil
}

func (s *accidentService) observe(kind string, start time.Time) {
	if s.metrics != nil {
		s.metrics.QueryDuration.WithLabelValues(kind).Observe(s.clock.Since(start).Seconds())
	}
}

// ParsePeriod разбирает период "<N>d" или "all"; 0 означает без ограничения
func ParsePeriod(period string) (int, error) {
	period = strings.TrimSpace(strings.ToLower(period))
	if period == PeriodAll {
		return 0, nil
	}
	n, ok := strings.CutSuffix(period, "d")
	if !ok {
		return 0, invalid("period", "expected <N>d or %q", PeriodAll)
	}
	days, err := strconv.Atoi(n)
	if err != nil || days <= 0 {
		return 0, invalid("period", "expected positive number of days, got %q", n)
	}
	return days, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// IsDatasetUnavailable сообщает, что ошибка вызвана недоступным файлом датасета
func IsDatasetUnavailable(err error) bool {
	return errors.Is(err, store.ErrDatasetUnavailable)
}
