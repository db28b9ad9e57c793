package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/shenikar/accident_hotspots/internal/broadcast"
	"github.com/shenikar/accident_hotspots/internal/cache"
	"github.com/shenikar/accident_hotspots/internal/config"
	v1 "github.com/shenikar/accident_hotspots/internal/handler/http/v1"
	"github.com/shenikar/accident_hotspots/internal/metrics"
	"github.com/shenikar/accident_hotspots/internal/repository"
	"github.com/shenikar/accident_hotspots/internal/service"
	"github.com/shenikar/accident_hotspots/internal/store"
	"github.com/shenikar/accident_hotspots/pkg/logger"
	"github.com/shenikar/accident_hotspots/pkg/postgres"
	redisclient "github.com/shenikar/accident_hotspots/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/accident_hotspots/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	cacheKeyPrefix     = "accident_hotspots:"
	cachePurgeInterval = 10 * time.Minute
)

// @title Accident Hotspots API
// @version 1.0
// @description Road accident points and hotspot aggregation over a GeoJSON dataset.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
		migrationURL = strings.Replace(migrationURL, "postgresql://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// newCacheBackend выбирает бэкенд кэша ответов; внешние бэкенды закрываются автоматом
func newCacheBackend(
	ctx context.Context,
	cfg *config.Config,
	redisClient *goredis.Client,
	clock clockwork.Clock,
	log *logrus.Logger,
) (cache.Backend, func(), error) {
	noop := func() {}
	if !cfg.CacheEnabled {
		log.Info("Response cache is disabled")
		return cache.Disabled{}, noop, nil
	}

	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		if redisClient == nil {
			log.Warn("Redis is unavailable, falling back to in-memory response cache")
			return cache.NewMemoryBackend(cfg.CacheMemoryEntries, clock), noop, nil
		}
		backend := cache.NewRedisBackend(redisClient, cacheKeyPrefix)
		return cache.NewBreakerBackend(backend, "redis-cache", cfg.CacheBreakerTimeout, log), noop, nil

	case config.CacheBackendSQLite:
		backend, err := cache.OpenSQLite(ctx, cfg.CacheSQLitePath, clock)
		if err != nil {
			return nil, noop, err
		}
		go purgeExpired(ctx, backend, log)
		closeFn := func() {
			if err := backend.Close(); err != nil {
				log.WithError(err).Warn("Failed to close SQLite cache")
			}
		}
		return cache.NewBreakerBackend(backend, "sqlite-cache", cfg.CacheBreakerTimeout, log), closeFn, nil

	default:
		return cache.NewMemoryBackend(cfg.CacheMemoryEntries, clock), noop, nil
	}
}

// purgeExpired периодически удаляет просроченные записи SQLite-кэша
func purgeExpired(ctx context.Context, backend *cache.SQLiteBackend, log *logrus.Logger) {
	ticker := time.NewTicker(cachePurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := backend.Purge(ctx)
			if err != nil {
				log.WithError(err).Warn("Failed to purge SQLite cache")
				continue
			}
			if n > 0 {
				log.WithField("deleted", n).Debug("Expired cache entries purged")
			}
		}
	}
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewRealClock()
	appMetrics := metrics.NewMetrics()
	instanceID := service.NewInstanceID()

	// Хранилище датасета
	datasetStore := store.New(store.Config{
		Path: cfg.DatasetPath,
		Envelope: store.Envelope{
			MinLat: cfg.DatasetMinLat,
			MaxLat: cfg.DatasetMaxLat,
			MinLon: cfg.DatasetMinLon,
			MaxLon: cfg.DatasetMaxLon,
		},
	}, log, appMetrics)

	if cfg.DatasetPreload {
		if _, _, err := datasetStore.Load(ctx); err != nil {
			log.Fatalf("Failed to preload dataset: %v", err)
		}
	}

	// Redis нужен для кэша и рассылки сброса, но не обязателен
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = redisclient.NewRedisClient(ctx, redisclient.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		}, log)
		if err != nil {
			log.WithError(err).Warn("Redis is unavailable, dataset resets will not be broadcast")
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Info("Successfully connected to Redis")
		}
	}

	// Кэш ответов
	backend, closeBackend, err := newCacheBackend(ctx, cfg, redisClient, clock, log)
	if err != nil {
		log.Fatalf("Failed to initialize response cache: %v", err)
	}
	defer closeBackend()
	responseCache := cache.New(backend, log, appMetrics)

	// Рассылка сброса датасета между экземплярами
	var publisher broadcast.ResetPublisher = broadcast.NopPublisher{}
	if redisClient != nil {
		publisher = broadcast.NewRedisResetPublisher(redisClient)
	}

	accidentService := service.NewAccidentService(
		datasetStore, responseCache, publisher, log, cfg, appMetrics, clock, instanceID,
	)

	if redisClient != nil {
		listener := broadcast.NewListener(redisClient, log, instanceID, accidentService.HandleRemoteReset)
		listener.Start(ctx)
	}

	// История маршрутов работает только при заданной DATABASE_URL
	var routeRepo service.RouteHistoryRepository
	if cfg.DatabaseURL != "" {
		if err := runMigrations(cfg, log); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}

		dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL, log)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer dbpool.Close()
		log.Info("Successfully connected to PostgreSQL")

		routeRepo = repository.NewRouteHistoryRepository(dbpool)
	} else {
		log.Info("DATABASE_URL is not set, route history is disabled")
	}
	routeService := service.NewRouteHistoryService(routeRepo, log, cfg)

	// Инициализация хэндлеров
	handler := v1.NewHandler(accidentService, routeService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(v1.MetricsMiddleware(appMetrics))
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           v1.RateLimitByIP(cfg.RateLimitPerMinute)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.WithField("instance_id", instanceID).Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
		return
	}

	log.Info("Server gracefully stopped")
}
