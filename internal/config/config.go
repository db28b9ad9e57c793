package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Поддерживаемые бэкенды кэша ответов
const (
	CacheBackendRedis  = "redis"
	CacheBackendSQLite = "sqlite"
	CacheBackendMemory = "memory"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseURL string `env:"DATABASE_URL"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Dataset Config
	DatasetPath    string  `env:"DATASET_PATH" envDefault:"./data/moskva.ndjson"`
	DatasetMinLat  float64 `env:"DATASET_MIN_LAT" envDefault:"55"`
	DatasetMaxLat  float64 `env:"DATASET_MAX_LAT" envDefault:"56"`
	DatasetMinLon  float64 `env:"DATASET_MIN_LON" envDefault:"37"`
	DatasetMaxLon  float64 `env:"DATASET_MAX_LON" envDefault:"38"`
	DatasetPreload bool    `env:"DATASET_PRELOAD" envDefault:"false"`

	// Query Config
	MaxBBoxDegrees float64 `env:"MAX_BBOX_DEGREES" envDefault:"1.0"`
	DefaultLimit   int     `env:"DEFAULT_LIMIT" envDefault:"1000"`
	MinLimit       int     `env:"MIN_LIMIT" envDefault:"1"`
	MaxLimit       int     `env:"MAX_LIMIT" envDefault:"10000"`

	// Hotspots Config
	DefaultPeriod        string   `env:"DEFAULT_PERIOD" envDefault:"30d"`
	DefaultGridMeters    int      `env:"DEFAULT_GRID_METERS" envDefault:"1000"`
	MinGridMeters        int      `env:"MIN_GRID_METERS" envDefault:"10"`
	DefaultThreshold     int      `env:"DEFAULT_HOTSPOT_THRESHOLD" envDefault:"5"`
	SevereCategories     []string `env:"SEVERE_CATEGORIES" envDefault:"Тяжелый,Смертельный"`
	RiskLow              float64  `env:"RISK_LOW" envDefault:"0.1"`
	RiskMedium           float64  `env:"RISK_MEDIUM" envDefault:"0.2"`
	RiskHigh             float64  `env:"RISK_HIGH" envDefault:"0.3"`
	LowRiskMaxGridMeters float64  `env:"LOW_RISK_MAX_GRID_METERS" envDefault:"500"`

	// Cache Config
	CacheEnabled        bool          `env:"CACHE_ENABLED" envDefault:"true"`
	CacheBackend        string        `env:"CACHE_BACKEND" envDefault:"redis"`
	CacheTTL            time.Duration `env:"CACHE_TTL" envDefault:"1h"`
	CacheSQLitePath     string        `env:"CACHE_SQLITE_PATH" envDefault:"./data/cache.db"`
	CacheMemoryEntries  int           `env:"CACHE_MEMORY_ENTRIES" envDefault:"1024"`
	CacheBreakerTimeout time.Duration `env:"CACHE_BREAKER_TIMEOUT" envDefault:"30s"`

	// HTTP Config
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`

	// Route history Config
	RouteHistoryKeep     int `env:"ROUTE_HISTORY_KEEP" envDefault:"5"`
	RouteHistoryMaxLimit int `env:"ROUTE_HISTORY_MAX_LIMIT" envDefault:"50"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:     getEnvAsInt("REDIS_DB", 0),

		DatasetPath:    getEnv("DATASET_PATH", "./data/moskva.ndjson"),
		DatasetMinLat:  getEnvAsFloat("DATASET_MIN_LAT", 55),
		DatasetMaxLat:  getEnvAsFloat("DATASET_MAX_LAT", 56),
		DatasetMinLon:  getEnvAsFloat("DATASET_MIN_LON", 37),
		DatasetMaxLon:  getEnvAsFloat("DATASET_MAX_LON", 38),
		DatasetPreload: getEnvAsBool("DATASET_PRELOAD", false),

		MaxBBoxDegrees: getEnvAsFloat("MAX_BBOX_DEGREES", 1.0),
		DefaultLimit:   getEnvAsInt("DEFAULT_LIMIT", 1000),
		MinLimit:       getEnvAsInt("MIN_LIMIT", 1),
		MaxLimit:       getEnvAsInt("MAX_LIMIT", 10000),

		DefaultPeriod:        getEnv("DEFAULT_PERIOD", "30d"),
		DefaultGridMeters:    getEnvAsInt("DEFAULT_GRID_METERS", 1000),
		MinGridMeters:        getEnvAsInt("MIN_GRID_METERS", 10),
		DefaultThreshold:     getEnvAsInt("DEFAULT_HOTSPOT_THRESHOLD", 5),
		SevereCategories:     getEnvAsList("SEVERE_CATEGORIES", []string{"Тяжелый", "Смертельный"}),
		RiskLow:              getEnvAsFloat("RISK_LOW", 0.1),
		RiskMedium:           getEnvAsFloat("RISK_MEDIUM", 0.2),
		RiskHigh:             getEnvAsFloat("RISK_HIGH", 0.3),
		LowRiskMaxGridMeters: getEnvAsFloat("LOW_RISK_MAX_GRID_METERS", 500),

		CacheEnabled:        getEnvAsBool("CACHE_ENABLED", true),
		CacheBackend:        strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendRedis)),
		CacheTTL:            getEnvAsDuration("CACHE_TTL", time.Hour),
		CacheSQLitePath:     getEnv("CACHE_SQLITE_PATH", "./data/cache.db"),
		CacheMemoryEntries:  getEnvAsInt("CACHE_MEMORY_ENTRIES", 1024),
		CacheBreakerTimeout: getEnvAsDuration("CACHE_BREAKER_TIMEOUT", 30*time.Second),

		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),

		RouteHistoryKeep:     getEnvAsInt("ROUTE_HISTORY_KEEP", 5),
		RouteHistoryMaxLimit: getEnvAsInt("ROUTE_HISTORY_MAX_LIMIT", 50),

		// Загрузка API ключей
		APIKeys: getEnvAsList("API_KEYS", nil),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность настроек один раз при старте
func (c *Config) Validate() error {
	if c.DatasetPath == "" {
		return errors.New("DATASET_PATH environment variable is required")
	}
	if c.DatasetMinLat >= c.DatasetMaxLat || c.DatasetMinLon >= c.DatasetMaxLon {
		return errors.New("dataset envelope: min must be less than max")
	}
	if c.MaxBBoxDegrees <= 0 {
		return errors.New("MAX_BBOX_DEGREES must be positive")
	}
	if c.MinLimit < 1 || c.MaxLimit < c.MinLimit {
		return fmt.Errorf("invalid limit range [%d, %d]", c.MinLimit, c.MaxLimit)
	}
	if c.DefaultGridMeters < c.MinGridMeters || c.MinGridMeters <= 0 {
		return fmt.Errorf("invalid grid size: default %d, min %d", c.DefaultGridMeters, c.MinGridMeters)
	}
	if !(c.RiskLow <= c.RiskMedium && c.RiskMedium <= c.RiskHigh) {
		return errors.New("risk thresholds must satisfy RISK_LOW <= RISK_MEDIUM <= RISK_HIGH")
	}
	switch c.CacheBackend {
	case CacheBackendRedis, CacheBackendSQLite, CacheBackendMemory:
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend)
	}
	if c.CacheEnabled && c.CacheTTL <= 0 {
		return errors.New("CACHE_TTL must be positive")
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBool возвращает значение переменной окружения как bool или значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// getEnvAsList разбирает список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
