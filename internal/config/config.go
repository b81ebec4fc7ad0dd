package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

var (
	// ErrLoadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrLoadConfig = errors.New("config: failed to load config")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	Inventory InventoryConfig `toml:"inventory"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Jobs      JobsConfig      `toml:"jobs"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`

	// Пустой список отключает CORS
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"` // Пусто - только stdout
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	CatalogTTL int    `toml:"catalog_ttl_seconds"`
}

// InventoryConfig пустой URL отключает движение остатков
type InventoryConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

type JobsConfig struct {
	BlockCleanupEnabled  bool   `toml:"block_cleanup_enabled"`
	BlockCleanupSchedule string `toml:"block_cleanup_schedule"`
	BlockRetentionDays   int    `toml:"block_retention_days"`
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Load читает .env (если есть), затем TOML файл, затем переопределения из окружения
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default значения для необязательных полей
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "spa-booking-service",
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			CatalogTTL: 60,
		},
		Inventory: InventoryConfig{
			Timeout: 5,
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
		Jobs: JobsConfig{
			BlockCleanupSchedule: "0 3 * * *",
			BlockRetentionDays:   30,
		},
	}
}

// applyEnv переопределяет значения файла переменными окружения
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	stringVars := map[string]*string{
		"DB_HOST":        &c.Database.Host,
		"DB_USER":        &c.Database.User,
		"DB_PASSWORD":    &c.Database.Password,
		"DB_NAME":        &c.Database.DBName,
		"DB_SSLMODE":     &c.Database.SSLMode,
		"LOG_LEVEL":      &c.Logs.Level,
		"LOG_FILE":       &c.Logs.File,
		"REDIS_ADDR":     &c.Redis.Addr,
		"REDIS_PASSWORD": &c.Redis.Password,
		"INVENTORY_URL":  &c.Inventory.URL,
	}
	for key, target := range stringVars {
		if value, ok := lookup(key); ok {
			*target = value
		}
	}

	intVars := map[string]*int{
		"DB_PORT":   &c.Database.Port,
		"HTTP_PORT": &c.Server.HTTPPort,
		"REDIS_DB":  &c.Redis.DB,
	}
	for key, target := range intVars {
		value, ok := lookup(key)
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, value)
		}
		*target = parsed
	}

	boolVars := map[string]*bool{
		"METRICS_ENABLED": &c.Metrics.Enabled,
		"REDIS_ENABLED":   &c.Redis.Enabled,
	}
	for key, target := range boolVars {
		value, ok := lookup(key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, key, value)
		}
		*target = parsed
	}

	return nil
}

// Validate проверяет значения после загрузки
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535:
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	case c.Database.Host == "":
		return fmt.Errorf("%w: database.host is empty", ErrInvalidConfig)
	case c.Database.DBName == "":
		return fmt.Errorf("%w: database.dbname is empty", ErrInvalidConfig)
	case c.Database.MaxOpenConns <= 0 || c.Database.MaxIdleConns <= 0:
		return fmt.Errorf("%w: database pool sizes must be positive", ErrInvalidConfig)
	case !validLogLevels[strings.ToLower(c.Logs.Level)]:
		return fmt.Errorf("%w: logs.level %q", ErrInvalidConfig, c.Logs.Level)
	case c.Redis.Enabled && c.Redis.CatalogTTL <= 0:
		return fmt.Errorf("%w: redis.catalog_ttl_seconds must be positive", ErrInvalidConfig)
	case c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0):
		return fmt.Errorf("%w: rate_limit rps and burst must be positive", ErrInvalidConfig)
	}

	if c.Jobs.BlockCleanupEnabled {
		if c.Jobs.BlockRetentionDays <= 0 {
			return fmt.Errorf("%w: jobs.block_retention_days must be positive", ErrInvalidConfig)
		}
		if _, err := cron.ParseStandard(c.Jobs.BlockCleanupSchedule); err != nil {
			return fmt.Errorf("%w: jobs.block_cleanup_schedule: %v", ErrInvalidConfig, err)
		}
	}

	return nil
}
