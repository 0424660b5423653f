package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // label_timezone must resolve on hosts without a zoneinfo db

	"github.com/BurntSushi/toml"
)

const (
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// workouts
	StoreBackend        string   `toml:"store_backend"`
	StorageKey          string   `toml:"storage_key"`
	LabelLocale         string   `toml:"label_locale"`
	LabelTimezone       string   `toml:"label_timezone"`
	AddRateLimitPerMin  int      `toml:"add_rate_limit_per_min"`
	AllowedOrigins      []string `toml:"allowed_origins"`
	MemoryStoreSizeMB   int      `toml:"memory_store_size_mb"`
	ShutdownWaitSeconds int      `toml:"shutdown_wait_seconds"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	RedisDB   int    `toml:"redis_db"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		if t.Development == nil {
			return nil, errors.New("development config missing")
		}
		return t.Development, nil
	case "prod", "production":
		if t.Production == nil {
			return nil, errors.New("production config missing")
		}
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the config for env,
// with defaults applied and validated.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml config %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults(env)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults(env string) {
	if c.Environment == "" {
		c.Environment = strings.ToLower(env)
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.StoreBackend == "" {
		c.StoreBackend = StoreBackendMemory
	}
	if c.StorageKey == "" {
		c.StorageKey = "workouts"
	}
	if c.LabelLocale == "" {
		c.LabelLocale = "en-US"
	}
	if c.LabelTimezone == "" {
		c.LabelTimezone = "UTC"
	}
	if c.MemoryStoreSizeMB == 0 {
		c.MemoryStoreSizeMB = 32
	}
	if c.ShutdownWaitSeconds == 0 {
		c.ShutdownWaitSeconds = 15
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.AddRateLimitPerMin < 0 {
		return errors.New("add_rate_limit_per_min cannot be negative")
	}
	if _, err := time.LoadLocation(c.LabelTimezone); err != nil {
		return fmt.Errorf("label_timezone: %w", err)
	}

	switch c.StoreBackend {
	case StoreBackendRedis:
		if c.RedisHost == "" {
			return errors.New("redis_host is required for the redis store backend")
		}
	case StoreBackendPostgres:
		if c.PostgresHost == "" || c.PostgresDBName == "" {
			return errors.New("postgres_host and postgres_db_name are required for the postgres store backend")
		}
	case StoreBackendMemory:
		if c.MemoryStoreSizeMB < 0 {
			return errors.New("memory_store_size_mb cannot be negative")
		}
	default:
		return fmt.Errorf("unknown store backend: %s", c.StoreBackend)
	}

	return nil
}

func (c *Config) LabelLocation() *time.Location {
	loc, err := time.LoadLocation(c.LabelTimezone)
	if err != nil {
		// already checked in Validate
		return time.UTC
	}
	return loc
}

func (c *Config) ShutdownWait() time.Duration {
	return time.Duration(c.ShutdownWaitSeconds) * time.Second
}
