package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/JonnyWalker81/nutrisense/backend/internal/logger"
	"github.com/JonnyWalker81/nutrisense/backend/internal/pipeline"
)

// Storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverSupabase = "supabase"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig    `mapstructure:"server"`
	Supabase SupabaseConfig  `mapstructure:"supabase"`
	Storage  StorageConfig   `mapstructure:"storage"`
	Redis    RedisConfig     `mapstructure:"redis"`
	Logging  LoggingConfig   `mapstructure:"logging"`
	Engine   pipeline.Config `mapstructure:"engine"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port        string        `mapstructure:"port"`
	Env         string        `mapstructure:"env"`
	CORSOrigins []string      `mapstructure:"cors_origins"`
	RateLimit   int           `mapstructure:"rate_limit"`
	RateWindow  time.Duration `mapstructure:"rate_window"`
	// DevUser is the fallback user id when storage is local and no auth provider is configured
	DevUser string `mapstructure:"dev_user"`
}

// SupabaseConfig holds Supabase-specific configuration
type SupabaseConfig struct {
	URL        string `mapstructure:"url"`
	ServiceKey string `mapstructure:"service_key"`
}

// StorageConfig selects where day records, profiles and products live
type StorageConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// RedisConfig configures the optional cache tier. An empty Addr means in-memory.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	Backend string `mapstructure:"backend"`
}

// Logger converts the section into a logger.Config
func (l LoggingConfig) Logger() logger.Config {
	return logger.Config{
		Level:   logger.ParseLevel(l.Level),
		Format:  l.Format,
		Backend: l.Backend,
	}
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Load reads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return LoadFile("")
}

// LoadFile is Load without .env handling. An empty path searches ./ and ./config
// for config.yaml.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.rate_limit", 120)
	v.SetDefault("server.rate_window", time.Minute)
	v.SetDefault("server.dev_user", "local")
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.sqlite_path", "nutrisense.db")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 6*time.Hour)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.backend", logger.BackendSlog)

	// Read from environment variables
	v.SetEnvPrefix("NUTRISENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also bind to non-prefixed environment variables used by the hosting platform
	_ = v.BindEnv("server.port", "NUTRISENSE_SERVER_PORT", "PORT")
	_ = v.BindEnv("supabase.url", "NUTRISENSE_SUPABASE_URL", "SUPABASE_URL")
	_ = v.BindEnv("supabase.service_key", "NUTRISENSE_SUPABASE_SERVICE_KEY", "SUPABASE_SERVICE_KEY")
	_ = v.BindEnv("redis.addr", "NUTRISENSE_REDIS_ADDR", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "NUTRISENSE_REDIS_PASSWORD")
	_ = v.BindEnv("storage.sqlite_path", "NUTRISENSE_STORAGE_SQLITE_PATH", "DATABASE_PATH")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")

		// It's okay if config file doesn't exist
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Engine thresholds start from the calibrated defaults; the file only overrides
	config := Config{Engine: pipeline.DefaultConfig()}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that all required configuration values are present
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path is required for the sqlite driver")
		}
	case DriverSupabase:
		if c.Supabase.URL == "" {
			return fmt.Errorf("SUPABASE_URL is required")
		}
		if c.Supabase.ServiceKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY is required")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	if c.Engine.Advice.MaxItems <= 0 {
		return fmt.Errorf("engine.advice.max_items must be positive")
	}
	if c.Engine.Stats.HistoryWindow <= 0 {
		return fmt.Errorf("engine.stats.history_window must be positive")
	}
	return nil
}
