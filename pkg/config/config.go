package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the complete configuration for the application
type AppConfig struct {
	Environment string        `mapstructure:"environment"`
	LogLevel    string        `mapstructure:"log_level"`
	ServiceName string        `mapstructure:"service_name"`
	API         APIConfig     `mapstructure:"api"`
	Clock       ClockConfig   `mapstructure:"clock"`
	Journal     JournalConfig `mapstructure:"journal"`
	Submit      SubmitConfig  `mapstructure:"submit"`
	Server      ServerConfig  `mapstructure:"server"`
}

// APIConfig holds the remote score store settings
type APIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	PageSize    int           `mapstructure:"page_size"`
	MaxPages    int           `mapstructure:"max_pages"`
	LogRequests bool          `mapstructure:"log_requests"`
}

// ClockConfig selects the timestamp zone for record updates
type ClockConfig struct {
	Timezone string `mapstructure:"timezone"` // "utc" or "utc+7"
}

// JournalConfig holds the pending-submission journal settings
type JournalConfig struct {
	Backend   string `mapstructure:"backend"` // "file" or "redis"
	Path      string `mapstructure:"path"`
	RedisAddr string `mapstructure:"redis_addr"`
	RedisKey  string `mapstructure:"redis_key"`
}

// SubmitConfig sizes the submission worker pool
type SubmitConfig struct {
	WorkerCount int `mapstructure:"worker_count"`
	QueueSize   int `mapstructure:"queue_size"`
}

// ServerConfig holds the observability server settings
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load loads configuration from file and environment variables
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	// Default values
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.page_size", 100)
	v.SetDefault("api.max_pages", 10)
	v.SetDefault("api.log_requests", false)
	v.SetDefault("clock.timezone", "utc")
	v.SetDefault("journal.backend", "file")
	v.SetDefault("journal.path", "pending_scores.jsonl")
	v.SetDefault("journal.redis_key", "scoresync:pending")
	v.SetDefault("submit.worker_count", 4)
	v.SetDefault("submit.queue_size", 64)
	v.SetDefault("server.addr", ":8080")

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Config file
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	// Bind environment variables explicitly for nested structs to ensure Unmarshal picks them up
	v.BindEnv("service_name", "SERVICE_NAME")
	v.BindEnv("environment", "ENVIRONMENT")
	v.BindEnv("log_level", "LOG_LEVEL")
	v.BindEnv("api.base_url", "API_BASE_URL")
	v.BindEnv("api.timeout", "API_TIMEOUT")
	v.BindEnv("api.page_size", "API_PAGE_SIZE")
	v.BindEnv("api.max_pages", "API_MAX_PAGES")
	v.BindEnv("api.log_requests", "API_LOG_REQUESTS")
	v.BindEnv("clock.timezone", "CLOCK_TIMEZONE")
	v.BindEnv("journal.backend", "JOURNAL_BACKEND")
	v.BindEnv("journal.path", "JOURNAL_PATH")
	v.BindEnv("journal.redis_addr", "JOURNAL_REDIS_ADDR")
	v.BindEnv("journal.redis_key", "JOURNAL_REDIS_KEY")
	v.BindEnv("submit.worker_count", "SUBMIT_WORKER_COUNT")
	v.BindEnv("submit.queue_size", "SUBMIT_QUEUE_SIZE")
	v.BindEnv("server.addr", "SERVER_ADDR")

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *AppConfig) Validate() error {
	if c.ServiceName == "" {
		return errors.New("service_name is required")
	}
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.PageSize <= 0 {
		return errors.New("api.page_size must be positive")
	}
	if c.API.MaxPages <= 0 {
		return errors.New("api.max_pages must be positive")
	}
	if c.Clock.Timezone != "utc" && c.Clock.Timezone != "utc+7" {
		return errors.New("clock.timezone must be utc or utc+7")
	}
	switch c.Journal.Backend {
	case "file":
		if c.Journal.Path == "" {
			return errors.New("journal.path is required for the file backend")
		}
	case "redis":
		if c.Journal.RedisAddr == "" {
			return errors.New("journal.redis_addr is required for the redis backend")
		}
	default:
		return errors.New("journal.backend must be file or redis")
	}
	if c.Submit.WorkerCount <= 0 {
		return errors.New("submit.worker_count must be positive")
	}
	return nil
}
