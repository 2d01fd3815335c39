package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
)

// Client настройки CLI клиента
type Client struct {
	ServerURL      string        `mapstructure:"server_url"`
	DBPath         string        `mapstructure:"db_path"`
	Timezone       string        `mapstructure:"timezone"`
	LogLevel       string        `mapstructure:"log_level"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay"`
	RetryMaxDelay  time.Duration `mapstructure:"retry_max_delay"`
	MaxRetries     int           `mapstructure:"max_retries"`
	MaxQueueSize   int           `mapstructure:"max_queue_size"`
}

// ClientDefaults значения по умолчанию
func ClientDefaults() map[string]any {
	return map[string]any{
		"server_url":       "http://localhost:8080",
		"db_path":          filepath.Join(DefaultDir(), "goalsync.db"),
		"timezone":         "",
		"log_level":        "warn",
		"poll_interval":    30 * time.Second,
		"retry_base_delay": time.Second,
		"retry_max_delay":  60 * time.Second,
		"max_retries":      5,
		"max_queue_size":   1000,
	}
}

// DefaultClientConfigPath путь к файлу конфигурации клиента по умолчанию
func DefaultClientConfigPath() string {
	return filepath.Join(DefaultDir(), "config.toml")
}

// LoadClient загружает конфигурацию клиента.
// path пустой: используется путь по умолчанию, и его отсутствие не ошибка.
func LoadClient(path string, flags map[string]*pflag.Flag) (Client, map[string]any, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultClientConfigPath()
	}

	v, err := newViper(ClientEnvPrefix, ClientDefaults(), path, explicit, flags)
	if err != nil {
		return Client{}, nil, err
	}

	var cfg Client
	if err := v.Unmarshal(&cfg); err != nil {
		return Client{}, nil, fmt.Errorf("failed to decode client config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Client{}, nil, err
	}

	return cfg, settings(v, ClientDefaults()), nil
}

// Validate проверяет согласованность настроек
func (c Client) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1")
	}
	if c.RetryBaseDelay <= 0 || c.RetryMaxDelay < c.RetryBaseDelay {
		return fmt.Errorf("retry delays must satisfy 0 < retry_base_delay <= retry_max_delay")
	}
	if c.MaxQueueSize < 1 {
		return fmt.Errorf("max_queue_size must be at least 1")
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
	}
	return nil
}
