package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// MinJWTSecretLen минимальная длина секрета HS256
const MinJWTSecretLen = 32

// Server настройки reference backend
type Server struct {
	Addr            string        `mapstructure:"addr"`
	DBPath          string        `mapstructure:"db_path"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	AuthRateWindow  time.Duration `mapstructure:"auth_rate_window"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AuthRateLimit   int           `mapstructure:"auth_rate_limit"`
}

// ServerDefaults значения по умолчанию
func ServerDefaults() map[string]any {
	return map[string]any{
		"addr":             ":8080",
		"db_path":          "goalsyncd.db",
		"jwt_secret":       "",
		"log_level":        "info",
		"log_format":       "json",
		"cors_origins":     []string{},
		"access_token_ttl": 24 * time.Hour,
		"auth_rate_window": time.Minute,
		"shutdown_timeout": 10 * time.Second,
		"auth_rate_limit":  20,
	}
}

// LoadServer загружает конфигурацию сервера
func LoadServer(path string, flags map[string]*pflag.Flag) (Server, map[string]any, error) {
	v, err := newViper(ServerEnvPrefix, ServerDefaults(), path, path != "", flags)
	if err != nil {
		return Server{}, nil, err
	}

	var cfg Server
	if err := v.Unmarshal(&cfg); err != nil {
		return Server{}, nil, fmt.Errorf("failed to decode server config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Server{}, nil, err
	}

	s := settings(v, ServerDefaults())
	if cfg.JWTSecret != "" {
		s["jwt_secret"] = "***"
	}
	return cfg, s, nil
}

// Validate проверяет согласованность настроек
func (s Server) Validate() error {
	if s.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if s.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if len(s.JWTSecret) < MinJWTSecretLen {
		return fmt.Errorf("jwt_secret must be at least %d characters (set %s_JWT_SECRET)", MinJWTSecretLen, ServerEnvPrefix)
	}
	if s.AccessTokenTTL <= 0 {
		return fmt.Errorf("access_token_ttl must be positive")
	}
	if s.AuthRateLimit < 1 || s.AuthRateWindow <= 0 {
		return fmt.Errorf("auth rate limit must be positive")
	}
	switch s.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("log_format must be json or text, got %q", s.LogFormat)
	}
	return nil
}
