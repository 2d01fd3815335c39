// Package config загружает конфигурацию клиента и сервера.
// Приоритет: флаги > переменные окружения > TOML файл > значения по умолчанию.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// ClientEnvPrefix префикс переменных окружения клиента (GOALSYNC_SERVER_URL)
	ClientEnvPrefix = "GOALSYNC"
	// ServerEnvPrefix префикс переменных окружения сервера (GOALSYNCD_ADDR)
	ServerEnvPrefix = "GOALSYNCD"
)

// ErrConfigExists файл конфигурации уже существует
var ErrConfigExists = errors.New("config file already exists")

// newViper создает viper с defaults, env и опциональным TOML файлом.
// Отсутствующий файл по умолчанию не ошибка; явно указанный отсутствующий файл ошибка.
// flags связывает ключ конфигурации с флагом командной строки (учитывается, только если флаг задан).
func newViper(prefix string, defaults map[string]any, path string, explicit bool, flags map[string]*pflag.Flag) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("toml")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, flag := range flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	return v, nil
}

// WriteDefaults пишет значения по умолчанию в TOML файл.
// Существующий файл не перезаписывается без force.
func WriteDefaults(path string, defaults map[string]any, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	data, err := toml.Marshal(tomlValues(defaults))
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Render сериализует эффективную конфигурацию в TOML (для config show)
func Render(settings map[string]any) ([]byte, error) {
	data, err := toml.Marshal(tomlValues(settings))
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// tomlValues приводит значения к виду, который читается обратно через viper:
// длительности как строки "30s", ключи отсортированы
func tomlValues(in map[string]any) map[string]any {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(in))
	for _, k := range keys {
		switch val := in[k].(type) {
		case time.Duration:
			out[k] = val.String()
		default:
			out[k] = val
		}
	}
	return out
}

// DefaultDir каталог конфигурации и данных по умолчанию (~/.config/goalsync)
func DefaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "goalsync")
	}
	return "."
}
