package config

import (
	"time"

	"github.com/spf13/viper"
)

// settings возвращает эффективные значения известных ключей, приведенные к типу default
func settings(v *viper.Viper, defaults map[string]any) map[string]any {
	out := make(map[string]any, len(defaults))
	for key, def := range defaults {
		switch def.(type) {
		case []string:
			out[key] = v.GetStringSlice(key)
		case time.Duration:
			out[key] = v.GetDuration(key)
		case int:
			out[key] = v.GetInt(key)
		case string:
			out[key] = v.GetString(key)
		default:
			out[key] = v.Get(key)
		}
	}
	return out
}
