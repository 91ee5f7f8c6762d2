package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/idilsaglam/todobrowser/internal/store/httpstore"
)

// Config holds application configuration.
type Config struct {
	Source SourceConfig
	HTTP   HTTPConfig
	UI     UIConfig
	Log    LogConfig
}

// SourceConfig points at the todo list endpoint.
type SourceConfig struct {
	Endpoint string
}

// HTTPConfig tunes the outbound client.
type HTTPConfig struct {
	Timeout time.Duration // 0 disables the timeout
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme  string // classic | neon | mono
	Locale string // collation locale for title ordering
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	Level string
	File  string
}

// EnvPrefix is prepended to every environment override, e.g. TODO_SOURCE_ENDPOINT.
const EnvPrefix = "TODO"

// New returns a viper instance with defaults, config file lookup and env
// overrides wired up. Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("source.endpoint", httpstore.DefaultEndpoint)
	v.SetDefault("http.timeout", "0s")
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("ui.locale", "en")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads the config file (if any) into v and decodes it.
// path overrides the lookup; otherwise TODO_CONFIG, then ~/.config/todo/config.toml.
func Load(v *viper.Viper, path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "todo"))
		}
		v.SetConfigName("config")
		// missing default config is fine
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.HTTP.Timeout < 0 {
		return Config{}, fmt.Errorf("http.timeout must not be negative, got %s", c.HTTP.Timeout)
	}
	return c, nil
}
