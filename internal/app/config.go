package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"liendesk/internal/logging"
	"liendesk/internal/store"
)

// ConfigFileName is read from the home directory when present.
const ConfigFileName = "config.yaml"

// EnvPrefix prefixes environment overrides, e.g. LIENDESK_API_BASE_URL.
const EnvPrefix = "LIENDESK"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home string       `mapstructure:"-"` // config directory, e.g. $HOME/.liendesk
	HTTP *http.Client `mapstructure:"-"` // optional; overrides api.timeout

	API     APIConfig     `mapstructure:"api"`
	Draft   DraftConfig   `mapstructure:"draft"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig locates the lien backend.
type APIConfig struct {
	// BaseURL is the backend root, e.g. http://127.0.0.1:8080
	BaseURL string `mapstructure:"base_url"`
	// Timeout bounds every request.
	Timeout time.Duration `mapstructure:"timeout"`
}

// DraftConfig selects where the wizard resume snapshot lives.
type DraftConfig struct {
	// Backend is one of file, sqlite, redis, memory.
	Backend string `mapstructure:"backend"`
	// RedisURL is used by the redis backend.
	RedisURL string `mapstructure:"redis_url"`
	// TTL expires redis drafts; zero keeps them.
	TTL time.Duration `mapstructure:"ttl"`
}

// LoggingConfig controls the structured log.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	// File writes to {home}/liendesk.log instead of stderr.
	File bool `mapstructure:"file"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		API:     APIConfig{BaseURL: "http://127.0.0.1:8080", Timeout: 30 * time.Second},
		Draft:   DraftConfig{Backend: store.BackendFile, RedisURL: "redis://127.0.0.1:6379/0", TTL: 24 * time.Hour},
		Logging: LoggingConfig{Level: logging.LevelInfo, File: true},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("draft.backend", d.Draft.Backend)
	v.SetDefault("draft.redis_url", d.Draft.RedisURL)
	v.SetDefault("draft.ttl", d.Draft.TTL)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
}

// LoadConfig reads {home}/config.yaml (optional) and LIENDESK_* environment
// overrides on top of the defaults, then validates the result.
func LoadConfig(home string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := filepath.Join(home, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Home = home
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	backends := []string{store.BackendFile, store.BackendSQLite, store.BackendRedis, store.BackendMemory}
	switch {
	case strings.TrimSpace(c.API.BaseURL) == "":
		return fmt.Errorf("config: api.base_url is required")
	case c.API.Timeout <= 0:
		return fmt.Errorf("config: api.timeout must be positive")
	case !slices.Contains(backends, strings.ToLower(c.Draft.Backend)):
		return fmt.Errorf("config: draft.backend %q (want %s)", c.Draft.Backend, strings.Join(backends, ", "))
	case strings.EqualFold(c.Draft.Backend, store.BackendRedis) && c.Draft.RedisURL == "":
		return fmt.Errorf("config: draft.redis_url is required for the redis backend")
	case !slices.Contains(logging.ValidLevels(), strings.ToUpper(c.Logging.Level)):
		return fmt.Errorf("config: logging.level %q (want %s)", c.Logging.Level, strings.Join(logging.ValidLevels(), ", "))
	}
	return nil
}
