package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "WORDIZ"

var defaults = map[string]any{
	"db.path":                 "",
	"log.level":               "info",
	"log.format":              "json",
	"log.file":                "",
	"quiz.mode":               "practice",
	"quiz.difficulty":         "mixed",
	"quiz.category":           "",
	"quiz.count":              10,
	"quiz.time_limit_seconds": 60,
	"timing.feedback_delay":   1500 * time.Millisecond,
	"timing.hint_delay":       2500 * time.Millisecond,
	"timing.wrong_flash":      600 * time.Millisecond,
	"timing.tick":             time.Second,
	"corpus.path":             "",
}

// Load reads configuration. configFile may be empty, in which case the
// default location is tried and silently skipped when missing. Environment
// variables take precedence over file values.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetConfigType("yaml")
	explicit := configFile != ""
	if !explicit {
		configFile = DefaultConfigPath()
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return nil, fmt.Errorf("read config %s: %w", configFile, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	applyDBEnv(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDBEnv lets WORDIZ_DB_PATH, then the older WORDIZ_DB, override
// db.path. A set WORDIZ_DB shadows the db section under AutomaticEnv, so
// neither is read through viper.
func applyDBEnv(cfg *Config) {
	if p := os.Getenv(EnvPrefix + "_DB_PATH"); p != "" {
		cfg.DB.Path = p
	} else if p := os.Getenv(EnvPrefix + "_DB"); p != "" {
		cfg.DB.Path = p
	}
}

var validate = validator.New()

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/wordiz/config.yaml, falling
// back to ~/.config. It returns "" when no home directory is known.
func DefaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "wordiz", "config.yaml")
}
