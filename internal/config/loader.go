package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mkadit/qris"
)

// EnvPrefix prefixes environment overrides, e.g. QRIS_OUTPUT_FORMAT.
const EnvPrefix = "QRIS"

var envKeys = []string{
	"validation.level",
	"validation.required_tags",
	"output.format",
	"output.color",
	"processor.concurrency",
	"log.level",
}

// Load builds the configuration from defaults, then the config file, then
// QRIS_* environment variables. With an explicit path that file must exist;
// otherwise the global and project files are merged when present, the
// project file winning.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	} else {
		for _, p := range []string{GlobalConfigPath(), ProjectConfigPath()} {
			if p == "" {
				continue
			}
			if err := loadFile(p, cfg); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("load config %s: %w", p, err)
			}
		}
	}

	if err := loadEnv(cfg); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

func loadEnv(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return err
		}
	}
	return v.Unmarshal(cfg)
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	if _, err := qris.ParseValidationLevel(c.Validation.Level); err != nil {
		return fmt.Errorf("validation.level: %w", err)
	}
	for _, tag := range c.Validation.RequiredTags {
		if len(tag) != qris.TagLength {
			return fmt.Errorf("validation.required_tags: invalid tag %q", tag)
		}
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}
	if c.Processor.Concurrency < 1 {
		return fmt.Errorf("processor.concurrency: must be at least 1, got %d", c.Processor.Concurrency)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// ParseLogLevel maps a level name to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn, err
	}
	return level, nil
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".qris", "config.yaml")
}

// ProjectConfigPath returns the path to the project config file
func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".qris.yaml")
}
