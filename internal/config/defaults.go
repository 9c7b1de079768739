package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mkadit/qris"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Validation: ValidationConfig{
			Level:        "basic",
			RequiredTags: append([]string(nil), qris.RequiredTags...),
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
		Processor: ProcessorConfig{
			Concurrency: 4,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

const defaultHeader = `# qris configuration
# validation.level: basic | strict
# output.format: text | json | yaml
# log.level: debug | info | warn | error
`

// WriteDefault writes the default configuration to path, creating parent
// directories as needed.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	return os.WriteFile(path, append([]byte(defaultHeader), data...), 0o644)
}
