package config

// Config represents the qris tool configuration
type Config struct {
	// Payload validation
	Validation ValidationConfig `yaml:"validation" mapstructure:"validation"`

	// Output rendering
	Output OutputConfig `yaml:"output" mapstructure:"output"`

	// Batch processing
	Processor ProcessorConfig `yaml:"processor" mapstructure:"processor"`

	// Diagnostics
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// ValidationConfig configures the payload validator
type ValidationConfig struct {
	Level        string   `yaml:"level" mapstructure:"level"`
	RequiredTags []string `yaml:"required_tags" mapstructure:"required_tags"`
}

// OutputConfig configures how results are printed
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	Color  bool   `yaml:"color" mapstructure:"color"`
}

// ProcessorConfig configures concurrent validation of many payloads
type ProcessorConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// LogConfig configures the stderr logger
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}
