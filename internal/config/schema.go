package config

// Config represents the full studykit configuration
type Config struct {
	// Vault is the notes directory documents are resolved against
	Vault string `yaml:"vault" mapstructure:"vault"`

	// DataFile holds the persisted counters. Empty means <vault>/.studykit/data.json
	DataFile string `yaml:"data_file" mapstructure:"data_file"`

	// Extensions lists the file extensions treated as documents
	Extensions []string `yaml:"extensions" mapstructure:"extensions"`

	// Log configures the debug log
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// LogConfig configures file logging
type LogConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Level   string `yaml:"level" mapstructure:"level"`
}
