package config

import (
	"os"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Vault:      ".",
		Extensions: []string{".md"},
		Log: LogConfig{
			Enabled: false,
			Level:   "info",
		},
	}
}

// WriteDefault writes the default configuration to a file
func WriteDefault(path string) error {
	content := `# studykit configuration

# Notes directory that document paths are resolved against
vault: .

# Where study counters are stored (default: <vault>/.studykit/data.json)
# data_file: ~/.studykit/data.json

# File extensions treated as documents
extensions:
  - .md

# Debug logging (also enabled by --debug)
log:
  enabled: false
  # dir: ~/.studykit/logs
  level: info
`
	return os.WriteFile(path, []byte(content), 0644)
}
