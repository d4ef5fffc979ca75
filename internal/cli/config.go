package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config is the optional YAML config file:
//
//	mode: legacy
//	format: json
//	db: ./programs.db
//
// Values apply only to flags not set on the command line.
type Config struct {
	Mode   string `yaml:"mode"`
	Format string `yaml:"format"`
	DB     string `yaml:"db"`
}

// LoadConfig reads and parses a config file. Unknown keys are rejected so
// typos surface instead of being ignored.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		// An empty file decodes to io.EOF and means "no overrides".
		if len(bytes.TrimSpace(data)) == 0 {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &cfg, nil
}

// Apply copies config values into opts for every flag the user did not set.
func (c *Config) Apply(flags *pflag.FlagSet, opts *RootOptions) {
	if c.Mode != "" && !flags.Changed("mode") {
		opts.Mode = c.Mode
	}
	if c.Format != "" && !flags.Changed("format") {
		opts.Format = c.Format
	}
	if c.DB != "" && !flags.Changed("db") {
		opts.Database = c.DB
	}
}
