package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the optional `--config dachs.yaml` file's shape (spec
// SPEC_FULL.md "[DOMAIN] Dependencies wired from the example pack":
// "the CLI's optional --config dachs.yaml file (import search paths,
// default optimization level), read at startup"). Flags explicitly
// passed on the command line always win over a value loaded here; a
// config file only supplies defaults for flags the user left unset.
type Config struct {
	ImportPaths []string `yaml:"import_paths"`
	OptLevel    string   `yaml:"opt"`
}

// loadConfig reads and parses a dachs.yaml config file with goccy/go-yaml.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// applyConfigDefaults fills in opts fields the user did not pass
// explicitly on the command line from cfg, flags taking precedence.
func applyConfigDefaults(opts *Options, cfg *Config, importPathsSet, optLevelSet bool) {
	if !importPathsSet {
		opts.ImportPaths = append(opts.ImportPaths, cfg.ImportPaths...)
	}
	if !optLevelSet && cfg.OptLevel != "" {
		opts.OptLevel = cfg.OptLevel
	}
}
