// Package appconfig loads the optional YAML configuration file that
// can override this program's logging verbosity and default I/O
// paths, in the same load-then-validate shape the pack's
// configuration loader uses for its own YAML config.
package appconfig

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// AppConfig is the root of the optional YAML config file.
type AppConfig struct {
	LogLevel   string `yaml:"log_level" validate:"omitempty,oneof=quiet info debug"`
	InputPath  string `yaml:"input_path"`
	OutputPath string `yaml:"output_path"`
}

// Default returns the built-in configuration used when no config
// file is supplied.
func Default() *AppConfig {
	return &AppConfig{LogLevel: "info"}
}

// Load reads and validates the YAML config file at path. An empty
// path returns Default() without touching the filesystem.
func Load(path string) (*AppConfig, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}
