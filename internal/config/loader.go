package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// ConfigPathEnv names the environment variable that points at the
	// CreatorCompass YAML config.
	ConfigPathEnv = "CONFIG_PATH"

	defaultConfigPath = "./config.yaml"
)

// Load builds the service configuration. Values resolve ENV first, then the
// YAML file at $CONFIG_PATH (or ./config.yaml), then env-default tags.
// A missing ./config.yaml is fine and leaves ENV and defaults; a missing file
// named by CONFIG_PATH is an error. The result is validated before return.
func Load() (*Config, error) {
	var cfg Config

	path, explicit := os.LookupEnv(ConfigPathEnv)
	explicit = explicit && path != ""
	if !explicit {
		path = defaultConfigPath
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
