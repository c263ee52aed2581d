package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
// args are the command-line arguments without the program name.
func Load(args []string) (*Config, error) {
	cfg := Default()

	fl, err := parseFlags(args)
	if err != nil {
		return nil, err
	}

	configPath := fl.configPath
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	fl.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	for _, path := range []string{"./midnightline.yaml", "./config.yaml"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadFromFile merges a YAML file over the values already in cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate rejects settings the host cannot run with.
func (c *Config) Validate() error {
	if c.Clock.Tick <= 0 {
		return fmt.Errorf("clock.tick must be positive, got %v", c.Clock.Tick)
	}
	if c.Clock.Multiplier < 0 {
		return fmt.Errorf("clock.multiplier must not be negative, got %v", c.Clock.Multiplier)
	}
	if c.Midnight.CacheSize <= 0 {
		return fmt.Errorf("midnight.cache_size must be positive, got %d", c.Midnight.CacheSize)
	}
	switch c.Midnight.Strategy {
	case "", "apparent", "mean":
	default:
		return fmt.Errorf("midnight.strategy %q is not one of apparent, mean", c.Midnight.Strategy)
	}
	return nil
}
