// Package config handles loading the midnightline server settings.
package config

import "time"

// Config holds all server settings.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Clock    ClockConfig    `yaml:"clock"`
	Midnight MidnightConfig `yaml:"midnight"`
	Follow   FollowConfig   `yaml:"follow"`
	Overlay  OverlayConfig  `yaml:"overlay"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ClockConfig controls the simulated clock and the tick loop.
type ClockConfig struct {
	Tick          time.Duration `yaml:"tick"`
	Multiplier    float64       `yaml:"multiplier"`
	Sync          bool          `yaml:"sync"`           // snap to wall time on drift
	SyncThreshold time.Duration `yaml:"sync_threshold"`
}

// MidnightConfig selects the longitude strategy.
type MidnightConfig struct {
	Strategy  string `yaml:"strategy"` // "apparent" or "mean"
	CacheSize int    `yaml:"cache_size"`
}

// FollowConfig holds the follow toggle defaults.
type FollowConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Transition time.Duration `yaml:"transition"` // 0 sets the view instantly
}

// OverlayConfig styles the midnight meridian.
type OverlayConfig struct {
	Samples int     `yaml:"samples"`
	Color   string  `yaml:"color"`
	Width   float64 `yaml:"width"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Clock: ClockConfig{
			Tick:          time.Second,
			Multiplier:    1,
			Sync:          true,
			SyncThreshold: 500 * time.Millisecond,
		},
		Midnight: MidnightConfig{
			Strategy:  "apparent",
			CacheSize: 64,
		},
		Follow: FollowConfig{
			Enabled:    false,
			Transition: 0,
		},
		Overlay: OverlayConfig{
			Samples: 37,
			Color:   "#ff0000ff",
			Width:   2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
