// Package config loads runtime settings for the configuration engine from
// defaults and environment variables, validated against struct tags.
package config

import (
	"fmt"
	"time"

	"dario.cat/mergo"
)

// Config is the full runtime configuration.
type Config struct {
	Log       LogConfig       `koanf:"log"`
	Limits    LimitsConfig    `koanf:"limits"`
	Preview   PreviewConfig   `koanf:"preview"`
	Storage   StorageConfig   `koanf:"storage"`
	Broadcast BroadcastConfig `koanf:"broadcast"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

// LimitsConfig bounds the configuration tree.
type LimitsConfig struct {
	MaxTreeBytes  int `koanf:"max_tree_bytes"  validate:"gt=0"`
	MaxDepth      int `koanf:"max_depth"       validate:"gt=0,lte=64"`
	MaxTextLength int `koanf:"max_text_length" validate:"gt=0"`
}

// PreviewConfig tunes the debounced preview sync.
type PreviewConfig struct {
	Policy        string        `koanf:"policy"         validate:"oneof=shared per-field"`
	Window        time.Duration `koanf:"window"         validate:"gt=0"`
	NumericWindow time.Duration `koanf:"numeric_window" validate:"gt=0"`
	MaxWait       time.Duration `koanf:"max_wait"       validate:"gt=0"`
}

// StorageConfig locates the key-value persistence directory.
type StorageConfig struct {
	Dir string `koanf:"dir" validate:"required"`
}

// BroadcastConfig wires the preview broadcast. An empty redis URL disables
// broadcasting.
type BroadcastConfig struct {
	RedisURL string `koanf:"redis_url"`
	Channel  string `koanf:"channel"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Limits: LimitsConfig{
			MaxTreeBytes:  1 << 20,
			MaxDepth:      10,
			MaxTextLength: 10000,
		},
		Preview: PreviewConfig{
			Policy:        "shared",
			Window:        300 * time.Millisecond,
			NumericWindow: 150 * time.Millisecond,
			MaxWait:       2 * time.Second,
		},
		Storage: StorageConfig{
			Dir: ".searchpro",
		},
		Broadcast: BroadcastConfig{
			Channel: "searchpro.config.preview",
		},
	}
}

// Merge overlays non-zero fields of other onto c.
func (c *Config) Merge(other *Config) error {
	if other == nil {
		return nil
	}
	if err := mergo.Merge(c, other, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to merge configuration: %w", err)
	}
	return nil
}
