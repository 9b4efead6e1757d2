// Package config loads runtime settings from defaults, an optional YAML file
// and MOODSCAPE_* environment variables, in that order.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to upper-cased keys to form environment variable names.
const EnvPrefix = "MOODSCAPE_"

// Config holds runtime settings.
type Config struct {
	ClassifierURL     string        `mapstructure:"classifier_url"`
	ClassifierTimeout time.Duration `mapstructure:"classifier_timeout"`
	MockClassifier    bool          `mapstructure:"mock_classifier"`
	RitualsPath       string        `mapstructure:"rituals_path"`
	Addr              string        `mapstructure:"addr"`
	LogLevel          string        `mapstructure:"log_level"`
	LogFormat         string        `mapstructure:"log_format"`
	MaxInputSize      int           `mapstructure:"max_input_size"`
}

// keys lists every configurable key; it drives the environment layer.
var keys = []string{
	"classifier_url",
	"classifier_timeout",
	"mock_classifier",
	"rituals_path",
	"addr",
	"log_level",
	"log_format",
	"max_input_size",
}

func defaults() map[string]any {
	return map[string]any{
		"classifier_url":     "http://localhost:8000/predict",
		"classifier_timeout": "10s",
		"mock_classifier":    false,
		"rituals_path":       "",
		"addr":               ":8080",
		"log_level":          "info",
		"log_format":         "text",
		"max_input_size":     4096,
	}
}

// Load builds the configuration. path may be empty.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	values := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		var file map[string]any
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		for k, v := range file {
			values[k] = v
		}
	}

	for _, k := range keys {
		if v, ok := lookup(EnvPrefix + strings.ToUpper(k)); ok {
			values[k] = v
		}
	}

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(values); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if c.ClassifierTimeout <= 0 {
		return fmt.Errorf("classifier_timeout must be positive, got %s", c.ClassifierTimeout)
	}
	if c.MaxInputSize <= 0 {
		return fmt.Errorf("max_input_size must be positive, got %d", c.MaxInputSize)
	}
	if c.MockClassifier {
		return nil
	}
	u, err := url.Parse(c.ClassifierURL)
	if err != nil {
		return fmt.Errorf("invalid classifier_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("classifier_url must be an http(s) URL, got %q", c.ClassifierURL)
	}
	return nil
}
