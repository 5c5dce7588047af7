package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/clubforms/pkg/forms"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CLUBFORMS_"

// Config holds the settings shared by every clubforms command.
type Config struct {
	LogLevel  string         `yaml:"log_level" json:"log_level"`
	LogFormat string         `yaml:"log_format" json:"log_format"`
	HTTP      HTTPConfig     `yaml:"http" json:"http"`
	Metrics   MetricsConfig  `yaml:"metrics" json:"metrics"`
	Feedback  FeedbackConfig `yaml:"feedback" json:"feedback"`
}

type HTTPConfig struct {
	Addr         string `yaml:"addr" json:"addr"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" json:"max_body_bytes"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
}

// FeedbackConfig selects how feedback questions resolve their variant:
// "fallback" (default) or "tagged".
type FeedbackConfig struct {
	Dispatch string `yaml:"dispatch" json:"dispatch"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		HTTP: HTTPConfig{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Feedback: FeedbackConfig{
			Dispatch: string(forms.DispatchFallback),
		},
	}
}

// Load reads path (YAML or JSON, by extension) over the defaults and then
// applies environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if strings.ToLower(filepath.Ext(path)) == ".json" {
			if err := json.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		} else {
			// Default to YAML
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.HTTP.Addr = getEnv("HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.MaxBodyBytes = getEnvInt64("HTTP_MAX_BODY_BYTES", c.HTTP.MaxBodyBytes)
	c.Metrics.Enabled = getEnvBool("METRICS_ENABLED", c.Metrics.Enabled)
	c.Metrics.Path = getEnv("METRICS_PATH", c.Metrics.Path)
	c.Feedback.Dispatch = getEnv("FEEDBACK_DISPATCH", c.Feedback.Dispatch)
}

// Validate rejects settings the commands cannot start with.
func (c Config) Validate() error {
	if _, err := forms.ParseDispatch(c.Feedback.Dispatch); err != nil {
		return fmt.Errorf("feedback.dispatch: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format: unsupported format %q", c.LogFormat)
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return fmt.Errorf("http.max_body_bytes must be positive, got %d", c.HTTP.MaxBodyBytes)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /, got %q", c.Metrics.Path)
	}
	return nil
}

// Dispatch returns the parsed feedback dispatch mode.
func (c Config) Dispatch() forms.Dispatch {
	d, err := forms.ParseDispatch(c.Feedback.Dispatch)
	if err != nil {
		return forms.DispatchFallback
	}
	return d
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
		return v
	}
	return fallback
}

// Malformed numeric and boolean overrides keep the previous value.
func getEnvInt64(key string, fallback int64) int64 {
	n, err := strconv.ParseInt(getEnv(key, ""), 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}
