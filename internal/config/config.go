// Package config handles configuration loading and config path resolution.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// ServerConfig points the client at a context-manager server.
type ServerConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// UIConfig holds settings for the view routes.
type UIConfig struct {
	BasePath string `yaml:"base_path"` // prefix every view path is mounted under
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// Config is the root configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	UI     UIConfig     `yaml:"ui"`
	Log    LogConfig    `yaml:"log"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 30 * time.Second,
		},
		UI: UIConfig{
			BasePath: "/context-manager",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads a config.yaml from path.
// If the file does not exist it returns Default() with no error.
// Missing keys retain their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	// Unmarshal into a plain map so we can apply only the keys that are present.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if srv, ok := raw["server"].(map[string]any); ok {
		if v, ok := srv["base_url"].(string); ok && v != "" {
			cfg.Server.BaseURL = v
		}
		if v, ok := srv["timeout"]; ok {
			d, err := parseDuration(v)
			if err != nil {
				return nil, fmt.Errorf("config.Load: server.timeout: %w", err)
			}
			cfg.Server.Timeout = d
		}
	}

	if ui, ok := raw["ui"].(map[string]any); ok {
		if v, ok := ui["base_path"].(string); ok {
			cfg.UI.BasePath = v
		}
	}

	if lg, ok := raw["log"].(map[string]any); ok {
		if v, ok := lg["level"].(string); ok && v != "" {
			cfg.Log.Level = v
		}
	}

	return cfg, nil
}

// parseDuration accepts a Go duration string or a whole number of seconds.
func parseDuration(v any) (time.Duration, error) {
	switch t := v.(type) {
	case string:
		return time.ParseDuration(t)
	case int:
		return time.Duration(t) * time.Second, nil
	default:
		return 0, fmt.Errorf("unsupported value %v", v)
	}
}

// SlogLevel maps Log.Level to a slog.Level. Unknown values map to warn.
func (c *Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn
	}
	return l
}

// ---------------------------------------------------------------------------
// Path and server resolution
// ---------------------------------------------------------------------------

// DefaultPath returns ~/.config/ctxman/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ctxman", "config.yaml"), nil
}

// normalizePath expands ~ and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ResolvePath returns the config file path and the source of the resolution.
// Priority: flag → CTXMAN_CONFIG env → ~/.config/ctxman/config.yaml
// source is one of "flag", "env", or "default".
func ResolvePath(flag string) (path, source string) {
	if flag != "" {
		if p, err := normalizePath(flag); err == nil {
			return p, "flag"
		}
	}
	if env := os.Getenv("CTXMAN_CONFIG"); env != "" {
		if p, err := normalizePath(env); err == nil {
			return p, "env"
		}
	}
	p, _ := DefaultPath()
	return p, "default"
}

// ResolveServerURL picks the server base URL.
// Priority: flag → CTXMAN_SERVER env → config file value.
func ResolveServerURL(flag string, cfg *Config) (url, source string) {
	if flag != "" {
		return flag, "flag"
	}
	if env := os.Getenv("CTXMAN_SERVER"); env != "" {
		return env, "env"
	}
	return cfg.Server.BaseURL, "config"
}
