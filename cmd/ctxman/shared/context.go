// Package shared holds the context passed to all CLI commands.
package shared

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-ports/ctxmanager/internal/api"
	"github.com/go-ports/ctxmanager/internal/buildinfo"
	"github.com/go-ports/ctxmanager/internal/config"
	"github.com/go-ports/ctxmanager/internal/store"
)

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// ConfigPath overrides the config file location.
	// When empty, resolution falls through to CTXMAN_CONFIG env var → ~/.config/ctxman/config.yaml.
	ConfigPath string
	// Server overrides the server base URL (then CTXMAN_SERVER, then the config file).
	Server string
	// LogLevel overrides log.level from the config file.
	LogLevel string
}

// Config loads the effective configuration with flag and env overrides applied.
func (c *Context) Config() (*config.Config, error) {
	path, _ := config.ResolvePath(c.ConfigPath)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.Server.BaseURL, _ = config.ResolveServerURL(c.Server, cfg)
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	return cfg, nil
}

// Store builds a context store for the configured server and installs the
// stderr logger at the configured level.
func (c *Context) Store() (*store.Store, *config.Config, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	client := api.New(cfg.Server.BaseURL, cfg.Server.Timeout)
	client.UserAgent = "ctxman/" + buildinfo.Version
	return store.New(client, store.WithRecorder(store.LogRecorder{Logger: logger})), cfg, nil
}
