// Package configcmd implements the `ctxman config` command group.
package configcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/ctxmanager/cmd/ctxman/shared"
	"github.com/go-ports/ctxmanager/internal/config"
)

const configTemplate = `# ctxman configuration

# Context-manager server the client talks to.
server:
  base_url: http://localhost:8080
  timeout: 30s                  # per-request timeout

# Prefix the UI views are mounted under; used by ` + "`ctxman open`" + `.
ui:
  base_path: /context-manager

log:
  level: warn                   # debug | info | warn | error
`

// Command implements `ctxman config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(newConfigInit(ctx))
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	path, pathSource := config.ResolvePath(c.ctx.ConfigPath)
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	serverURL, serverSource := config.ResolveServerURL(c.ctx.Server, cfg)
	level := cfg.Log.Level
	if c.ctx.LogLevel != "" {
		level = c.ctx.LogLevel
	}

	data := map[string]any{
		"server": map[string]any{
			"base_url":        serverURL,
			"base_url_source": serverSource,
			"timeout":         cfg.Server.Timeout.String(),
		},
		"ui": map[string]any{
			"base_path": cfg.UI.BasePath,
		},
		"log": map[string]any{
			"level": level,
		},
		"config_path":        path,
		"config_path_source": pathSource,
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

// ---------------------------------------------------------------------------
// config init
// ---------------------------------------------------------------------------

func newConfigInit(ctx *shared.Context) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter config.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := config.ResolvePath(ctx.ConfigPath)
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfgPath); err == nil && !force {
				fmt.Fprintf(out, "Config already exists at %s\n", cfgPath)
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(cfgPath, []byte(configTemplate), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", cfgPath)
			fmt.Fprintln(out, "Edit the file to point ctxman at your server.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}
