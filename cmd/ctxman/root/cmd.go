// Package rootcmd wires the root cobra.Command for the ctxman CLI binary.
package rootcmd

import (
	"github.com/spf13/cobra"

	configcmd "github.com/go-ports/ctxmanager/cmd/ctxman/config"
	listcmd "github.com/go-ports/ctxmanager/cmd/ctxman/list"
	mcpcmd "github.com/go-ports/ctxmanager/cmd/ctxman/mcp"
	memorycmd "github.com/go-ports/ctxmanager/cmd/ctxman/memory"
	opencmd "github.com/go-ports/ctxmanager/cmd/ctxman/open"
	"github.com/go-ports/ctxmanager/cmd/ctxman/shared"
	showcmd "github.com/go-ports/ctxmanager/cmd/ctxman/show"
	versioncmd "github.com/go-ports/ctxmanager/cmd/ctxman/version"
)

// New creates and returns the root cobra.Command for the ctxman CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "ctxman",
		Short:         "ctxman: browse contexts and their combined memory",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&ctx.ConfigPath, "config", "",
		"Config file (default: $CTXMAN_CONFIG env → ~/.config/ctxman/config.yaml)")
	pf.StringVar(&ctx.Server, "server", "",
		"Context-manager server URL (default: $CTXMAN_SERVER env → config server.base_url)")
	pf.StringVar(&ctx.LogLevel, "log-level", "", "Log level: debug | info | warn | error")

	root.AddCommand(
		listcmd.New(ctx).Cmd(),
		showcmd.New(ctx).Cmd(),
		memorycmd.New(ctx).Cmd(),
		opencmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
		versioncmd.New(ctx).Cmd(),
	)

	return root
}
