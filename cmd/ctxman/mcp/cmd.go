// Package mcpcmd implements the `ctxman mcp` command.
package mcpcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/ctxmanager/cmd/ctxman/shared"
	internalmcp "github.com/go-ports/ctxmanager/internal/mcp"
)

// Command implements `ctxman mcp`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the mcp command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "mcp",
		Short: "Start the ctxman MCP server (stdio transport)",
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	st, _, err := c.ctx.Store()
	if err != nil {
		return err
	}
	return internalmcp.Serve(cmd.Context(), st)
}
