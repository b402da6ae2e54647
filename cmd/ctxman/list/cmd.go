// Package listcmd implements the `ctxman list` command.
package listcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/ctxmanager/cmd/ctxman/shared"
	"github.com/go-ports/ctxmanager/internal/output"
)

// Command implements `ctxman list`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	format string
	limit  int
}

// New creates the list command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "list",
		Short: "List contexts, newest first",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	f := c.cmd.Flags()
	f.StringVar(&c.format, "format", "text", "Output format: text | json")
	f.IntVar(&c.limit, "limit", 0, "Maximum number of contexts (0 = all)")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	if c.format != "text" && c.format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", c.format)
	}
	st, _, err := c.ctx.Store()
	if err != nil {
		return err
	}

	st.FetchContexts(cmd.Context())
	if err := st.Err(); err != nil {
		return err
	}

	contexts := st.SortedContexts()
	if c.limit > 0 && c.limit < len(contexts) {
		contexts = contexts[:c.limit]
	}

	out := cmd.OutOrStdout()
	if c.format == "json" {
		return output.WriteJSON(out, contexts, "")
	}
	output.WriteContexts(out, contexts)
	return nil
}
