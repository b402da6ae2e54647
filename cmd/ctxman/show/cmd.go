// Package showcmd implements the `ctxman show` command.
package showcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/ctxmanager/cmd/ctxman/shared"
	"github.com/go-ports/ctxmanager/internal/output"
)

// Command implements `ctxman show`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	json     bool
	selector string
}

// New creates the show command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "show <context-id>",
		Short: "Fetch full details for a context",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	f := c.cmd.Flags()
	f.BoolVar(&c.json, "json", false, "Print the raw record as JSON")
	f.StringVar(&c.selector, "select", "", "JSONPath expression applied to the record (implies --json)")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	st, _, err := c.ctx.Store()
	if err != nil {
		return err
	}

	detail := st.FetchContextDetail(cmd.Context(), args[0])
	if detail == nil {
		return st.Err()
	}

	out := cmd.OutOrStdout()
	if c.json || c.selector != "" {
		return output.WriteJSON(out, detail, c.selector)
	}
	output.WriteContext(out, detail)
	return nil
}
