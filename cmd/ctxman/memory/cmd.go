// Package memorycmd implements the `ctxman memory` command.
package memorycmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/ctxmanager/cmd/ctxman/shared"
	"github.com/go-ports/ctxmanager/internal/output"
	"github.com/go-ports/ctxmanager/internal/store"
)

// Command implements `ctxman memory`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	query     string
	summarize bool
	parent    bool
	depth     int
	json      bool
	selector  string
}

// New creates the memory command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "memory <context-id>",
		Short: "Query the combined memory of a context",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	f := c.cmd.Flags()
	f.StringVarP(&c.query, "query", "q", "", "Query used to retrieve memory")
	f.BoolVar(&c.summarize, "summarize", false, "Summarize tool memory")
	f.BoolVar(&c.parent, "parent", false, "Include memory of parent contexts")
	f.IntVar(&c.depth, "depth", 2, "Parent levels to include with --parent")
	f.BoolVar(&c.json, "json", false, "Print the raw result as JSON")
	f.StringVar(&c.selector, "select", "", "JSONPath expression applied to the result (implies --json)")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	st, _, err := c.ctx.Store()
	if err != nil {
		return err
	}

	var opts []store.MemoryOption
	if c.parent {
		opts = append(opts, store.WithParent(c.depth))
	}

	mem := st.FetchCombinedMemory(cmd.Context(), args[0], c.query, c.summarize, opts...)
	if mem == nil {
		return st.Err()
	}

	out := cmd.OutOrStdout()
	if c.json || c.selector != "" {
		return output.WriteJSON(out, mem, c.selector)
	}
	output.WriteMemory(out, mem)
	return nil
}
