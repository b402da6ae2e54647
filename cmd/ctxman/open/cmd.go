// Package opencmd implements the `ctxman open` command.
package opencmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/ctxmanager/cmd/ctxman/shared"
	"github.com/go-ports/ctxmanager/internal/output"
	"github.com/go-ports/ctxmanager/internal/router"
)

// Command implements `ctxman open`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	query     string
	summarize bool
}

// New creates the open command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "open <path|url>",
		Short: "Render the view a UI path points to",
		Long: "Resolve a context-manager UI path (or full URL) to its view and render it.\n" +
			"The list view prints all contexts; the detail view prints one context and,\n" +
			"with --query, its combined memory.",
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}
	f := c.cmd.Flags()
	f.StringVarP(&c.query, "query", "q", "", "Also query combined memory on a detail view")
	f.BoolVar(&c.summarize, "summarize", false, "Summarize tool memory")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	st, cfg, err := c.ctx.Store()
	if err != nil {
		return err
	}

	r := router.New(cfg.UI.BasePath)
	route, ok := r.Resolve(args[0])
	if !ok {
		return fmt.Errorf("no view matches %q (base path %q)", args[0], r.Base())
	}

	out := cmd.OutOrStdout()
	switch route.Name {
	case router.ContextList:
		st.FetchContexts(cmd.Context())
		if err := st.Err(); err != nil {
			return err
		}
		output.WriteContexts(out, st.SortedContexts())

	case router.ContextDetail:
		id := route.Params["id"]
		detail := st.FetchContextDetail(cmd.Context(), id)
		if detail == nil {
			return st.Err()
		}
		output.WriteContext(out, detail)
		if c.query == "" {
			return nil
		}
		fmt.Fprintln(out)
		mem := st.FetchCombinedMemory(cmd.Context(), id, c.query, c.summarize)
		if mem == nil {
			return st.Err()
		}
		output.WriteMemory(out, mem)
	}
	return nil
}
