// Package mcp exposes the context store as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/ctxmanager/internal/buildinfo"
	"github.com/go-ports/ctxmanager/internal/models"
	"github.com/go-ports/ctxmanager/internal/output"
	"github.com/go-ports/ctxmanager/internal/store"
)

const listDescription = `List all contexts known to the context-manager server, newest first. Use the returned id with context_detail or context_memory.`

const detailDescription = `Fetch the full record of one context by id.`

const memoryDescription = `Query the combined memory (personal, task and tool memory) of a context. Set summarize to get a summary of tool memory instead of raw entries. Set include_parent to merge memory from parent contexts.` //nolint:lll

// NewServer creates and registers all context tools on a new MCP server.
// It is intentionally separate from Serve so that tests and other callers can
// obtain a fully configured server without committing to the stdio transport.
func NewServer(st *store.Store) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("ctxman", buildinfo.Version)
	registerTools(s, st)
	return s
}

// Serve starts the stdio MCP server, blocking until stdin closes.
func Serve(_ context.Context, st *store.Store) error {
	return mcpserver.ServeStdio(NewServer(st))
}

// registerTools wires the three MCP tools into the server.
func registerTools(s *mcpserver.MCPServer, st *store.Store) {
	s.AddTool(mcp.NewTool("contexts_list",
		mcp.WithDescription(listDescription),
		mcp.WithNumber("limit",
			mcp.Description("Max contexts (default: all)"),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleList(ctx, st, req)
	})

	s.AddTool(mcp.NewTool("context_detail",
		mcp.WithDescription(detailDescription),
		mcp.WithString("id",
			mcp.Description("Context id"),
			mcp.Required(),
		),
		mcp.WithString("select",
			mcp.Description("Optional JSONPath expression applied to the record, e.g. $.memory_stats"),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDetail(ctx, st, req)
	})

	s.AddTool(mcp.NewTool("context_memory",
		mcp.WithDescription(memoryDescription),
		mcp.WithString("id",
			mcp.Description("Context id"),
			mcp.Required(),
		),
		mcp.WithString("query",
			mcp.Description("Query used to retrieve memory. May be empty."),
		),
		mcp.WithBoolean("summarize",
			mcp.Description("Summarize tool memory (default false)"),
		),
		mcp.WithBoolean("include_parent",
			mcp.Description("Include parent context memory (default false)"),
		),
		mcp.WithNumber("max_depth",
			mcp.Description("Parent levels to include (default 2)"),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleMemory(ctx, st, req)
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleList(ctx context.Context, st *store.Store, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	contexts, err := st.LoadContexts(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sorted := models.SortByCreatedDesc(contexts)
	if limit := req.GetInt("limit", 0); limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}

	items := make([]map[string]any, 0, len(sorted))
	for i := range sorted {
		items = append(items, summarize(&sorted[i]))
	}
	return jsonResult(map[string]any{
		"total":    len(contexts),
		"showing":  len(items),
		"contexts": items,
	})
}

func handleDetail(ctx context.Context, st *store.Store, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	detail, err := st.LoadContextDetail(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sel, err := output.Select(detail, req.GetString("select", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(sel)
}

func handleMemory(ctx context.Context, st *store.Store, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	var opts []store.MemoryOption
	if req.GetBool("include_parent", false) {
		depth := req.GetInt("max_depth", 2)
		if depth < 0 {
			depth = 0
		}
		opts = append(opts, store.WithParent(depth))
	}

	mem, err := st.LoadCombinedMemory(ctx, id, req.GetString("query", ""), req.GetBool("summarize", false), opts...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(mem)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func summarize(c *models.Context) map[string]any {
	return map[string]any{
		"id":          c.ID,
		"name":        c.Name,
		"description": truncate(c.Description, 120),
		"created_at":  c.CreatedAt,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return s
}
