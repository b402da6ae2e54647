// Package output renders store data for the CLI and the MCP tools.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/yalp/jsonpath"

	"github.com/go-ports/ctxmanager/internal/models"
)

// Select evaluates a JSONPath expression (e.g. "$.memory_stats.count") against
// the JSON form of v. An empty expression returns v's JSON form unchanged.
func Select(v any, expr string) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("output.Select marshal: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("output.Select unmarshal: %w", err)
	}
	if expr == "" {
		return doc, nil
	}
	got, err := jsonpath.Read(doc, expr)
	if err != nil {
		return nil, fmt.Errorf("output.Select %s: %w", expr, err)
	}
	return got, nil
}

// WriteJSON writes v, narrowed by expr, as indented JSON.
func WriteJSON(w io.Writer, v any, expr string) error {
	sel, err := Select(v, expr)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sel)
}

// ContextLine formats a context as a one-line list entry.
func ContextLine(ctx *models.Context) string {
	date := ctx.CreatedAt
	if t := ctx.CreatedTime(); !t.IsZero() {
		date = t.Format("2006-01-02 15:04")
	}
	if date == "" {
		date = "unknown"
	}
	name := ctx.Name
	if name == "" {
		name = "Untitled"
	}
	line := fmt.Sprintf("- [%s] %s (%s)", date, name, ctx.ID)
	if ctx.Description != "" {
		line += " " + truncate(ctx.Description, 60)
	}
	return line
}

// WriteContexts writes one line per context.
func WriteContexts(w io.Writer, contexts []models.Context) {
	if len(contexts) == 0 {
		fmt.Fprintln(w, "No contexts found.")
		return
	}
	fmt.Fprintf(w, "Contexts (%d):\n", len(contexts))
	for i := range contexts {
		fmt.Fprintln(w, ContextLine(&contexts[i]))
	}
}

// WriteContext writes the detail view of a context.
func WriteContext(w io.Writer, ctx *models.Context) {
	fmt.Fprintf(w, "ID:          %s\n", ctx.ID)
	if ctx.Name != "" {
		fmt.Fprintf(w, "Name:        %s\n", ctx.Name)
	}
	if ctx.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", ctx.Description)
	}
	fmt.Fprintf(w, "Created:     %s\n", ctx.CreatedAt)
	if ctx.LastAccessed != "" {
		fmt.Fprintf(w, "Accessed:    %s\n", ctx.LastAccessed)
	}
	for k, v := range ctx.MemoryStats {
		fmt.Fprintf(w, "Stat %s: %v\n", k, v)
	}
}

// WriteMemory writes a combined-memory result, parents indented below.
func WriteMemory(w io.Writer, m *models.CombinedMemory) {
	writeMemory(w, m, 0)
}

func writeMemory(w io.Writer, m *models.CombinedMemory, depth int) {
	indent := strings.Repeat("  ", depth)
	section := func(title, body string) {
		fmt.Fprintf(w, "%s## %s\n", indent, title)
		if strings.TrimSpace(body) == "" {
			fmt.Fprintf(w, "%s(none)\n", indent)
			return
		}
		for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
			fmt.Fprintf(w, "%s%s\n", indent, line)
		}
	}
	section("Personal memory", m.PersonalMemory)
	section("Task memory", m.TaskMemory)
	section("Tool memory", m.ToolMemory)
	if m.ParentMemory != nil {
		fmt.Fprintf(w, "%s## Parent context\n", indent)
		writeMemory(w, m.ParentMemory, depth+1)
	}
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return s
}
