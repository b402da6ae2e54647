// Package e2e_test provides a shared mock context-manager server for CLI and MCP tests.
// The mock serves the three read endpoints from an in-memory fixture so the
// full client stack (api → store → cli/mcp) runs without a real server.
package e2e_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fixtureContexts is served by GET /api/contexts in insertion order.
var fixtureContexts = []map[string]any{
	{"id": "ctx_alpha", "name": "Alpha", "description": "first context", "created_at": "2024-01-10T09:00:00"},
	{"id": "ctx_gamma", "name": "Gamma", "description": "newest context", "created_at": "2024-03-05T12:30:00"},
	{"id": "ctx_beta", "name": "Beta", "description": "child of alpha", "created_at": "2024-02-20T18:45:00", "parent_context_id": "ctx_alpha"},
}

// newContextServer starts a mock server. Unknown ids get a 404 on the detail
// endpoint and a 200 carrying an error field on the memory endpoint, matching
// how the real server reports query failures.
func newContextServer(tb testing.TB) *httptest.Server {
	tb.Helper()

	byID := make(map[string]map[string]any, len(fixtureContexts))
	for _, c := range fixtureContexts {
		byID[c["id"].(string)] = c
	}
	// ctx_bare is reachable by id but its record names no identifier.
	byID["ctx_bare"] = map[string]any{"name": "Bare", "created_at": "2024-04-01T00:00:00"}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/contexts", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"contexts": fixtureContexts})
	})
	mux.HandleFunc("GET /api/contexts/{id}", func(w http.ResponseWriter, r *http.Request) {
		c, ok := byID[r.PathValue("id")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "context not found"})
			return
		}
		writeJSON(w, http.StatusOK, c)
	})
	mux.HandleFunc("GET /api/contexts/{id}/memory", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if _, ok := byID[id]; !ok {
			writeJSON(w, http.StatusOK, map[string]any{"error": "Context not found: " + id})
			return
		}
		q := r.URL.Query()
		tool := "raw tool memory"
		if q.Get("summarize") == "true" {
			tool = "summarized tool memory"
		}
		body := map[string]any{
			"personal_memory": "personal for " + q.Get("query"),
			"task_memory":     "task memory of " + id,
			"tool_memory":     tool,
		}
		if q.Get("include_parent") == "true" && id == "ctx_beta" {
			body["parent_memory"] = map[string]any{
				"personal_memory": "alpha personal",
				"task_memory":     "",
				"tool_memory":     "",
			}
		}
		writeJSON(w, http.StatusOK, body)
	})

	srv := httptest.NewServer(mux)
	tb.Cleanup(srv.Close)
	return srv
}

// newDownServer starts a server that fails every request with 503.
func newDownServer(tb testing.TB) *httptest.Server {
	tb.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	tb.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
