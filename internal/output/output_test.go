package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/ctxmanager/internal/models"
	"github.com/go-ports/ctxmanager/internal/output"
)

func decodeContext(c *qt.C, body string) *models.Context {
	var ctx models.Context
	c.Assert(json.Unmarshal([]byte(body), &ctx), qt.IsNil)
	return &ctx
}

// ---------------------------------------------------------------------------
// Select
// ---------------------------------------------------------------------------

func TestSelect_HappyPath(t *testing.T) {
	c := qt.New(t)
	ctx := decodeContext(c, `{"id":"x","created_at":"2024-01-01","memory_stats":{"count":3},"tags":["a","b"]}`)

	cases := []struct {
		name string
		expr string
		want any
	}{
		{"nested field", "$.memory_stats.count", float64(3)},
		{"top-level field", "$.id", "x"},
		{"array index", "$.tags[1]", "b"},
	}
	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			got, err := output.Select(ctx, tc.expr)
			c.Assert(err, qt.IsNil)
			c.Assert(got, qt.DeepEquals, tc.want)
		})
	}

	c.Run("empty expression returns the whole document", func(c *qt.C) {
		got, err := output.Select(ctx, "")
		c.Assert(err, qt.IsNil)
		doc, ok := got.(map[string]any)
		c.Assert(ok, qt.IsTrue)
		c.Assert(doc["id"], qt.Equals, "x")
	})
}

func TestSelect_FailurePath(t *testing.T) {
	c := qt.New(t)
	ctx := decodeContext(c, `{"id":"x","created_at":"2024-01-01"}`)

	_, err := output.Select(ctx, "$.missing.field")
	c.Assert(err, qt.IsNotNil)
}

func TestWriteJSON(t *testing.T) {
	c := qt.New(t)
	var buf bytes.Buffer
	err := output.WriteJSON(&buf, map[string]any{"a": map[string]any{"b": "c"}}, "$.a")
	c.Assert(err, qt.IsNil)
	c.Assert(buf.String(), qt.JSONEquals, map[string]any{"b": "c"})
}

// ---------------------------------------------------------------------------
// Text rendering
// ---------------------------------------------------------------------------

func TestContextLine(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name string
		ctx  models.Context
		want string
	}{
		{"parsed date and name", models.Context{ID: "c1", Name: "demo", CreatedAt: "2024-03-01T10:20:30"}, "- [2024-03-01 10:20] demo (c1)"},
		{"unparsed date kept", models.Context{ID: "c2", CreatedAt: "last week"}, "- [last week] Untitled (c2)"},
		{"missing date", models.Context{ID: "c3"}, "- [unknown] Untitled (c3)"},
	}
	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			c.Assert(output.ContextLine(&tc.ctx), qt.Equals, tc.want)
		})
	}
}

func TestWriteContexts_Empty(t *testing.T) {
	c := qt.New(t)
	var buf bytes.Buffer
	output.WriteContexts(&buf, nil)
	c.Assert(buf.String(), qt.Equals, "No contexts found.\n")
}

func TestWriteMemory(t *testing.T) {
	c := qt.New(t)
	var buf bytes.Buffer
	output.WriteMemory(&buf, &models.CombinedMemory{
		PersonalMemory: "prefers go",
		ParentMemory:   &models.CombinedMemory{TaskMemory: "ship v1"},
	})
	want := "## Personal memory\nprefers go\n" +
		"## Task memory\n(none)\n" +
		"## Tool memory\n(none)\n" +
		"## Parent context\n" +
		"  ## Personal memory\n  (none)\n" +
		"  ## Task memory\n  ship v1\n" +
		"  ## Tool memory\n  (none)\n"
	c.Assert(buf.String(), qt.Equals, want)
}
