// Package models defines the records exchanged with the context-manager API.
package models

import (
	"bytes"
	"encoding/json"
	"slices"
	"time"
)

// Context is a single context record. Only ID and CreatedAt carry meaning for
// the client; every field of the raw payload is kept in Fields.
type Context struct {
	ID           string         `json:"id"`
	Name         string         `json:"name,omitempty"`
	Description  string         `json:"description,omitempty"`
	CreatedAt    string         `json:"created_at"`
	LastAccessed string         `json:"last_accessed,omitempty"`
	MemoryStats  map[string]any `json:"memory_stats,omitempty"`

	// Fields holds the raw record as decoded from the server.
	Fields map[string]any `json:"-"`
}

// UnmarshalJSON keeps the full record in Fields and copies the known fields
// whose JSON type matches; a mistyped field is left zero. Records that name the
// identifier context_id are accepted as well.
func (c *Context) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*c = Context{
		ID:           stringField(fields, "id"),
		Name:         stringField(fields, "name"),
		Description:  stringField(fields, "description"),
		CreatedAt:    stringField(fields, "created_at"),
		LastAccessed: stringField(fields, "last_accessed"),
		Fields:       fields,
	}
	if c.ID == "" {
		c.ID = stringField(fields, "context_id")
	}
	if stats, ok := fields["memory_stats"].(map[string]any); ok {
		c.MemoryStats = stats
	}
	return nil
}

// MarshalJSON writes the raw record with the known fields laid over it.
func (c Context) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Fields)+6)
	for k, v := range c.Fields {
		out[k] = v
	}
	out["id"] = c.ID
	out["created_at"] = c.CreatedAt
	if c.Name != "" {
		out["name"] = c.Name
	}
	if c.Description != "" {
		out["description"] = c.Description
	}
	if c.LastAccessed != "" {
		out["last_accessed"] = c.LastAccessed
	}
	if c.MemoryStats != nil {
		out["memory_stats"] = c.MemoryStats
	}
	return json.Marshal(out)
}

// timeLayouts are tried in order when parsing created_at.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// CreatedTime parses CreatedAt. It returns the zero time when the value is
// empty or in no known layout.
func (c *Context) CreatedTime() time.Time {
	return ParseTimestamp(c.CreatedAt)
}

// ParseTimestamp parses s with the layouts accepted for created_at.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// SortByCreatedDesc returns a copy of contexts ordered most recent first.
// Equal timestamps keep their relative order.
func SortByCreatedDesc(contexts []Context) []Context {
	out := slices.Clone(contexts)
	if out == nil {
		out = make([]Context, 0)
	}
	slices.SortStableFunc(out, func(a, b Context) int {
		return b.CreatedTime().Compare(a.CreatedTime())
	})
	return out
}

// ContextList is the body of GET /api/contexts.
type ContextList struct {
	Contexts []Context `json:"contexts"`
}

// CombinedMemory is the body of GET /api/contexts/{id}/memory.
type CombinedMemory struct {
	PersonalMemory string          `json:"personal_memory"`
	TaskMemory     string          `json:"task_memory"`
	ToolMemory     string          `json:"tool_memory"`
	ParentMemory   *CombinedMemory `json:"parent_memory,omitempty"`
	Error          json.RawMessage `json:"error,omitempty"`

	Fields map[string]any `json:"-"`
}

type combinedMemoryAlias CombinedMemory

// UnmarshalJSON keeps the full record in Fields and copies the known fields
// whose JSON type matches; a mistyped field is left zero.
func (m *CombinedMemory) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	mem, err := combinedMemoryFromFields(fields)
	if err != nil {
		return err
	}
	*m = *mem
	return nil
}

func combinedMemoryFromFields(fields map[string]any) (*CombinedMemory, error) {
	m := &CombinedMemory{
		PersonalMemory: stringField(fields, "personal_memory"),
		TaskMemory:     stringField(fields, "task_memory"),
		ToolMemory:     stringField(fields, "tool_memory"),
		Fields:         fields,
	}
	if parent, ok := fields["parent_memory"].(map[string]any); ok {
		pm, err := combinedMemoryFromFields(parent)
		if err != nil {
			return nil, err
		}
		m.ParentMemory = pm
	}
	if v, ok := fields["error"]; ok {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		m.Error = raw
	}
	return m, nil
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

// MarshalJSON writes the raw record as received.
func (m CombinedMemory) MarshalJSON() ([]byte, error) {
	if m.Fields != nil {
		return json.Marshal(m.Fields)
	}
	return json.Marshal(combinedMemoryAlias(m))
}

// ErrorMessage reports the error field of the body. An absent field and the
// falsy values null, false, 0 and "" yield "". Strings are returned as is and
// any other value as its JSON text.
func (m *CombinedMemory) ErrorMessage() string {
	raw := bytes.TrimSpace(m.Error)
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if !t {
			return ""
		}
	case float64:
		if t == 0 {
			return ""
		}
	case string:
		return t
	}
	return string(raw)
}
