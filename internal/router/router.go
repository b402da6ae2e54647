// Package router maps UI paths to the two context-manager views.
package router

import (
	"fmt"
	"net/url"
	"strings"
)

// View names.
const (
	ContextList   = "context-list"
	ContextDetail = "context-detail"
)

// Route is a resolved view with its path parameters.
type Route struct {
	Name   string
	Params map[string]string
}

type entry struct {
	name     string
	segments []string // ":name" marks a parameter
}

var table = []entry{
	{name: ContextList, segments: nil},
	{name: ContextDetail, segments: []string{"context", ":id"}},
}

// Router resolves paths mounted under a base path.
type Router struct {
	base string
}

// New returns a Router for views mounted under base, e.g. "/context-manager".
// An empty base mounts them at the root.
func New(base string) *Router {
	base = strings.Trim(base, "/")
	if base != "" {
		base = "/" + base
	}
	return &Router{base: base}
}

// Base returns the normalised base path.
func (r *Router) Base() string { return r.base }

// Resolve matches path (or the path of a full URL) against the route table.
func (r *Router) Resolve(path string) (Route, bool) {
	if u, err := url.Parse(path); err == nil && u.Path != "" {
		path = u.EscapedPath()
	}
	if r.base != "" {
		if path != r.base && !strings.HasPrefix(path, r.base+"/") {
			return Route{}, false
		}
		path = strings.TrimPrefix(path, r.base)
	}

	var parts []string
	if p := strings.Trim(path, "/"); p != "" {
		parts = strings.Split(p, "/")
	}

	for _, e := range table {
		if params, ok := match(e.segments, parts); ok {
			return Route{Name: e.name, Params: params}, true
		}
	}
	return Route{}, false
}

// Path builds the path for a named view.
func (r *Router) Path(name string, params map[string]string) (string, error) {
	for _, e := range table {
		if e.name != name {
			continue
		}
		var b strings.Builder
		b.WriteString(r.base)
		for _, seg := range e.segments {
			b.WriteByte('/')
			if key, ok := strings.CutPrefix(seg, ":"); ok {
				v, ok := params[key]
				if !ok || v == "" {
					return "", fmt.Errorf("router: missing param %q for %s", key, name)
				}
				b.WriteString(url.PathEscape(v))
				continue
			}
			b.WriteString(seg)
		}
		if len(e.segments) == 0 {
			b.WriteByte('/')
		}
		return b.String(), nil
	}
	return "", fmt.Errorf("router: unknown view %q", name)
}

func match(pattern, parts []string) (map[string]string, bool) {
	if len(pattern) != len(parts) {
		return nil, false
	}
	params := make(map[string]string)
	for i, seg := range pattern {
		if key, ok := strings.CutPrefix(seg, ":"); ok {
			v, err := url.PathUnescape(parts[i])
			if err != nil || v == "" {
				return nil, false
			}
			params[key] = v
			continue
		}
		if seg != parts[i] {
			return nil, false
		}
	}
	return params, true
}
