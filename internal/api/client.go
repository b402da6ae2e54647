// Package api is the HTTP client for the context-manager REST endpoints.
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-ports/ctxmanager/internal/models"
)

// Client talks to a context-manager server.
type Client struct {
	BaseURL   string
	UserAgent string
	client    *http.Client
}

// New returns a Client rooted at baseURL. A zero timeout means no client-side
// timeout beyond the request context.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// MemoryQuery holds the parameters of a combined-memory request.
type MemoryQuery struct {
	Query     string
	Summarize bool

	// IncludeParent asks the server to merge the parent context's memory,
	// recursing at most MaxDepth levels.
	IncludeParent bool
	MaxDepth      int
}

// Values encodes q as URL query parameters.
func (q MemoryQuery) Values() url.Values {
	v := url.Values{}
	v.Set("query", q.Query)
	v.Set("summarize", strconv.FormatBool(q.Summarize))
	if q.IncludeParent {
		v.Set("include_parent", "true")
		v.Set("max_depth", strconv.Itoa(q.MaxDepth))
	}
	return v
}

// ListContexts calls GET /api/contexts. A missing contexts field yields an
// empty, non-nil slice.
func (c *Client) ListContexts(ctx context.Context) ([]models.Context, error) {
	var body models.ContextList
	if err := c.getJSON(ctx, c.BaseURL+"/api/contexts", true, &body); err != nil {
		return nil, fmt.Errorf("list contexts: %w", err)
	}
	if body.Contexts == nil {
		body.Contexts = make([]models.Context, 0)
	}
	return body.Contexts, nil
}

// GetContext calls GET /api/contexts/{id}.
func (c *Client) GetContext(ctx context.Context, id string) (*models.Context, error) {
	var body models.Context
	if err := c.getJSON(ctx, c.contextURL(id), true, &body); err != nil {
		return nil, fmt.Errorf("get context %s: %w", id, err)
	}
	return &body, nil
}

// CombinedMemory calls GET /api/contexts/{id}/memory. The body is decoded
// regardless of the status code; callers inspect its error field.
func (c *Client) CombinedMemory(ctx context.Context, id string, q MemoryQuery) (*models.CombinedMemory, error) {
	var body models.CombinedMemory
	u := c.contextURL(id) + "/memory?" + q.Values().Encode()
	if err := c.getJSON(ctx, u, false, &body); err != nil {
		return nil, fmt.Errorf("combined memory %s: %w", id, err)
	}
	return &body, nil
}

func (c *Client) contextURL(id string) string {
	return c.BaseURL + "/api/contexts/" + url.PathEscape(id)
}
