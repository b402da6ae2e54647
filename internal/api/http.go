package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// StatusError is returned for non-2xx responses on endpoints that treat the
// status code as the success signal.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// getJSON issues a GET request and decodes the response body into out.
// When requireOK is set, a non-2xx status yields a *StatusError and the body
// is not decoded. Otherwise the body is decoded whatever the status.
func (c *Client) getJSON(ctx context.Context, url string, requireOK bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("getJSON new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.client.Do(req) // #nosec G704 -- URL is the user-configured context-manager endpoint
	if err != nil {
		return fmt.Errorf("getJSON request: %w", err)
	}
	defer resp.Body.Close()

	slog.Debug("api response", "url", url, "status", resp.StatusCode)

	if requireOK && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("getJSON decode: %w", err)
	}
	return nil
}
