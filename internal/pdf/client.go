// Package pdf calls the external PDF rendering service.
package pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client proxies report generation to the external renderer.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a client for the renderer at url.
func NewClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type renderRequest struct {
	Email   string `json:"email"`
	GroupID string `json:"group_id,omitempty"`
}

// Generate renders the expense report for email (optionally scoped to a
// group) and returns the PDF bytes. Errors are not retried.
func (c *Client) Generate(ctx context.Context, email, groupID string) ([]byte, error) {
	body, err := json.Marshal(renderRequest{Email: email, GroupID: groupID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pdf service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pdf service returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
