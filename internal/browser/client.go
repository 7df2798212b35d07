package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tabnap/tabnap/internal/utils"
)

// Client is an HTTP client for the browser bridge, the small companion
// process (or extension endpoint) that actually owns the browser's tabs.
//
// Bridge API:
//
//	GET    /tabs/active     -> {id, url, title}
//	POST   /tabs            <- {url}
//	DELETE /tabs/{id}
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a bridge client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ActiveTab returns the currently focused tab
func (c *Client) ActiveTab(ctx context.Context) (Tab, error) {
	var tab Tab
	if err := c.doJSON(ctx, http.MethodGet, "/tabs/active", nil, &tab); err != nil {
		return Tab{}, fmt.Errorf("failed to query active tab: %w", err)
	}
	return tab, nil
}

// OpenTab creates a new tab at the given URL
func (c *Client) OpenTab(ctx context.Context, url string) error {
	body := map[string]string{"url": url}
	if err := c.doJSON(ctx, http.MethodPost, "/tabs", body, nil); err != nil {
		return fmt.Errorf("failed to open tab: %w", err)
	}
	return nil
}

// CloseTab closes a tab by id
func (c *Client) CloseTab(ctx context.Context, id int64) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/tabs/%d", id), nil, nil); err != nil {
		return fmt.Errorf("failed to close tab %d: %w", id, err)
	}
	return nil
}

// doJSON performs a bridge request, encoding body and decoding out when non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("bridge returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
