// Package backend is the HTTP client for the showroom REST backend.
//
// Every call targets {base}/api/{endpoint} and maps failures onto the typed
// errors in internal/errors: transport failures, non-2xx responses carrying an
// {error} envelope, and non-2xx responses whose body is not JSON.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/pkg/api"
)

// maxSnippet is how much of a non-JSON error body is kept in the message.
const maxSnippet = 100

// Client talks to one backend.
type Client struct {
	base       string
	httpClient *http.Client
}

// New creates a client for base. A zero timeout means requests never time out.
func New(base string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(strings.TrimSpace(base), "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewWithHTTPClient creates a client that uses hc for transport.
func NewWithHTTPClient(base string, hc *http.Client) *Client {
	c := New(base, 0)
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// Base returns the configured base URL.
func (c *Client) Base() string {
	return c.base
}

// Configured reports whether a base URL is set.
func (c *Client) Configured() bool {
	return c.base != ""
}

// URL renders the absolute URL of endpoint.
func (c *Client) URL(endpoint string) string {
	return c.base + api.PathPrefix + "/" + strings.TrimLeft(endpoint, "/")
}

// ItemPath joins an endpoint and an item id.
func ItemPath(endpoint string, id int64) string {
	return fmt.Sprintf("%s/%d", endpoint, id)
}

// Get decodes GET {endpoint} into out.
func (c *Client) Get(ctx context.Context, endpoint string, out interface{}) (int, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

// Post sends body as JSON and decodes the response into out when non-nil.
func (c *Client) Post(ctx context.Context, endpoint string, body, out interface{}) (int, error) {
	return c.do(ctx, http.MethodPost, endpoint, body, out)
}

// Put sends body as JSON and decodes the response into out when non-nil.
func (c *Client) Put(ctx context.Context, endpoint string, body, out interface{}) (int, error) {
	return c.do(ctx, http.MethodPut, endpoint, body, out)
}

// Delete issues DELETE {endpoint}.
func (c *Client) Delete(ctx context.Context, endpoint string) (int, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

// Ping checks that the backend answers the product listing.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, api.EndpointProducts, nil, nil)
	return err
}

// do performs one request. The returned status is 0 when no response arrived.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) (int, error) {
	if !c.Configured() {
		return 0, errors.NewBackendNotConfigured()
	}

	url := c.URL(endpoint)
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", api.ContentTypeJSON)
	if body != nil {
		req.Header.Set(api.HeaderContentType, api.ContentTypeJSON)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.NewTransportFailed(url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, errors.NewTransportFailed(url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, parseErrorResponse(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, errors.NewDecodeFailed(err)
	}
	return resp.StatusCode, nil
}

// parseErrorResponse extracts a user-facing message from a non-2xx body.
func parseErrorResponse(status int, body []byte) error {
	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return errors.NewHTTPStatus(status, "Server responded with non-JSON: "+snippet(string(body))+"...")
	}

	if obj, ok := raw.(map[string]interface{}); ok {
		if msg, ok := obj["error"].(string); ok && msg != "" {
			return errors.NewHTTPStatus(status, msg)
		}
	}
	return errors.NewHTTPStatus(status, fmt.Sprintf("HTTP error! status: %d", status))
}

// snippet truncates s to maxSnippet characters.
func snippet(s string) string {
	r := []rune(s)
	if len(r) > maxSnippet {
		r = r[:maxSnippet]
	}
	return string(r)
}
