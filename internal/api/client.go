// Package api implements the remote collection client: four REST calls
// against a configured base URL. Any network failure or non-2xx response
// surfaces as a *TransportError; the client draws no finer distinctions
// (a 404 looks the same as a 500 to callers).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rosterhq/roster/pkg/types"
)

// usersPath is the collection path under the base URL.
const usersPath = "/users"

// TransportError is a failure at the remote-call boundary. StatusCode is 0
// when the request never produced a response (network failure).
type TransportError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: unexpected status %d", e.Op, e.URL, e.StatusCode)
}

// Unwrap returns the underlying error, if any.
func (e *TransportError) Unwrap() error { return e.Err }

// Client issues list/create/update/delete requests for the users collection.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL. A nil httpClient falls
// back to http.DefaultClient. No timeout or cancellation is layered on top
// of what the caller's context and client provide.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
	}
}

// ListAll fetches the full collection. No pagination happens at this layer;
// the server's response order is preserved.
func (c *Client) ListAll(ctx context.Context) ([]types.Record, error) {
	var records []types.Record
	if err := c.do(ctx, http.MethodGet, usersPath, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Create posts a new record. The server assigns the ID; the returned record
// is the server's view of what was stored.
func (c *Client) Create(ctx context.Context, in types.NewRecordInput) (types.Record, error) {
	var created types.Record
	if err := c.do(ctx, http.MethodPost, usersPath, in, &created); err != nil {
		return types.Record{}, err
	}
	return created, nil
}

// Update replaces the mutable fields of the record with the given id.
func (c *Client) Update(ctx context.Context, id string, in types.RecordInput) (types.Record, error) {
	var updated types.Record
	if err := c.do(ctx, http.MethodPut, usersPath+"/"+url.PathEscape(id), in, &updated); err != nil {
		return types.Record{}, err
	}
	return updated, nil
}

// Delete removes the record with the given id. Deleting an id the server no
// longer knows is an error, not a no-op.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, usersPath+"/"+url.PathEscape(id), nil, nil)
}

// do runs one request: marshals body when non-nil, checks for a 2xx status,
// and decodes the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	u := c.baseURL + path

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return &TransportError{Op: method, URL: u, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: method, URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Op: method, URL: u, StatusCode: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: method, URL: u, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
