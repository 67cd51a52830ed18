// Package docstore talks to the remote JSON document store that holds the
// active-bet view. Wire format is Firebase RTDB compatible: every node lives
// at <base>/<path>.json, secured by an auth query parameter.
package docstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"

	"valuebet/internal/domain"
	"valuebet/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type Client struct {
	baseURL    string
	auth       string
	httpClient *http.Client
}

func NewClient(baseURL, auth string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		auth:       auth,
		httpClient: httpClient,
	}
}

// Put overwrites the node at path with data.
func (c *Client) Put(ctx context.Context, path string, data any) error {
	return c.write(ctx, http.MethodPut, path, data)
}

// Patch updates only the given fields of the node at path.
func (c *Client) Patch(ctx context.Context, path string, fields any) error {
	return c.write(ctx, http.MethodPatch, path, fields)
}

// Get reads the node at path into dest. A missing node is reported as
// NotFound: the store answers 200 with a literal null body.
func (c *Client) Get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapError(err, errcodes.TransportError, "get "+path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.WrapError(err, errcodes.TransportError, "read "+path)
	}

	if isNull(body) {
		return domain.NewError(errcodes.NotFound, "no document at "+path)
	}

	if err = json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	return nil
}

// Delete removes the node at path. Deleting an absent node succeeds.
func (c *Client) Delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.url(path), nil)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapError(err, errcodes.TransportError, "delete "+path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp, path)
	}

	return nil
}

func (c *Client) write(ctx context.Context, method, path string, data any) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapError(err, errcodes.TransportError, method+" "+path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp, path)
	}

	return nil
}

func (c *Client) url(path string) string {
	u := c.baseURL + "/" + path + ".json"

	if c.auth != "" {
		u += "?auth=" + url.QueryEscape(c.auth)
	}

	return u
}

func statusError(resp *http.Response, path string) error {
	return domain.NewError(errcodes.TransportError,
		fmt.Sprintf("document store answered %d for %s", resp.StatusCode, path))
}

func isNull(body []byte) bool {
	return len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null"))
}
