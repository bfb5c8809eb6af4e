// Package hufapi is a client for the huf compression server.
package hufapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Run mirrors the server's run record.
type Run struct {
	ID          string    `json:"id"`
	Op          string    `json:"op"`
	Input       string    `json:"input"`
	Output      string    `json:"output"`
	Extension   string    `json:"extension"`
	Symbols     int       `json:"symbols"`
	InputBytes  int64     `json:"inputBytes"`
	OutputBytes int64     `json:"outputBytes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("huf server: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/octet-stream")
	}
	req.Header.Set("User-Agent", "hufapi")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		defer resp.Body.Close()
		var payload struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &payload) != nil || payload.Error == "" {
			payload.Error = strings.TrimSpace(string(data))
		}
		return nil, &APIError{Status: resp.StatusCode, Message: payload.Error}
	}
	return resp, nil
}

func doJSON[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// Compress uploads data read from a file called name and returns the .huf bytes.
func (c *Client) Compress(ctx context.Context, name string, data []byte) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/compress?name="+url.QueryEscape(name), data)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// Decompress uploads a .huf file and returns the original bytes and extension.
func (c *Client) Decompress(ctx context.Context, data []byte) ([]byte, string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/decompress", data)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return out, resp.Header.Get("X-Huf-Extension"), nil
}

func (c *Client) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	return doJSON[[]Run](ctx, c, "/api/v1/runs?limit="+strconv.Itoa(limit))
}

func (c *Client) GetRun(ctx context.Context, id string) (Run, error) {
	return doJSON[Run](ctx, c, "/api/v1/runs/"+url.PathEscape(id))
}

func (c *Client) Healthy(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
