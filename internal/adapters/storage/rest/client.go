// Package rest implements the table store over a hosted PostgREST-style API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tennisclub/internal/adapters/storage/gateway"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	restPrefix         = "/rest/v1/"
)

// Config controls how the client reaches the hosted store.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-2xx response from the store.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error implements error.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s (status %d, code %s)", msg, e.Status, e.Code)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.Status)
}

// Client implements gateway.Backend over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
}

// Compile-time check that *Client satisfies gateway.Backend.
var _ gateway.Backend = (*Client)(nil)

// NewClient constructs a client for the store at cfg.BaseURL.
// PRE: cfg.BaseURL is an http(s) URL; cfg.APIKey is the project key
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Select fetches every row of table ordered by id.
func (c *Client) Select(ctx context.Context, table string) ([]gateway.Row, error) {
	q := map[string]string{"select": "*", "order": "id.asc"}
	req, err := c.buildRequest(ctx, http.MethodGet, table, q, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Insert posts rows as one JSON array and returns the created representation.
func (c *Client) Insert(ctx context.Context, table string, rows []gateway.Row) ([]gateway.Row, error) {
	body, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("encode rows: %w", err)
	}
	req, err := c.buildRequest(ctx, http.MethodPost, table, nil, body)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Update patches the row with id. An empty representation means no row matched.
func (c *Client) Update(ctx context.Context, table string, id int64, fields gateway.Row) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}
	q := map[string]string{"id": "eq." + strconv.FormatInt(id, 10)}
	req, err := c.buildRequest(ctx, http.MethodPatch, table, q, body)
	if err != nil {
		return err
	}
	updated, err := c.do(req)
	if err != nil {
		return err
	}
	if len(updated) == 0 {
		return gateway.ErrRowNotFound
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, method, table string, query map[string]string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+restPrefix+table, reader)
	if err != nil {
		return nil, err
	}

	if len(query) > 0 {
		q := req.URL.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}
	return req, nil
}

func (c *Client) do(req *http.Request) ([]gateway.Row, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []gateway.Row{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var payload []map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", req.Method, err)
	}

	rows := make([]gateway.Row, len(payload))
	for i, p := range payload {
		rows[i] = gateway.Row(p)
	}
	return rows, nil
}

func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
		apiErr.Code = payload.Code
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}
