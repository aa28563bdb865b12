package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/studiowebux/snmpconsole/internal/types"
)

const (
	// DefaultTimeout bounds one exchange with the backend
	DefaultTimeout = 30 * time.Second

	submitPath  = "/api/snmp"
	historyPath = "/api/history"
	pingPath    = "/api/ping"
)

// ErrTransport is matched by every failure to complete an exchange
var ErrTransport = errors.New("transport failure")

// TransportError records which exchange failed and why
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTransport) true for every TransportError
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Client is the HTTP client for the agent backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customises a Client
type Option func(*Client)

// WithTimeout overrides DefaultTimeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: &http.Transport{},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend origin
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Submit posts one request payload and returns the backend JSON verbatim
func (c *Client) Submit(ctx context.Context, payload types.RequestPayload) (types.RequestResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return types.RequestResult{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	respBody, err := c.do(ctx, http.MethodPost, submitPath, body)
	if err != nil {
		return types.RequestResult{}, &TransportError{Op: "submit", Err: err}
	}

	if !json.Valid(respBody) {
		return types.RequestResult{}, &TransportError{Op: "submit", Err: errors.New("response body is not valid JSON")}
	}

	return types.NewRawResult(json.RawMessage(bytes.TrimSpace(respBody))), nil
}

// History fetches every recorded frame in backend order
func (c *Client) History(ctx context.Context) ([]types.HistoryEntry, error) {
	respBody, err := c.do(ctx, http.MethodGet, historyPath, nil)
	if err != nil {
		return nil, &TransportError{Op: "history", Err: err}
	}

	trimmed := bytes.TrimSpace(respBody)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &TransportError{Op: "history", Err: errors.New("response body is not a JSON array")}
	}

	entries := []types.HistoryEntry{}
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, &TransportError{Op: "history", Err: fmt.Errorf("failed to decode history: %w", err)}
	}

	return entries, nil
}

// Ping checks that the backend answers on its probe endpoint
func (c *Client) Ping(ctx context.Context) error {
	respBody, err := c.do(ctx, http.MethodGet, pingPath, nil)
	if err != nil {
		return &TransportError{Op: "ping", Err: err}
	}
	if !json.Valid(respBody) {
		return &TransportError{Op: "ping", Err: errors.New("response body is not valid JSON")}
	}
	return nil
}

// do performs one exchange and returns the raw body whatever the status code
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return respBody, nil
}

// FormatDuration formats a duration as milliseconds or seconds
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.2fs", float64(ms)/1000.0)
}
