// Package dashboard is a typed HTTP client for the agentdeck dashboard
// backend. Each operation issues exactly one request, decodes the JSON
// response into a typed value, and returns it or an Error. The client holds
// no mutable state and performs no retries, caching, or interpretation of
// what the backend reports; it is a transparent typed tunnel.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL points at the dashboard backend of a local deployment.
const DefaultBaseURL = "http://localhost:3000/api"

const defaultTimeout = 30 * time.Second

// Client calls the dashboard backend. It is safe for concurrent use; all
// calls share one underlying http.Client and mutate nothing.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to install a
// tracing transport or a test double.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient returns a Client for the backend at baseURL. An empty baseURL
// selects DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Health reports backend liveness.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var out HealthStatus
	if err := c.get(ctx, "get health", "/health", &out); err != nil {
		return HealthStatus{}, err
	}
	return out, nil
}

// Snapshot returns the aggregate dashboard view.
func (c *Client) Snapshot(ctx context.Context) (DashboardState, error) {
	var out DashboardState
	if err := c.get(ctx, "get snapshot", "/snapshot", &out); err != nil {
		return DashboardState{}, err
	}
	return out, nil
}

// Agents returns the state of every agent. The wire envelope {"agents":[...]}
// is unwrapped here; callers only ever see the inner sequence.
func (c *Client) Agents(ctx context.Context) ([]AgentState, error) {
	var env agentsEnvelope
	if err := c.get(ctx, "get agents", "/agents", &env); err != nil {
		return nil, err
	}
	return env.Agents, nil
}

// SubmitTask submits one task for execution and returns the backend's
// receipt. Name and description are forwarded as-is; empty strings are
// permitted and no validation is applied.
func (c *Client) SubmitTask(ctx context.Context, name, description string) (TaskReceipt, error) {
	var out TaskReceipt
	sub := TaskSubmission{Name: name, Description: description}
	if err := c.post(ctx, "submit task", "/tasks", sub, &out); err != nil {
		return TaskReceipt{}, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	return c.do(op, req, out)
}

func (c *Client) post(ctx context.Context, op, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return &Error{Op: op, Kind: KindDecode, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(op, req, out)
}

// do sends the request and decodes the body into out. The body is decoded
// whatever the response status: the backend's shapes are the contract, and a
// non-JSON error page surfaces as a decode failure with its own description.
func (c *Client) do(op string, req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Op: op, Kind: KindDecode, Err: err}
	}
	return nil
}
