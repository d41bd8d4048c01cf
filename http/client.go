// Package http provides an HTTP client for a remote page storage and
// compilation service implementing aipage.PageService.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/aipage"
)

// DefaultTimeout is the default timeout for requests to the page service.
const DefaultTimeout = 30 * time.Second

// Ensure Client implements aipage.PageService at compile time.
var _ aipage.PageService = (*Client)(nil)

// Client talks to a page storage and compilation service over HTTP.
//
//	POST {base}/applications/{app}/templates/{template}/source
//	POST {base}/applications/{app}/templates/{template}/compile
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	token   string
	retries []time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for requests.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithToken sets a bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithRetries retries requests that failed in transport or with a 5xx
// status, waiting delays[i] before retry i+1. Requests are not retried by
// default.
func WithRetries(delays ...time.Duration) Option {
	return func(c *Client) {
		c.retries = delays
	}
}

// NewClient creates a new Client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

type saveBody struct {
	Route string `json:"route"`
	aipage.SourcePayload
}

type compileBody struct {
	Route        string `json:"route"`
	ServerRender bool   `json:"serverRender"`
}

// errorBody is the error shape returned by the service.
type errorBody struct {
	Message string `json:"message"`
}

// SavePageSource creates or overwrites the page source at req.Key.
func (c *Client) SavePageSource(ctx context.Context, req *aipage.SaveRequest) error {
	if err := req.Key.Validate(); err != nil {
		return err
	}
	return c.post(ctx, req.Key, "source", saveBody{Route: req.Key.Route, SourcePayload: req.Payload})
}

// CompilePage asks the service to render the page at req.Key.
func (c *Client) CompilePage(ctx context.Context, req *aipage.CompileRequest) error {
	if err := req.Key.Validate(); err != nil {
		return err
	}
	return c.post(ctx, req.Key, "compile", compileBody{Route: req.Key.Route, ServerRender: req.ServerRender})
}

func (c *Client) post(ctx context.Context, key aipage.PageKey, action string, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/applications/%s/templates/%s/%s",
		c.baseURL, url.PathEscape(key.ApplicationID), url.PathEscape(key.TemplateID), action)

	return withRetry(ctx, c.retries, func() (bool, error) {
		return c.send(ctx, endpoint, b)
	})
}

// send performs a single POST and reports whether a failure is transient.
func (c *Client) send(ctx context.Context, endpoint string, body []byte) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, nil
	}

	return resp.StatusCode >= 500, responseError(resp)
}

// responseError converts a non-2xx response into an error carrying the
// service's message unchanged.
func responseError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	msg := strings.TrimSpace(string(raw))
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil && eb.Message != "" {
		msg = eb.Message
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return aipage.Errorf(aipage.EINVALID, "%s", msg)
	case http.StatusNotFound:
		return aipage.Errorf(aipage.ENOTFOUND, "%s", msg)
	}
	return aipage.Errorf(aipage.EINTERNAL, "%s", msg)
}
