// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package client provides a Go client library for the Fixnado dispute API.
//
// The marketplace exposes two structurally identical endpoint families, one
// per persona: the requesting-customer workspace and the service-provider
// workspace. This client provides typed access to both through persona-scoped
// sub-clients sharing one transport:
//
//	c := client.New("https://api.example.com")
//
//	// Customer workspace
//	res, err := c.Customer.List(ctx)
//
//	// Provider workspace
//	raw, err := c.Provider.CreateCase(ctx, params)
//
// Every write operation returns the full server-normalized resource record,
// not just the changed fields, so callers can replace their local copy
// wholesale.
//
// # Error Handling
//
// Failures are returned as *APIError values. A non-2xx response carries the
// HTTP status and the server's message and details when present; a transport
// failure (network unreachable, aborted) carries status zero:
//
//	if apiErr, ok := err.(*client.APIError); ok && apiErr.Transport() {
//	    // retryable network problem
//	}
//
// # Context Support
//
// All methods accept a context.Context for cancellation. The client performs
// no retries and sets no request timeout of its own; use [WithTimeout] or a
// custom *http.Client when a transport-level timeout is wanted.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// CustomerBasePath is the endpoint family scoped to the authenticated customer.
const CustomerBasePath = "/api/v1/customer/disputes"

// ProviderBasePath is the endpoint family scoped to the authenticated provider.
const ProviderBasePath = "/api/v1/provider/disputes"

// Client is a Fixnado dispute API client.
//
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client

	// Customer provides dispute operations scoped to the authenticated
	// requesting customer.
	Customer *DisputeClient

	// Provider provides dispute operations scoped to the authenticated
	// service provider.
	Provider *DisputeClient
}

// Option configures a [Client].
type Option func(*Client)

// New creates a new dispute API client for the given base URL.
//
// Any trailing slash on the base URL is removed. By default no request
// timeout is set; mutation semantics at this layer assume the caller decides
// how long to wait.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  "fixnado-console/1.0",
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Customer = &DisputeClient{c: c, base: CustomerBasePath}
	c.Provider = &DisputeClient{c: c, base: ProviderBasePath}

	return c
}

// WithHTTPClient sets a custom HTTP client for making requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets a transport-level timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent overrides the User-Agent header sent on each request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// BaseURL returns the base URL of the API.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get performs a GET request to the given path.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// postJSON performs a POST request with a JSON body.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return &APIError{Message: "encode request: " + err.Error()}
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(data), out)
}

// putJSON performs a PUT request with a JSON body.
func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return &APIError{Message: "encode request: " + err.Error()}
	}
	return c.do(ctx, http.MethodPut, path, bytes.NewReader(data), out)
}

// delete performs a DELETE request to the given path.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do performs an HTTP request and decodes a 2xx JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &APIError{Message: "create request: " + err.Error()}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport failure: no HTTP status to report.
		return &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Message: "read response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "decode response: " + err.Error()}
	}
	return nil
}
