// Package assist integrates an optional remote text-generation collaborator
// that can stand in for the local extractor or view templates. Responses are
// untrusted free text: callers only accept the minimal well-formed substring
// and abort the run on anything unparseable.
package assist

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
)

// ErrMalformedResponse indicates the collaborator's text did not contain
// parseable structured data.
var ErrMalformedResponse = errors.New("assist: malformed upstream response")

const defaultTimeout = 30 * time.Second

// Client produces a completion for a prompt. Implementations must honour the
// context deadline; a timeout is a terminal generation failure, never a
// partial result.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Option customises the HTTP client configuration.
type Option func(*HTTPClient)

// WithHTTPClient injects a custom http.Client (proxies, transports).
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		if client != nil {
			c.http = client
		}
	}
}

// WithTimeout caps each completion request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// HTTPClient talks to a completion endpoint that accepts
// {"prompt": "..."} and answers either {"completion": "..."} or plain text.
type HTTPClient struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
}

// NewHTTPClient constructs a client for the given endpoint.
func NewHTTPClient(endpoint string, options ...Option) (*HTTPClient, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("assist: endpoint is required")
	}
	c := &HTTPClient{
		endpoint: endpoint,
		http:     &http.Client{},
		timeout:  defaultTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

type completionRequest struct {
	Prompt string `json:"prompt"`
}

type completionResponse struct {
	Completion string `json:"completion"`
}

// Complete posts the prompt and returns the completion text.
func (c *HTTPClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(completionRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("assist: encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("assist: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("assist: call %s: %w", c.endpoint, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("assist: read response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assist: %s returned status %d", c.endpoint, res.StatusCode)
	}

	var decoded completionResponse
	if err := json.Unmarshal(body, &decoded); err == nil && decoded.Completion != "" {
		return decoded.Completion, nil
	}
	return string(body), nil
}
