// Package generator is the client for the external text-generation service.
// The service is an opaque collaborator: prompts declare the output shape and
// responses are trusted to conform. Calls are single-attempt and awaited
// inline on the request context.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/scholarai/scholarai/pkg/logger"
)

// maxResponseSize limits the response body read from the generation service.
const maxResponseSize = 10 * 1024 * 1024

// Message is a single chat message sent to the generation service.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Config holds connection settings for an OpenAI-compatible chat-completions
// endpoint.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Client talks to the generation service over HTTP.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Used by tests to point at a stub
// server.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// NewClient creates a generator client. No request timeout is set on the
// client itself; cancellation comes from the caller's context.
func NewClient(cfg Config, log *logger.Logger, opts ...Option) *Client {
	if log == nil {
		log = logger.NewDefault("generator")
	}
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// Complete sends a chat completion request and returns the raw assistant
// content. It is a single attempt: errors propagate to the caller unretried.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{Model: c.cfg.Model, Messages: messages})
	if err != nil {
		return "", err
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("read generation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.WithField("status", resp.StatusCode).Warn("generation service returned non-OK status")
		return "", fmt.Errorf("generation service status %d", resp.StatusCode)
	}

	content := gjson.GetBytes(raw, "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("generation response missing content")
	}
	return content.String(), nil
}
