package careapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	ai "github.com/m-rashid-2024/careagent"
	"github.com/m-rashid-2024/careagent/auth"
	"github.com/m-rashid-2024/careagent/retry"
)

// maxBodySnippet bounds how much of an error body ends up in a StatusError.
const maxBodySnippet = 512

// Client talks to the care API.
type Client struct {
	baseURL string
	tokens  auth.TokenSource
	http    *http.Client
	retry   retry.Config
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithTimeout sets a per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.http = &http.Client{Timeout: d}
	}
}

// WithRetry retries transient failures (5xx, 429, timeouts) with cfg.
func WithRetry(cfg retry.Config) Option {
	return func(cl *Client) {
		cl.retry = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(cl *Client) {
		cl.log = l
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, tokens auth.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: 30 * time.Second},
		retry:   retry.Disabled(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get fetches path and returns the body of a 200 response.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	notify := func(attempt int, err error, delay time.Duration) {
		c.log.Warn().Err(err).Str("path", path).Int("attempt", attempt).Dur("delay", delay).Msg("retrying request")
	}
	return retry.DoWithNotify(ctx, c.retry, notify, func() ([]byte, error) {
		return c.getOnce(ctx, path)
	})
}

func (c *Client) getOnce(ctx context.Context, path string) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("careapi: token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("careapi: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("careapi: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("careapi: GET %s: read body: %w", path, err)
	}

	c.log.Debug().Str("path", path).Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("api call")

	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > maxBodySnippet {
			snippet = snippet[:maxBodySnippet]
		}
		c.log.Error().Str("path", path).Int("status", resp.StatusCode).Msg("error at api call")
		return nil, &StatusError{
			Path:  path,
			Code:  resp.StatusCode,
			Body:  strings.TrimSpace(snippet),
			Delay: ai.ParseRetryAfter(resp),
		}
	}
	return body, nil
}
