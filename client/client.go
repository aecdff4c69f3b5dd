package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	ai "github.com/m-rashid-2024/careagent"
	"github.com/m-rashid-2024/careagent/internal/provider/anthropic"
	"github.com/m-rashid-2024/careagent/internal/provider/google"
	"github.com/m-rashid-2024/careagent/internal/provider/openai"
	"github.com/m-rashid-2024/careagent/retry"
)

// ollamaAPIKey is sent to Ollama, which ignores it but the SDK requires one.
const ollamaAPIKey = "ollama"

// Config holds configuration for creating a client.
type Config struct {
	// Provider selects the backend.
	Provider ai.Provider

	// BaseURL overrides the backend endpoint. For Ollama this is the server
	// root, e.g. http://localhost:11434.
	BaseURL string

	// APIKey authenticates against hosted backends. Ignored for Ollama.
	APIKey string

	// Model is the default model. Required for Ollama.
	Model string

	// HTTPClient is used for all API calls when set.
	HTTPClient *http.Client

	// Retry configures retry behavior for transient errors.
	// If nil, retry.DefaultConfig is used.
	Retry *retry.Config
}

// ErrMissingAPIKey is returned when a hosted backend is selected without a key.
type ErrMissingAPIKey struct {
	Provider ai.Provider
}

func (e *ErrMissingAPIKey) Error() string {
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// ErrNoModel is returned when a backend without a default model is selected
// and no model was configured.
type ErrNoModel struct {
	Provider ai.Provider
}

func (e *ErrNoModel) Error() string {
	return fmt.Sprintf("no model configured for %s", e.Provider)
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithDefaultChatOptions sets default options for all chat requests.
// Per-request options override these defaults.
func WithDefaultChatOptions(opts ...ai.Option) Option {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, opts...)
	}
}

// Client is a ChatProvider that retries transient backend failures.
type Client struct {
	provider        ai.Provider
	model           string
	chat            ai.ChatProvider
	retryConfig     retry.Config
	defaultChatOpts []ai.Option
	log             zerolog.Logger
}

// New creates a client for the backend named in cfg.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	chat, err := newProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newClient(chat, cfg, opts...), nil
}

func newClient(chat ai.ChatProvider, cfg Config, opts ...Option) *Client {
	retryConfig := retry.DefaultConfig()
	if cfg.Retry != nil {
		retryConfig = *cfg.Retry
	}

	c := &Client{
		provider:    cfg.Provider,
		model:       cfg.Model,
		chat:        chat,
		retryConfig: retryConfig,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newProvider(ctx context.Context, cfg Config) (ai.ChatProvider, error) {
	switch cfg.Provider {
	case ai.ProviderOllama:
		if cfg.Model == "" {
			return nil, &ErrNoModel{Provider: cfg.Provider}
		}
		base := strings.TrimRight(cfg.BaseURL, "/")
		if base == "" {
			base = "http://localhost:11434"
		}
		return openai.New(ollamaAPIKey,
			openai.WithBaseURL(base+"/v1/"),
			openai.WithModel(cfg.Model),
			openai.WithHTTPClient(cfg.HTTPClient),
		), nil
	case ai.ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, &ErrMissingAPIKey{Provider: cfg.Provider}
		}
		opts := []openai.ClientOption{openai.WithModel(cfg.Model), openai.WithHTTPClient(cfg.HTTPClient)}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		return openai.New(cfg.APIKey, opts...), nil
	case ai.ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, &ErrMissingAPIKey{Provider: cfg.Provider}
		}
		opts := []anthropic.ClientOption{anthropic.WithModel(cfg.Model), anthropic.WithHTTPClient(cfg.HTTPClient)}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		return anthropic.New(cfg.APIKey, opts...), nil
	case ai.ProviderGoogle:
		if cfg.APIKey == "" {
			return nil, &ErrMissingAPIKey{Provider: cfg.Provider}
		}
		opts := []google.ClientOption{google.WithModel(cfg.Model), google.WithHTTPClient(cfg.HTTPClient)}
		if cfg.BaseURL != "" {
			opts = append(opts, google.WithBaseURL(cfg.BaseURL))
		}
		client, err := google.New(ctx, cfg.APIKey, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %q", cfg.Provider)
	}
}

// Provider returns the backend this client talks to.
func (c *Client) Provider() ai.Provider {
	return c.provider
}

// Chat sends a conversation and returns a complete response.
// Transient errors are retried according to the client's retry configuration.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	if len(messages) == 0 {
		return nil, ai.NewUserInputError("chat: no messages", 0, ai.ErrEmptyInput)
	}

	// defaults first so per-request options win
	opts = append(append([]ai.Option{}, c.defaultChatOpts...), opts...)
	options := ai.ApplyOptions(opts...)

	model := options.Model
	if model == "" {
		model = c.model
	}
	log := c.log.With().Str("provider", c.provider.String()).Str("model", model).Logger()

	notify := func(attempt int, err error, delay time.Duration) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("retrying chat request")
	}

	start := time.Now()
	log.Debug().Int("messages", len(messages)).Int("tools", len(options.Tools)).Msg("chat request")

	resp, err := retry.DoWithNotify(ctx, c.retryConfig, notify, func() (*ai.Response, error) {
		return c.chat.Chat(ctx, messages, opts...)
	})
	if err != nil {
		if ai.IsUserInput(err) {
			log.Warn().Err(err).Int("status", ai.StatusCodeOf(err)).Msg("chat request rejected")
		} else {
			log.Error().Err(err).Dur("took", time.Since(start)).Msg("chat request failed")
		}
		return nil, err
	}

	log.Debug().
		Dur("took", time.Since(start)).
		Int("input_tokens", resp.Usage.InputTokens).
		Int("output_tokens", resp.Usage.OutputTokens).
		Int("tool_calls", len(resp.ToolCalls)).
		Str("finish_reason", resp.FinishReason).
		Msg("chat response")
	return resp, nil
}

var _ ai.ChatProvider = (*Client)(nil)
