package client

import (
	"context"
	"errors"
	"testing"
	"time"

	ai "github.com/m-rashid-2024/careagent"
	"github.com/m-rashid-2024/careagent/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedChat returns errs in order, then a fixed response.
type scriptedChat struct {
	errs  []error
	calls int
	opts  []*ai.Options
}

func (s *scriptedChat) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	s.calls++
	s.opts = append(s.opts, ai.ApplyOptions(opts...))
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return nil, err
	}
	return &ai.Response{Content: "Hallo"}, nil
}

func fastRetry(attempts int) *retry.Config {
	cfg := retry.Config{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}
	return &cfg
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("ollama requires a model", func(t *testing.T) {
		_, err := New(ctx, Config{Provider: ai.ProviderOllama, BaseURL: "http://localhost:11434"})
		var noModel *ErrNoModel
		require.ErrorAs(t, err, &noModel)
		assert.Equal(t, "no model configured for ollama", err.Error())
	})

	t.Run("ollama needs no key", func(t *testing.T) {
		c, err := New(ctx, Config{Provider: ai.ProviderOllama, Model: "llama3.1"})
		require.NoError(t, err)
		assert.Equal(t, ai.ProviderOllama, c.Provider())
	})

	t.Run("hosted backends require a key", func(t *testing.T) {
		for _, p := range []ai.Provider{ai.ProviderOpenAI, ai.ProviderAnthropic, ai.ProviderGoogle} {
			t.Run(p.String(), func(t *testing.T) {
				_, err := New(ctx, Config{Provider: p})
				var missing *ErrMissingAPIKey
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, p, missing.Provider)
			})
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := New(ctx, Config{Provider: "mistral"})
		assert.EqualError(t, err, `unsupported provider: "mistral"`)
	})
}

func TestChat(t *testing.T) {
	ctx := context.Background()
	messages := []ai.Message{{Role: ai.RoleUser, Content: "Hallo"}}

	t.Run("retries transient errors", func(t *testing.T) {
		chat := &scriptedChat{errs: []error{ai.NewTransientError("overloaded", 503, nil)}}
		c := newClient(chat, Config{Retry: fastRetry(3)})

		resp, err := c.Chat(ctx, messages)
		require.NoError(t, err)
		assert.Equal(t, "Hallo", resp.Content)
		assert.Equal(t, 2, chat.calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		denied := ai.NewPermanentError("denied", 401, nil)
		chat := &scriptedChat{errs: []error{denied}}
		c := newClient(chat, Config{Retry: fastRetry(3)})

		_, err := c.Chat(ctx, messages)
		assert.True(t, errors.Is(err, denied))
		assert.Equal(t, 1, chat.calls)
	})

	t.Run("rejected requests are not retried", func(t *testing.T) {
		chat := &scriptedChat{errs: []error{ai.NewStatusError("bad request", 400, 0, nil)}}
		c := newClient(chat, Config{Retry: fastRetry(3)})

		_, err := c.Chat(ctx, messages)
		assert.True(t, ai.IsUserInput(err))
		assert.Equal(t, 1, chat.calls)
	})

	t.Run("empty conversation is rejected before sending", func(t *testing.T) {
		chat := &scriptedChat{}
		c := newClient(chat, Config{Retry: fastRetry(3)})

		_, err := c.Chat(ctx, nil)
		assert.True(t, ai.IsUserInput(err))
		assert.ErrorIs(t, err, ai.ErrEmptyInput)
		assert.Equal(t, 0, chat.calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		chat := &scriptedChat{errs: []error{
			ai.NewTransientError("a", 500, nil),
			ai.NewTransientError("b", 500, nil),
			ai.NewTransientError("c", 500, nil),
		}}
		c := newClient(chat, Config{Retry: fastRetry(2)})

		_, err := c.Chat(ctx, messages)
		assert.EqualError(t, err, "b")
		assert.Equal(t, 2, chat.calls)
	})

	t.Run("request options override defaults", func(t *testing.T) {
		chat := &scriptedChat{}
		c := newClient(chat, Config{Retry: fastRetry(1)},
			WithDefaultChatOptions(ai.WithMaxTokens(100), ai.WithTemperature(0.2)))

		_, err := c.Chat(ctx, messages, ai.WithMaxTokens(500))
		require.NoError(t, err)
		require.Len(t, chat.opts, 1)
		assert.Equal(t, 500, chat.opts[0].MaxTokens)
		require.NotNil(t, chat.opts[0].Temperature)
		assert.InDelta(t, 0.2, *chat.opts[0].Temperature, 1e-9)
	})
}
