// Package client selects a chat backend and wraps it with retries and logging.
//
// Supported backends are a local Ollama server (through its OpenAI compatible
// endpoint), OpenAI, Anthropic and Google Gemini:
//
//	c, err := client.New(ctx, client.Config{
//	    Provider: ai.ProviderOllama,
//	    BaseURL:  "http://localhost:11434",
//	    Model:    "llama3.1",
//	})
//	if err != nil {
//	    return err
//	}
//	resp, err := c.Chat(ctx, messages, ai.WithTools(registry.Tools()))
//
// Transient failures (rate limits, 5xx, timeouts) are retried according to
// Config.Retry. Everything else is returned on the first attempt.
package client
