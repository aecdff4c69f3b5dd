package agent

import (
	"time"

	"github.com/rs/zerolog"

	ai "github.com/m-rashid-2024/careagent"
)

// DefaultHandlerTimeout bounds a single tool execution.
const DefaultHandlerTimeout = 30 * time.Second

// Options contains configuration for agent execution.
type Options struct {
	// Timeout sets a deadline for the entire run.
	// A value of 0 means no timeout (context deadline applies).
	Timeout time.Duration

	// HandlerTimeout sets the timeout for each individual tool handler.
	// A value of 0 means no per-handler timeout. Default is 30 seconds.
	HandlerTimeout time.Duration

	// ChatOptions are passed through to both model calls.
	ChatOptions []ai.Option

	// Logger receives tool call and result records.
	Logger zerolog.Logger
}

// Option is a functional option for configuring agent execution.
type Option func(*Options)

// WithTimeout sets a deadline for the entire run.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithHandlerTimeout sets the timeout for each individual tool handler.
// Set to 0 for no per-handler timeout.
func WithHandlerTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.HandlerTimeout = d
	}
}

// WithChatOptions passes options to the underlying ChatProvider.
func WithChatOptions(opts ...ai.Option) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, opts...)
	}
}

// WithLogger sets the logger for the run.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// ApplyOptions applies functional options over the defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		HandlerTimeout: DefaultHandlerTimeout,
		Logger:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
