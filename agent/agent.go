package agent

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	ai "github.com/m-rashid-2024/careagent"
	"github.com/m-rashid-2024/careagent/tool"
)

// Agent answers a conversation turn with one round of tool calls.
type Agent struct {
	chatClient ai.ChatProvider
	registry   *tool.Registry
}

// New creates a new Agent with the given chat client and tool registry.
func New(c ai.ChatProvider, registry *tool.Registry) *Agent {
	return &Agent{
		chatClient: c,
		registry:   registry,
	}
}

// Result is the outcome of a run.
type Result struct {
	// Messages is the input conversation extended by this turn.
	Messages []ai.Message

	// Response is the final model response.
	Response *ai.Response

	// ToolResults holds one result per executed tool call, in model order.
	ToolResults []ai.ToolResult

	// Combined is the running buffer of all tool outputs, space separated.
	Combined string

	// Usage sums token usage across both model calls.
	Usage ai.Usage
}

// Run executes one turn. The input slice is not modified; the extended
// conversation is returned in Result.Messages.
//
// Tool failures are reported to the model as error results and never abort
// the run. A model call failure aborts the run and returns the error.
func (a *Agent) Run(ctx context.Context, messages []ai.Message, opts ...Option) (*Result, error) {
	options := ApplyOptions(opts...)
	log := options.Logger

	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	history := make([]ai.Message, len(messages), len(messages)+4)
	copy(history, messages)
	result := &Result{}

	toolOpts := append([]ai.Option{ai.WithTools(a.registry.Tools())}, options.ChatOptions...)
	first, err := a.chatClient.Chat(ctx, history, toolOpts...)
	if err != nil {
		return nil, err
	}
	result.Usage = result.Usage.Add(first.Usage)

	if len(first.ToolCalls) > 0 {
		calls := withCallIDs(first.ToolCalls)
		history = append(history, ai.Message{
			ID:        ai.GenerateMessageID(),
			Role:      ai.RoleAssistant,
			Content:   first.Content,
			ToolCalls: calls,
		})

		var combined strings.Builder
		for _, call := range calls {
			tr := a.executeToolCall(ctx, call, options)
			log.Info().
				Str("tool", call.Name).
				Str("call_id", call.ID).
				Bool("error", tr.IsError).
				Str("content", tr.Content).
				Msg("tool result")

			combined.WriteString(" ")
			combined.WriteString(tr.Content)
			result.ToolResults = append(result.ToolResults, tr)
			history = append(history, ai.NewToolResultMessage(tr))
		}
		result.Combined = combined.String()
	}

	final, err := a.chatClient.Chat(ctx, history, options.ChatOptions...)
	if err != nil {
		return nil, err
	}
	result.Usage = result.Usage.Add(final.Usage)

	if len(final.ToolCalls) > 0 {
		dropped := zerolog.Arr()
		for _, call := range final.ToolCalls {
			dropped.Str(call.Name)
		}
		log.Warn().Array("tools", dropped).Msg("ignoring tool calls in final response")
	}

	history = append(history, ai.Message{
		ID:      ai.GenerateMessageID(),
		Role:    ai.RoleAssistant,
		Content: final.Content,
	})
	log.Info().Str("content", final.Content).Msg("assistant answer")

	result.Messages = history
	result.Response = final
	return result, nil
}

// executeToolCall runs a single call under the handler timeout. Unknown
// tools produce an error result instead of failing the run.
func (a *Agent) executeToolCall(ctx context.Context, call ai.ToolCall, options *Options) ai.ToolResult {
	if options.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.HandlerTimeout)
		defer cancel()
	}

	options.Logger.Debug().Str("tool", call.Name).Str("arguments", call.Arguments).Msg("tool call")

	tr, err := a.registry.Execute(ctx, call)
	if err != nil {
		return ai.ToolResult{
			ToolCallID: call.ID,
			Name:       call.Name,
			Content:    err.Error(),
			IsError:    true,
		}
	}
	return tr
}

// withCallIDs returns calls with a generated ID wherever the model sent none.
func withCallIDs(calls []ai.ToolCall) []ai.ToolCall {
	out := make([]ai.ToolCall, len(calls))
	for i, call := range calls {
		if call.ID == "" {
			call.ID = ai.GenerateCallID()
		}
		out[i] = call
	}
	return out
}
