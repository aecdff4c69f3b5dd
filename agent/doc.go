// Package agent runs a single tool-calling pass over a conversation.
//
// A run makes exactly two model calls. The first declares every registered
// tool; each tool call in its response is executed in model order and answered
// with one tool message. The second call sends the extended conversation
// without tool declarations, and its reply is appended as the final assistant
// message. Tool calls in the second response are not executed.
//
//	registry := caretools.NewService(api).Register(tool.NewRegistry())
//	a := agent.New(chatClient, registry)
//
//	result, err := a.Run(ctx, history, agent.WithHandlerTimeout(20*time.Second))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Response.Content)
//
// # Configuration Options
//
//   - WithTimeout(d): Set an overall deadline for the run
//   - WithHandlerTimeout(d): Set per-handler timeout (default: 30s)
//   - WithChatOptions(opts...): Pass options to the underlying ChatProvider
//   - WithLogger(l): Log tool calls and results
package agent
