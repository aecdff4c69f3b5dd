// Package anthropic provides an Anthropic Claude client implementing [careagent.ChatProvider].
//
// Consecutive tool result messages are merged into a single user turn because
// the Messages API expects one tool_result block per tool_use of the preceding
// assistant turn.
//
//	client := anthropic.New(os.Getenv("CARE_MODEL_API_KEY"), anthropic.WithModel("claude-sonnet-4-5"))
//	resp, err := client.Chat(ctx, messages, careagent.WithTools(registry.Tools()))
package anthropic
