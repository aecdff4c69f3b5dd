// Package careagent answers questions about care-facility clients with a
// tool-calling language model.
//
// The root package holds the conversation types shared by every other
// package: [Message], [Tool], [ToolCall], [ToolResult], [Response], the
// [ChatProvider] interface and categorized errors.
//
// The pieces fit together like this:
//
//   - [github.com/m-rashid-2024/careagent/auth] fetches bearer tokens with an
//     OAuth password grant.
//   - [github.com/m-rashid-2024/careagent/careapi] resolves clients and care
//     documents on the REST API.
//   - [github.com/m-rashid-2024/careagent/caretools] turns document payloads
//     into German sentences and registers them as tools.
//   - [github.com/m-rashid-2024/careagent/agent] runs one question-answer turn
//     against a [ChatProvider].
//
// # Basic Usage
//
//	c, err := client.New(ctx, client.Config{
//	    Provider: ai.ProviderOllama,
//	    BaseURL:  "http://localhost:11434",
//	    Model:    "llama3.1",
//	})
//	if err != nil {
//	    return err
//	}
//
//	a := agent.New(c, registry)
//	result, err := a.Run(ctx, []ai.Message{
//	    {Role: ai.RoleUser, Content: "Welche Medikamente bekommt Lukas Meister?"},
//	})
package careagent
