package google

import (
	"encoding/json"

	ai "github.com/m-rashid-2024/careagent"
	"google.golang.org/genai"
)

// convertMessages maps the conversation onto Gemini contents. System messages
// are joined into the system instruction.
func convertMessages(messages []ai.Message) ([]*genai.Content, *genai.Content) {
	var contents []*genai.Content
	var system *genai.Content

	for _, msg := range messages {
		if msg.Role == ai.RoleSystem {
			if msg.Content == "" {
				continue
			}
			if system == nil {
				system = &genai.Content{}
			}
			system.Parts = append(system.Parts, &genai.Part{Text: msg.Content})
			continue
		}

		role := "user"
		if msg.Role == ai.RoleAssistant {
			role = "model"
		}

		var parts []*genai.Part
		if msg.Content != "" {
			parts = append(parts, &genai.Part{Text: msg.Content})
		}
		for _, tc := range msg.ToolCalls {
			args := map[string]any{}
			if tc.Arguments != "" {
				_ = json.Unmarshal([]byte(tc.Arguments), &args)
			}
			parts = append(parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{
					ID:   tc.ID,
					Name: tc.Name,
					Args: args,
				},
			})
		}
		for _, tr := range msg.ToolResults {
			parts = append(parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					ID:       tr.ToolCallID,
					Name:     resultName(tr),
					Response: resultPayload(tr),
				},
			})
		}

		if len(parts) > 0 {
			contents = append(contents, &genai.Content{
				Role:  role,
				Parts: parts,
			})
		}
	}

	return contents, system
}

// resultName returns the function name Gemini keys responses by.
func resultName(tr ai.ToolResult) string {
	if tr.Name != "" {
		return tr.Name
	}
	return tr.ToolCallID
}

func resultPayload(tr ai.ToolResult) map[string]any {
	if tr.IsError {
		return map[string]any{"error": tr.Content}
	}
	return map[string]any{"output": tr.Content}
}
