package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ai "github.com/m-rashid-2024/careagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestConvertMessages(t *testing.T) {
	contents, system := convertMessages([]ai.Message{
		{Role: ai.RoleSystem, Content: "Du bist ein hilfreicher Assistent."},
		{Role: ai.RoleUser, Content: "Hat Lukas Meister ein Sturzprotokoll?"},
		{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{{ID: "c1", Name: "get_sturzprotokoll", Arguments: `{"firstname":"Lukas"}`}}},
		ai.NewToolResultMessage(ai.ToolResult{ToolCallID: "c1", Name: "get_sturzprotokoll", Content: "No accident report found", IsError: true}),
	})

	require.NotNil(t, system)
	assert.Equal(t, "Du bist ein hilfreicher Assistent.", system.Parts[0].Text)

	require.Len(t, contents, 3)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	call := contents[1].Parts[0].FunctionCall
	require.NotNil(t, call)
	assert.Equal(t, "c1", call.ID)
	assert.Equal(t, "Lukas", call.Args["firstname"])

	resp := contents[2].Parts[0].FunctionResponse
	require.NotNil(t, resp)
	assert.Equal(t, "get_sturzprotokoll", resp.Name)
	assert.Equal(t, map[string]any{"error": "No accident report found"}, resp.Response)
}

func TestConvertSchema(t *testing.T) {
	schema := convertSchema(json.RawMessage(`{
		"type": "object",
		"properties": {"firstname": {"type": "string", "description": "Vorname des Klienten"}},
		"required": ["firstname"]
	}`))

	require.NotNil(t, schema)
	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, genai.TypeString, schema.Properties["firstname"].Type)
	assert.Equal(t, "Vorname des Klienten", schema.Properties["firstname"].Description)
	assert.Equal(t, []string{"firstname"}, schema.Required)
	assert.Nil(t, convertSchema(nil))
}

func TestExtractToolCalls(t *testing.T) {
	calls := extractToolCalls([]*genai.Part{
		{Text: "Moment"},
		{FunctionCall: &genai.FunctionCall{ID: "fc-1", Name: "get_client_id", Args: map[string]any{"lastname": "Meister"}}},
		{FunctionCall: &genai.FunctionCall{Name: "get_vitalwerte"}},
	})

	require.Len(t, calls, 2)
	assert.Equal(t, "fc-1", calls[0].ID)
	assert.JSONEq(t, `{"lastname":"Meister"}`, calls[0].Arguments)
	assert.Empty(t, calls[1].ID)
}

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [
					{"functionCall": {"id": "fc-1", "name": "get_client_id", "args": {"firstname": "Lukas", "lastname": "Meister"}}}
				]},
				"finishReason": "STOP"
			}],
			"usageMetadata": {"promptTokenCount": 8, "candidatesTokenCount": 3}
		}`))
	}))
	defer srv.Close()

	client, err := New(context.Background(), "key", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	resp, err := client.Chat(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "Hallo"}})
	require.NoError(t, err)
	assert.Equal(t, "STOP", resp.FinishReason)
	assert.Equal(t, ai.Usage{InputTokens: 8, OutputTokens: 3}, resp.Usage)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "get_client_id", resp.ToolCalls[0].Name)
}
