package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// fakeModel is an OpenAI-compatible chat endpoint that asks for
// get_client_data once and then answers.
type fakeModel struct {
	mu       sync.Mutex
	requests []map[string]any
}

func (m *fakeModel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	raw, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(raw, &body)

	m.mu.Lock()
	m.requests = append(m.requests, body)
	n := len(m.requests)
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if n%2 == 1 {
		_, _ = w.Write([]byte(`{
			"id": "r1", "object": "chat.completion", "model": "llama3.1",
			"choices": [{"index": 0, "finish_reason": "tool_calls", "message": {
				"role": "assistant", "content": null,
				"tool_calls": [{"id": "call_1", "type": "function", "function": {
					"name": "get_client_data",
					"arguments": "{\"firstname\":\"Lukas\",\"lastname\":\"Meister\"}"
				}}]
			}}]
		}`))
		return
	}
	_, _ = w.Write([]byte(`{
		"id": "r2", "object": "chat.completion", "model": "llama3.1",
		"choices": [{"index": 0, "finish_reason": "stop", "message": {
			"role": "assistant", "content": "Lukas Meister wohnt in Hamburg."
		}}]
	}`))
}

func (m *fakeModel) request(i int) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[i]
}

// setupBackends starts the token endpoint, the care API and the model and
// points the environment at them.
func setupBackends(t *testing.T) *fakeModel {
	t.Helper()

	authSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "tok", "token_type": "bearer", "expires_in": 300}`))
	}))
	t.Cleanup(authSrv.Close)

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/klient" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"content":[{"id":"k-1","person":{"name":"Meister","vorname":"Lukas"},"wohnort":"Hamburg"}]}`))
	}))
	t.Cleanup(apiSrv.Close)

	model := &fakeModel{}
	modelSrv := httptest.NewServer(model)
	t.Cleanup(modelSrv.Close)

	t.Setenv("username", "pflege")
	t.Setenv("password", "geheim")
	t.Setenv("CARE_PROVIDER", "ollama")
	t.Setenv("CARE_MODEL", "")
	t.Setenv("ollama_host", modelSrv.URL)
	t.Setenv("ollama_model", "llama3.1")
	t.Setenv("CARE_AUTH_URL", authSrv.URL)
	t.Setenv("CARE_API_URL", apiSrv.URL)
	t.Setenv("CARE_HISTORY_DIR", t.TempDir())
	t.Setenv("CARE_SEED_FILE", "")
	t.Setenv("CARE_LOG_PRETTY", "false")
	t.Setenv("logger_level", "ERROR")
	return model
}

func TestToolsCommand(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		out, err := execute(t, "tools")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 18)
		assert.True(t, strings.HasPrefix(lines[0], "NAME"))
		assert.True(t, strings.HasPrefix(lines[1], "get_client_data"))
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "tools", "--json")
		require.NoError(t, err)

		var tools []struct {
			Name        string          `json:"name"`
			Description string          `json:"description"`
			Parameters  json.RawMessage `json:"parameters"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &tools))
		require.Len(t, tools, 17)
		assert.Contains(t, string(tools[0].Parameters), "firstname")
	})
}

func TestAskCommand(t *testing.T) {
	t.Run("empty question", func(t *testing.T) {
		_, err := execute(t, "ask", "  ")
		assert.ErrorContains(t, err, "empty input")
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Setenv("username", "")
		t.Setenv("password", "")
		_, err := execute(t, "ask", "Wo wohnt Lukas Meister?")
		assert.ErrorContains(t, err, "username and password")
	})

	t.Run("answers and persists the session", func(t *testing.T) {
		model := setupBackends(t)

		out, err := execute(t, "ask", "--session", "s1", "Wo wohnt Lukas Meister?")
		require.NoError(t, err)
		assert.Equal(t, "Lukas Meister wohnt in Hamburg.\n", out)

		second := model.request(1)
		_, hasTools := second["tools"]
		assert.False(t, hasTools, "second call must not offer tools")

		msgs, _ := second["messages"].([]any)
		require.Len(t, msgs, 4)
		tool, _ := msgs[3].(map[string]any)
		assert.Equal(t, "tool", tool["role"])
		assert.Equal(t, "call_1", tool["tool_call_id"])
		assert.Contains(t, tool["content"], "Hamburg")

		out, err = execute(t, "sessions")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		fields := strings.Fields(lines[1])
		assert.Equal(t, "s1", fields[0])
		assert.Equal(t, "5", fields[1])
	})
}

func TestRunCommand(t *testing.T) {
	model := setupBackends(t)

	out, err := execute(t, "run")
	require.NoError(t, err)
	assert.Equal(t, "Lukas Meister wohnt in Hamburg.\n", out)

	first := model.request(0)
	tools, _ := first["tools"].([]any)
	assert.Len(t, tools, 17)
}
