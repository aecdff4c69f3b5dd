// Package conversation loads the seed conversation the CLI starts from.
package conversation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	ai "github.com/m-rashid-2024/careagent"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is a system prompt plus a scripted conversation.
type Seed struct {
	System   string        `yaml:"system"`
	Messages []seedMessage `yaml:"messages"`
}

type seedMessage struct {
	Role       string         `yaml:"role"`
	Content    string         `yaml:"content"`
	ToolCalls  []seedToolCall `yaml:"tool_calls"`
	ToolCallID string         `yaml:"tool_call_id"`
	Name       string         `yaml:"name"`
	IsError    bool           `yaml:"is_error"`
}

type seedToolCall struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Arguments map[string]any `yaml:"arguments"`
}

// Default returns the built-in seed.
func Default() (*Seed, error) {
	return Parse(defaultSeed)
}

// Load reads a seed from path. An empty path yields the built-in seed.
func Load(path string) (*Seed, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	seed, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return seed, nil
}

// Parse decodes and validates a YAML seed.
func Parse(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if _, err := s.Conversation(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Prompt starts a fresh conversation: the system prompt and one question.
func (s *Seed) Prompt(question string) []ai.Message {
	var msgs []ai.Message
	if s.System != "" {
		msgs = append(msgs, ai.Message{ID: ai.GenerateMessageID(), Role: ai.RoleSystem, Content: s.System})
	}
	return append(msgs, ai.Message{ID: ai.GenerateMessageID(), Role: ai.RoleUser, Content: question})
}

// Conversation returns the system prompt followed by the scripted messages.
func (s *Seed) Conversation() ([]ai.Message, error) {
	msgs := make([]ai.Message, 0, len(s.Messages)+1)
	if s.System != "" {
		msgs = append(msgs, ai.Message{ID: ai.GenerateMessageID(), Role: ai.RoleSystem, Content: s.System})
	}

	for i, m := range s.Messages {
		msg := ai.Message{ID: ai.GenerateMessageID(), Role: ai.Role(m.Role)}
		switch msg.Role {
		case ai.RoleSystem, ai.RoleUser:
			msg.Content = m.Content
		case ai.RoleAssistant:
			msg.Content = m.Content
			for _, tc := range m.ToolCalls {
				call, err := tc.toolCall()
				if err != nil {
					return nil, fmt.Errorf("message %d: %w", i, err)
				}
				msg.ToolCalls = append(msg.ToolCalls, call)
			}
		case ai.RoleTool:
			if m.ToolCallID == "" {
				return nil, fmt.Errorf("message %d: tool message without tool_call_id", i)
			}
			msg.ToolResults = []ai.ToolResult{{
				ToolCallID: m.ToolCallID,
				Name:       m.Name,
				Content:    m.Content,
				IsError:    m.IsError,
			}}
		default:
			return nil, fmt.Errorf("message %d: unknown role %q", i, m.Role)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func (tc seedToolCall) toolCall() (ai.ToolCall, error) {
	if tc.Name == "" {
		return ai.ToolCall{}, fmt.Errorf("tool call without name")
	}
	id := tc.ID
	if id == "" {
		id = ai.GenerateCallID()
	}
	args := tc.Arguments
	if args == nil {
		args = map[string]any{}
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return ai.ToolCall{}, fmt.Errorf("tool call %s: %w", tc.Name, err)
	}
	return ai.ToolCall{ID: id, Name: tc.Name, Arguments: string(raw)}, nil
}
