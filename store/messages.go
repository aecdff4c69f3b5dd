package store

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	ai "github.com/m-rashid-2024/careagent"
)

// Session is the persisted form of a conversation.
type Session struct {
	ID        string       `json:"id"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Messages  []ai.Message `json:"messages"`
}

// MessageStore manages conversation history with persistence support.
type MessageStore struct {
	mu       sync.RWMutex
	messages []ai.Message
	adapter  Adapter
}

// NewMessageStore creates a new MessageStore with the given adapter.
// If adapter is nil, a default in-memory adapter is used.
func NewMessageStore(adapter Adapter) *MessageStore {
	if adapter == nil {
		adapter = NewMemoryAdapter()
	}
	return &MessageStore{
		messages: make([]ai.Message, 0),
		adapter:  adapter,
	}
}

// NewMessageStoreFrom creates a MessageStore initialized with existing messages.
func NewMessageStoreFrom(messages []ai.Message, adapter Adapter) *MessageStore {
	ms := NewMessageStore(adapter)
	if len(messages) > 0 {
		ms.messages = make([]ai.Message, len(messages))
		copy(ms.messages, messages)
	}
	return ms
}

// Messages returns a copy of all messages.
func (m *MessageStore) Messages() []ai.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]ai.Message, len(m.messages))
	copy(result, m.messages)
	return result
}

// Append adds messages to the store. Messages without an ID get one.
func (m *MessageStore) Append(msgs ...ai.Message) {
	if len(msgs) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range msgs {
		if msg.ID == "" {
			msg.ID = ai.GenerateMessageID()
		}
		m.messages = append(m.messages, msg)
	}
}

// Replace swaps the whole history, e.g. for the extended conversation an
// agent run returns.
func (m *MessageStore) Replace(msgs []ai.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = make([]ai.Message, len(msgs))
	copy(m.messages, msgs)
}

// Len returns the number of messages.
func (m *MessageStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages)
}

// Clear removes all messages.
func (m *MessageStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = make([]ai.Message, 0)
}

// Last returns the last n messages. If n > Len(), returns all messages.
func (m *MessageStore) Last(n int) []ai.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n <= 0 {
		return nil
	}

	start := max(len(m.messages)-n, 0)
	result := make([]ai.Message, len(m.messages)-start)
	copy(result, m.messages[start:])
	return result
}

// Sync persists the messages to the adapter under the given key.
func (m *MessageStore) Sync(ctx context.Context, key string) error {
	m.mu.RLock()
	raw, err := encodeSession(Session{ID: key, UpdatedAt: time.Now().UTC(), Messages: m.messages})
	m.mu.RUnlock()
	if err != nil {
		return &SerializationError{Key: key, Err: err}
	}
	return m.adapter.Set(ctx, key, raw)
}

// Reload loads messages from the adapter using the given key.
// Returns ErrKeyNotFound if no session was stored under key.
func (m *MessageStore) Reload(ctx context.Context, key string) error {
	session, err := LoadSession(ctx, m.adapter, key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = session.Messages
	if m.messages == nil {
		m.messages = make([]ai.Message, 0)
	}
	return nil
}

// Adapter returns the underlying adapter.
func (m *MessageStore) Adapter() Adapter {
	return m.adapter
}

// LoadSession reads and decodes the session stored under key.
func LoadSession(ctx context.Context, adapter Adapter, key string) (*Session, error) {
	raw, ok, err := adapter.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrKeyNotFound
	}
	session, err := decodeSession(raw)
	if err != nil {
		return nil, &SerializationError{Key: key, Err: err}
	}
	return session, nil
}

// encodeSession writes s as msgpack, keyed by the json field names.
func encodeSession(s Session) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeSession(raw []byte) (*Session, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(raw))
	dec.SetCustomStructTag("json")
	var s Session
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
