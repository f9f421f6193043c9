package agent

import (
	"sync"

	"github.com/google/uuid"
)

const sessionHistoryLimit = 20

// Message is one turn of conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is an append-only conversation buffer with a bounded trailing
// window. Access is serialized; the pipeline itself never shares a session
// between concurrent requests.
type Session struct {
	id string

	mu       sync.Mutex
	messages []Message
}

func newSession(id string) *Session {
	return &Session{id: id}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, Message{Role: role, Content: content})
	if len(s.messages) > sessionHistoryLimit {
		s.messages = s.messages[len(s.messages)-sessionHistoryLimit:]
	}
}

// Tail returns a copy of the last n messages.
func (s *Session) Tail(n int) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > len(s.messages) {
		n = len(s.messages)
	}
	out := make([]Message, n)
	copy(out, s.messages[len(s.messages)-n:])
	return out
}

// SessionStore hands out sessions by id, creating one on first use.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Get returns the session for id, minting a fresh one when id is empty or
// unknown.
func (st *SessionStore) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	s, ok := st.sessions[id]
	if !ok {
		s = newSession(id)
		st.sessions[id] = s
	}
	return s
}
