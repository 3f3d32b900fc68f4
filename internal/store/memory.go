package store

import (
	"sync"

	"github.com/mattedesign/traction-pay-pilot-sub003/internal/chat"
)

// SessionStore keeps live chat sessions keyed by session ID. Sessions are
// created on first use through the injected factory and discarded with the
// process; transcripts are never persisted.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*chat.Session
	factory  func(sessionID string) *chat.Session
}

func NewSessionStore(factory func(sessionID string) *chat.Session) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*chat.Session),
		factory:  factory,
	}
}

// Get returns the session for the ID, creating it on first use.
func (s *SessionStore) Get(sessionID string) *chat.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		return sess
	}
	sess := s.factory(sessionID)
	s.sessions[sessionID] = sess
	return sess
}

// Drop removes a session, ending its lifecycle.
func (s *SessionStore) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *SessionStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
