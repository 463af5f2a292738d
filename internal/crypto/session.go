package crypto

import (
	"sync"

	"github.com/google/uuid"
)

// Session holds the symmetric key of an unlocked vault.
// Only one key is live at a time; Clear wipes it.
type Session struct {
	mu  sync.RWMutex
	key []byte
	id  uuid.UUID
}

// NewSession returns a locked session
func NewSession() *Session {
	return &Session{}
}

// Set establishes key as the live session key, replacing any previous one
func (s *Session) Set(key []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.key)
	s.key = append([]byte(nil), key...)
	s.id = uuid.New()
}

// Clear wipes the session key. Subsequent Key calls fail with ErrLocked.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.key)
	s.key = nil
	s.id = uuid.Nil
}

// Key returns a copy of the live key. Caller should zero it after use.
func (s *Session) Key() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.key == nil {
		return nil, ErrLocked
	}
	return append([]byte(nil), s.key...), nil
}

// Unlocked reports whether a key is established
func (s *Session) Unlocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key != nil
}

// ID identifies the current key for logging; uuid.Nil when locked
func (s *Session) ID() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}
