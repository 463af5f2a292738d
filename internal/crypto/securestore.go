package crypto

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/cryptovault/internal/jsonx"
	"github.com/AlexZinkM/cryptovault/internal/model"
	"github.com/AlexZinkM/cryptovault/internal/store"
)

// SecureStore persists values encrypted under the live session key
type SecureStore struct {
	kv      store.KV
	session *Session
}

// NewSecureStore wraps kv with session-rooted encryption
func NewSecureStore(kv store.KV, session *Session) *SecureStore {
	return &SecureStore{kv: kv, session: session}
}

// SecureSet encrypts value with the session key and stores it under key
func (s *SecureStore) SecureSet(key string, value any) error {
	sessionKey, err := s.session.Key()
	if err != nil {
		return err
	}
	defer clear(sessionKey)

	env, err := sealValue(sessionKey, value)
	if err != nil {
		return err
	}

	blob, err := jsonx.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	if err := s.kv.Set(key, blob); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

// SecureGet decrypts the value stored under key into out.
// Returns false if nothing is stored under key.
func (s *SecureStore) SecureGet(key string, out any) (bool, error) {
	sessionKey, err := s.session.Key()
	if err != nil {
		return false, err
	}
	defer clear(sessionKey)

	blob, err := s.kv.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if blob == nil {
		return false, nil
	}

	var env model.Envelope
	if err := jsonx.Unmarshal(blob, &env); err != nil {
		return false, fmt.Errorf("%w: malformed envelope under %s", ErrDecryption, key)
	}

	if err := openValue(sessionKey, &env, out); err != nil {
		if errors.Is(err, errOpen) {
			return false, ErrDecryption
		}
		return false, err
	}
	return true, nil
}

// Rekey writes plain values as is and secure values sealed under newKey in
// one atomic KV write. The session switches to newKey only after the write
// succeeded; on failure both the store and the session are unchanged.
func (s *SecureStore) Rekey(newKey []byte, plain, secure map[string]any) error {
	if !s.session.Unlocked() {
		return ErrLocked
	}

	blobs := make(map[string][]byte, len(plain)+len(secure))
	for key, value := range plain {
		blob, err := jsonx.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", key, err)
		}
		blobs[key] = blob
	}
	for key, value := range secure {
		env, err := sealValue(newKey, value)
		if err != nil {
			return err
		}
		blob, err := jsonx.Marshal(env)
		if err != nil {
			return fmt.Errorf("failed to marshal envelope: %w", err)
		}
		blobs[key] = blob
	}

	if err := s.kv.SetMany(blobs); err != nil {
		return fmt.Errorf("failed to persist re-encrypted records: %w", err)
	}
	s.session.Set(newKey)
	return nil
}

// Remove deletes whatever is stored under key. Does not require a session.
func (s *SecureStore) Remove(key string) error {
	return s.kv.Remove(key)
}

// SetPlain stores a value without session encryption (password-rooted
// envelopes and the authenticated flag)
func (s *SecureStore) SetPlain(key string, value any) error {
	blob, err := jsonx.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return s.kv.Set(key, blob)
}

// GetPlain reads a value written by SetPlain. Returns false if absent.
func (s *SecureStore) GetPlain(key string, out any) (bool, error) {
	blob, err := s.kv.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if blob == nil {
		return false, nil
	}
	if err := jsonx.Unmarshal(blob, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Has reports whether anything is stored under key
func (s *SecureStore) Has(key string) (bool, error) {
	blob, err := s.kv.Get(key)
	if err != nil {
		return false, err
	}
	return blob != nil, nil
}
