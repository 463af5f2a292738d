package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/AlexZinkM/cryptovault/internal/jsonx"
	"github.com/AlexZinkM/cryptovault/internal/model"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2 parameters are part of the persisted format: changing them
	// makes every existing user envelope unreadable.
	pbkdf2Iterations = 120_000
	keyLen           = 32 // AES-256
	saltLen          = 16
	nonceLen         = 12
)

// Cipher performs password-rooted envelope encryption and owns
// establishing the session key.
type Cipher struct {
	session *Session
}

// NewCipher creates a Cipher that establishes keys on session
func NewCipher(session *Session) *Cipher {
	return &Cipher{session: session}
}

// DeriveKey stretches password with salt. Same inputs always yield the same key.
func DeriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, pbkdf2Iterations, keyLen, sha256.New)
}

// EncryptWithPassword encrypts value under a key derived from password and a
// fresh salt, and sets that key as the session key.
// password must be []byte for security (caller should zero it after use)
func (c *Cipher) EncryptWithPassword(value any, password []byte) (*model.Envelope, error) {
	env, key, err := SealWithPassword(value, password)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	c.session.Set(key)
	return env, nil
}

// SealWithPassword is EncryptWithPassword without touching the session.
// It returns the derived key; caller must zero it after use.
func SealWithPassword(value any, password []byte) (*model.Envelope, []byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := DeriveKey(password, salt)
	env, err := sealValue(key, value)
	if err != nil {
		clear(key)
		return nil, nil, err
	}
	env.Salt = salt
	return env, key, nil
}

// sealValue JSON-encodes value and seals it under key with a fresh nonce
func sealValue(key []byte, value any) (*model.Envelope, error) {
	plaintext, err := jsonx.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return &model.Envelope{
		IV:         nonce,
		CipherText: aesGCM.Seal(nil, nonce, plaintext, nil),
	}, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
