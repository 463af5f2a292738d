package crypto

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/cryptovault/internal/jsonx"
	"github.com/AlexZinkM/cryptovault/internal/model"
)

// errOpen is returned by openValue when GCM authentication fails
var errOpen = errors.New("message authentication failed")

// DecryptWithPassword opens a password-rooted envelope into out.
// On success the derived key becomes the session key; on failure
// ErrAuthentication is returned and the session is left untouched.
// password must be []byte for security (caller should zero it after use)
func (c *Cipher) DecryptWithPassword(env *model.Envelope, password []byte, out any) error {
	if env == nil || len(env.Salt) == 0 {
		return ErrAuthentication
	}

	key := DeriveKey(password, env.Salt)
	defer clear(key)

	if err := openValue(key, env, out); err != nil {
		if errors.Is(err, errOpen) {
			return ErrAuthentication
		}
		return err
	}

	c.session.Set(key)
	return nil
}

// openValue authenticates and decrypts env under key and decodes the JSON into out
func openValue(key []byte, env *model.Envelope, out any) error {
	if len(env.IV) != nonceLen {
		return errOpen
	}

	aesGCM, err := newGCM(key)
	if err != nil {
		return err
	}

	plaintext, err := aesGCM.Open(nil, env.IV, env.CipherText, nil)
	if err != nil {
		return errOpen
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	if err := jsonx.Unmarshal(plaintext, out); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}
