package crypto

import "errors"

var (
	// ErrLocked is returned by SecureStore operations when no session key is established
	ErrLocked = errors.New("vault locked")
	// ErrAuthentication is returned when a password-rooted envelope does not open.
	// Wrong password and corrupted envelope are deliberately indistinguishable.
	ErrAuthentication = errors.New("invalid password")
	// ErrDecryption is returned when a session-rooted envelope fails authentication
	ErrDecryption = errors.New("failed to decrypt stored value")
)
