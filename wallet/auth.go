package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/AlexZinkM/cryptovault/internal/crypto"
	"github.com/AlexZinkM/cryptovault/internal/logx"
	"github.com/AlexZinkM/cryptovault/internal/metrics"
	"github.com/AlexZinkM/cryptovault/internal/mnemonic"
	"github.com/AlexZinkM/cryptovault/internal/model"

	"go.uber.org/zap"
)

// ErrEmptyCredentials is returned when signing up without a username or password
var ErrEmptyCredentials = errors.New("username and password are required")

// Auth drives the vault lifecycle: signup, login, unlock, lock and the
// operations that re-verify the password.
type Auth struct {
	store    *crypto.SecureStore
	cipher   *crypto.Cipher
	session  *crypto.Session
	registry *Registry
	logger   *zap.Logger
	now      func() time.Time

	mu sync.Mutex
}

// NewAuth wires the auth lifecycle over an existing store, session and registry
func NewAuth(store *crypto.SecureStore, session *crypto.Session, registry *Registry, logger *zap.Logger) *Auth {
	return &Auth{
		store:    store,
		cipher:   crypto.NewCipher(session),
		session:  session,
		registry: registry,
		logger:   logx.OrNop(logger).Named("auth"),
		now:      time.Now,
	}
}

// Signup creates the user record, stores the seed phrase (imported or a
// fresh 12-word one) and creates the wallet. The password-derived key
// becomes the session key.
// password must be []byte for security (caller should zero it after use)
func (a *Auth) Signup(ctx context.Context, username string, password []byte, importedMnemonic string) (*model.Wallet, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return nil, ErrEmptyCredentials
	}

	phrase := mnemonic.Normalize(importedMnemonic)
	if phrase != "" {
		if err := mnemonic.Validate(phrase); err != nil {
			return nil, err
		}
	} else {
		var err error
		if phrase, err = mnemonic.Generate(12); err != nil {
			return nil, err
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	user := model.User{Username: username, CreatedAt: a.now().UnixMilli()}
	env, err := a.cipher.EncryptWithPassword(user, password)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt user: %w", err)
	}
	if err := a.store.SetPlain(KeyUser, env); err != nil {
		return nil, fmt.Errorf("failed to persist user: %w", err)
	}
	if err := a.store.SecureSet(KeySeedPhrase, phrase); err != nil {
		return nil, fmt.Errorf("failed to persist seed phrase: %w", err)
	}

	w, err := a.registry.CreateWallet(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.store.SetPlain(KeyAuthenticated, true); err != nil {
		return nil, fmt.Errorf("failed to persist auth flag: %w", err)
	}

	metrics.SetSessionUnlocked(true)
	a.logger.Info("signed up",
		zap.Bool("imported", importedMnemonic != ""),
		zap.Stringer("session", a.session.ID()))
	return w, nil
}

// Login verifies username and password and loads the wallet
// password must be []byte for security (caller should zero it after use)
func (a *Auth) Login(ctx context.Context, username string, password []byte) (*model.Wallet, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.openUser(password)
	if err != nil {
		return nil, err
	}
	if user.Username != strings.TrimSpace(username) {
		// a rejected login leaves the vault locked
		a.session.Clear()
		a.registry.Forget()
		metrics.IncUnlockFailure()
		return nil, crypto.ErrAuthentication
	}

	w, err := a.registry.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.store.SetPlain(KeyAuthenticated, true); err != nil {
		return nil, fmt.Errorf("failed to persist auth flag: %w", err)
	}

	metrics.SetSessionUnlocked(true)
	a.logger.Info("logged in", zap.Stringer("session", a.session.ID()))
	return w, nil
}

// Unlock re-establishes the session of an authenticated user
// password must be []byte for security (caller should zero it after use)
func (a *Auth) Unlock(ctx context.Context, password []byte) (*model.Wallet, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.openUser(password); err != nil {
		return nil, err
	}

	w, err := a.registry.Load(ctx)
	if err != nil {
		return nil, err
	}

	metrics.SetSessionUnlocked(true)
	a.logger.Info("unlocked", zap.Stringer("session", a.session.ID()))
	return w, nil
}

// Lock wipes the session key and the in-memory wallet. The user stays authenticated.
func (a *Auth) Lock() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lock()
	a.logger.Info("locked")
}

// Logout locks and clears the authenticated flag
func (a *Auth) Logout() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.lock()
	if err := a.store.Remove(KeyAuthenticated); err != nil {
		return fmt.Errorf("failed to clear auth flag: %w", err)
	}
	a.logger.Info("logged out")
	return nil
}

func (a *Auth) lock() {
	a.session.Clear()
	a.registry.Forget()
	metrics.SetSessionUnlocked(false)
}

// Unlocked reports whether a session key is established
func (a *Auth) Unlocked() bool {
	return a.session.Unlocked()
}

// StartScreen picks the entry screen after a restart
func (a *Auth) StartScreen() (model.Screen, error) {
	hasUser, err := a.store.Has(KeyUser)
	if err != nil {
		return "", err
	}
	hasWallet, err := a.store.Has(KeyWallet)
	if err != nil {
		return "", err
	}
	if !hasUser || !hasWallet {
		return model.ScreenOnboarding, nil
	}

	if a.session.Unlocked() {
		return model.ScreenHome, nil
	}

	var authenticated bool
	if _, err := a.store.GetPlain(KeyAuthenticated, &authenticated); err != nil {
		return "", err
	}
	if authenticated {
		return model.ScreenUnlock, nil
	}
	return model.ScreenLogin, nil
}

// RevealSeedPhrase re-verifies the password and returns the stored mnemonic.
// Requires an unlocked session.
// password must be []byte for security (caller should zero it after use)
func (a *Auth) RevealSeedPhrase(password []byte) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.session.Unlocked() {
		return "", crypto.ErrLocked
	}
	if _, err := a.openUser(password); err != nil {
		return "", err
	}
	return a.seedPhrase()
}

func (a *Auth) seedPhrase() (string, error) {
	var phrase string
	found, err := a.store.SecureGet(KeySeedPhrase, &phrase)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrNoSeedPhrase
	}
	return phrase, nil
}

// RevealPrivateKey re-verifies the password and returns the secret of the selected account
// password must be []byte for security (caller should zero it after use)
func (a *Auth) RevealPrivateKey(password []byte) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.session.Unlocked() {
		return "", crypto.ErrLocked
	}
	if _, err := a.openUser(password); err != nil {
		return "", err
	}

	acc, err := a.registry.SelectedAccount()
	if err != nil {
		return "", err
	}
	return acc.Keys.Secret(), nil
}

// ChangePassword re-encrypts the user record, the seed phrase and the
// wallet under a key derived from newPassword. All three records are
// written in one store write; on failure the vault stays under the old password.
// passwords must be []byte for security (caller should zero them after use)
func (a *Auth) ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error {
	if len(newPassword) == 0 {
		return ErrEmptyCredentials
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.openUser(oldPassword)
	if err != nil {
		return err
	}

	phrase, err := a.seedPhrase()
	if err != nil {
		return err
	}
	if _, err := a.registry.Wallet(); errors.Is(err, ErrNoWallet) {
		if _, err := a.registry.Load(ctx); err != nil {
			return err
		}
	}

	env, newKey, err := crypto.SealWithPassword(user, newPassword)
	if err != nil {
		return fmt.Errorf("failed to encrypt user: %w", err)
	}
	defer clear(newKey)

	err = a.registry.Rekey(ctx, func(w *model.Wallet) error {
		return a.store.Rekey(newKey,
			map[string]any{KeyUser: env},
			map[string]any{KeySeedPhrase: phrase, KeyWallet: w},
		)
	})
	if err != nil {
		a.logger.Error("password change failed, vault kept under old password", zap.Error(err))
		return err
	}

	a.logger.Info("password changed", zap.Stringer("session", a.session.ID()))
	return nil
}

// Reset removes every persisted record and locks the vault
func (a *Auth) Reset() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.lock()
	for _, key := range []string{KeyWallet, KeySeedPhrase, KeyUser, KeyAuthenticated} {
		if err := a.store.Remove(key); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	a.logger.Warn("vault reset")
	return nil
}

// openUser decrypts the user record, establishing the session key on success
func (a *Auth) openUser(password []byte) (model.User, error) {
	var env model.Envelope
	found, err := a.store.GetPlain(KeyUser, &env)
	if err != nil {
		return model.User{}, err
	}
	if !found {
		return model.User{}, crypto.ErrAuthentication
	}

	var user model.User
	if err := a.cipher.DecryptWithPassword(&env, password, &user); err != nil {
		if errors.Is(err, crypto.ErrAuthentication) {
			metrics.IncUnlockFailure()
			a.logger.Warn("password rejected")
		}
		return model.User{}, err
	}
	return user, nil
}
