package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/AlexZinkM/cryptovault/ethereum"
	"github.com/AlexZinkM/cryptovault/internal/crypto"
	"github.com/AlexZinkM/cryptovault/internal/mnemonic"
	"github.com/AlexZinkM/cryptovault/internal/model"
	"github.com/AlexZinkM/cryptovault/internal/store"
	"github.com/AlexZinkM/cryptovault/solana"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

type testVault struct {
	kv       *store.MemoryProvider
	session  *crypto.Session
	store    *crypto.SecureStore
	registry *Registry
	auth     *Auth
}

func newTestVault(t *testing.T) *testVault {
	t.Helper()
	logger := zaptest.NewLogger(t)

	kv := store.NewMemoryProvider()
	session := crypto.NewSession()
	ss := crypto.NewSecureStore(kv, session)
	registry := NewRegistry(ss, logger)

	return &testVault{
		kv:       kv,
		session:  session,
		store:    ss,
		registry: registry,
		auth:     NewAuth(ss, session, registry, logger),
	}
}

func signedUp(t *testing.T) *testVault {
	t.Helper()
	v := newTestVault(t)
	_, err := v.auth.Signup(context.Background(), "alice", []byte("pw"), testMnemonic)
	require.NoError(t, err)
	return v
}

func deriveSOL(t *testing.T, index int) model.SolanaKeys {
	t.Helper()
	seed, err := mnemonic.ToSeed(testMnemonic)
	require.NoError(t, err)
	k, err := solana.DeriveAccount(seed, index)
	require.NoError(t, err)
	return k
}

func ids(w *model.Wallet) []string {
	out := make([]string, 0, len(w.Accounts))
	for _, acc := range w.Accounts {
		out = append(out, acc.ID)
	}
	return out
}

func TestSignupCreatesWallet(t *testing.T) {
	v := newTestVault(t)

	w, err := v.auth.Signup(context.Background(), "alice", []byte("pw"), "")
	require.NoError(t, err)
	require.Equal(t, []string{"sol-0", "eth-0"}, ids(w))
	require.Equal(t, "sol-0", w.SelectedAccountID)
	require.Equal(t, "Account 1", w.Accounts[0].Name)
	require.Equal(t, uint64(1), w.Version)
	require.True(t, v.auth.Unlocked())

	phrase, err := v.auth.RevealSeedPhrase([]byte("pw"))
	require.NoError(t, err)
	require.NoError(t, mnemonic.Validate(phrase))

	_, err = v.auth.RevealSeedPhrase([]byte("wrong"))
	require.ErrorIs(t, err, crypto.ErrAuthentication)
	require.True(t, v.auth.Unlocked())

	screen, err := v.auth.StartScreen()
	require.NoError(t, err)
	require.Equal(t, model.ScreenHome, screen)
}

func TestSignupWithImportedMnemonic(t *testing.T) {
	v := signedUp(t)

	w, err := v.registry.Wallet()
	require.NoError(t, err)
	require.Equal(t, deriveSOL(t, 0).PublicKey, w.Accounts[0].Address())

	_, err = newTestVault(t).auth.Signup(context.Background(), "bob", []byte("pw"), "abandon abandon")
	require.ErrorIs(t, err, mnemonic.ErrInvalidMnemonic)

	_, err = newTestVault(t).auth.Signup(context.Background(), "", []byte("pw"), "")
	require.ErrorIs(t, err, ErrEmptyCredentials)
}

func TestCreateAccountAllocatesPerChainIndex(t *testing.T) {
	v := signedUp(t)
	ctx := context.Background()

	acc, err := v.registry.CreateAccount(ctx, model.BlockchainSOL)
	require.NoError(t, err)
	require.Equal(t, "sol-1", acc.ID)
	require.Equal(t, "Account 2", acc.Name)

	acc, err = v.registry.CreateAccount(ctx, model.BlockchainSOL)
	require.NoError(t, err)
	require.Equal(t, "sol-2", acc.ID)
	require.Equal(t, deriveSOL(t, 2).PublicKey, acc.Address())

	acc, err = v.registry.CreateAccount(ctx, model.BlockchainETH)
	require.NoError(t, err)
	require.Equal(t, "eth-1", acc.ID)

	w, err := v.registry.Wallet()
	require.NoError(t, err)
	require.Equal(t, []string{"sol-0", "eth-0", "sol-1", "sol-2", "eth-1"}, ids(w))
	require.Equal(t, "eth-1", w.SelectedAccountID)
	require.Equal(t, uint64(4), w.Version)

	_, err = v.registry.CreateAccount(ctx, "BTC")
	require.Error(t, err)
}

func TestImportAccount(t *testing.T) {
	v := signedUp(t)
	ctx := context.Background()

	// key of a derived account is a duplicate
	acc, added, err := v.registry.ImportAccount(ctx, model.BlockchainSOL, deriveSOL(t, 0).SecretKey)
	require.NoError(t, err)
	require.False(t, added)
	require.Equal(t, "sol-0", acc.ID)

	w, err := v.registry.Wallet()
	require.NoError(t, err)
	require.Equal(t, uint64(1), w.Version)

	acc, added, err = v.registry.ImportAccount(ctx, model.BlockchainSOL, deriveSOL(t, 7).SecretKey)
	require.NoError(t, err)
	require.True(t, added)
	require.Equal(t, "sol-1", acc.ID)
	require.Equal(t, "Account 2", acc.Name)

	const ethKey = "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	acc, added, err = v.registry.ImportAccount(ctx, model.BlockchainETH, ethKey)
	require.NoError(t, err)
	require.True(t, added)
	require.Equal(t, "eth-1", acc.ID)

	// same key without prefix in upper case
	_, added, err = v.registry.ImportAccount(ctx, model.BlockchainETH, "4C0883A69102937D6231471B5DBB6204FE5129617082792AE468D01A3F362318")
	require.NoError(t, err)
	require.False(t, added)

	w, err = v.registry.Wallet()
	require.NoError(t, err)
	require.Len(t, w.Accounts, 4)
	require.Equal(t, "eth-1", w.SelectedAccountID)

	_, _, err = v.registry.ImportAccount(ctx, model.BlockchainETH, "nope")
	require.ErrorIs(t, err, model.ErrInvalidKey)
}

func TestSelectAndRename(t *testing.T) {
	v := signedUp(t)
	ctx := context.Background()

	require.NoError(t, v.registry.SelectAccount(ctx, "eth-0"))
	acc, err := v.registry.SelectedAccount()
	require.NoError(t, err)
	require.Equal(t, model.BlockchainETH, acc.Blockchain())

	require.ErrorIs(t, v.registry.SelectAccount(ctx, "sol-9"), ErrUnknownAccount)
	acc, err = v.registry.SelectedAccount()
	require.NoError(t, err)
	require.Equal(t, "eth-0", acc.ID)

	require.NoError(t, v.registry.RenameAccount(ctx, "sol-0", "  Savings "))
	w, err := v.registry.Wallet()
	require.NoError(t, err)
	require.Equal(t, "Savings", w.Accounts[0].Name)

	require.ErrorIs(t, v.registry.RenameAccount(ctx, "sol-0", " "), ErrInvalidName)
	require.ErrorIs(t, v.registry.RenameAccount(ctx, "eth-5", "x"), ErrUnknownAccount)
}

func TestWalletPersistsAcrossLoad(t *testing.T) {
	v := signedUp(t)
	ctx := context.Background()

	_, err := v.registry.CreateAccount(ctx, model.BlockchainETH)
	require.NoError(t, err)
	want, err := v.registry.Wallet()
	require.NoError(t, err)

	fresh := NewRegistry(v.store, nil)
	got, err := fresh.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLockGatesEverything(t *testing.T) {
	v := signedUp(t)
	ctx := context.Background()

	v.auth.Lock()
	require.False(t, v.auth.Unlocked())

	_, err := v.registry.Wallet()
	require.ErrorIs(t, err, ErrNoWallet)
	_, err = v.registry.CreateAccount(ctx, model.BlockchainSOL)
	require.ErrorIs(t, err, ErrNoWallet)
	_, err = v.auth.RevealSeedPhrase([]byte("pw"))
	require.ErrorIs(t, err, crypto.ErrLocked)
	_, err = v.registry.Load(ctx)
	require.ErrorIs(t, err, crypto.ErrLocked)
	_, err = v.auth.RevealPrivateKey([]byte("pw"))
	require.ErrorIs(t, err, crypto.ErrLocked)

	screen, err := v.auth.StartScreen()
	require.NoError(t, err)
	require.Equal(t, model.ScreenUnlock, screen)

	_, err = v.auth.Unlock(ctx, []byte("wrong"))
	require.ErrorIs(t, err, crypto.ErrAuthentication)
	require.False(t, v.auth.Unlocked())

	w, err := v.auth.Unlock(ctx, []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, []string{"sol-0", "eth-0"}, ids(w))
}

func TestLogoutAndLogin(t *testing.T) {
	v := signedUp(t)
	ctx := context.Background()

	require.NoError(t, v.auth.Logout())
	screen, err := v.auth.StartScreen()
	require.NoError(t, err)
	require.Equal(t, model.ScreenLogin, screen)

	_, err = v.auth.Login(ctx, "mallory", []byte("pw"))
	require.ErrorIs(t, err, crypto.ErrAuthentication)
	require.False(t, v.auth.Unlocked())

	_, err = v.auth.Login(ctx, "alice", []byte("bad"))
	require.ErrorIs(t, err, crypto.ErrAuthentication)

	_, err = v.auth.Login(ctx, "alice", []byte("pw"))
	require.NoError(t, err)
	require.True(t, v.auth.Unlocked())

	v.auth.Lock()
	screen, err = v.auth.StartScreen()
	require.NoError(t, err)
	require.Equal(t, model.ScreenUnlock, screen)
}

func TestRevealPrivateKey(t *testing.T) {
	v := signedUp(t)

	secret, err := v.auth.RevealPrivateKey([]byte("pw"))
	require.NoError(t, err)
	require.Equal(t, deriveSOL(t, 0).SecretKey, secret)

	_, err = v.auth.RevealPrivateKey([]byte("nope"))
	require.ErrorIs(t, err, crypto.ErrAuthentication)
	require.True(t, v.auth.Unlocked())

	require.NoError(t, v.registry.SelectAccount(context.Background(), "eth-0"))
	secret, err = v.auth.RevealPrivateKey([]byte("pw"))
	require.NoError(t, err)
	_, err = ethereum.ImportPrivateKey(secret)
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	v := signedUp(t)
	ctx := context.Background()

	_, err := v.registry.CreateAccount(ctx, model.BlockchainSOL)
	require.NoError(t, err)

	require.ErrorIs(t, v.auth.ChangePassword(ctx, []byte("bad"), []byte("new")), crypto.ErrAuthentication)
	require.NoError(t, v.auth.ChangePassword(ctx, []byte("pw"), []byte("new")))

	v.auth.Lock()
	_, err = v.auth.Unlock(ctx, []byte("pw"))
	require.ErrorIs(t, err, crypto.ErrAuthentication)

	w, err := v.auth.Unlock(ctx, []byte("new"))
	require.NoError(t, err)
	require.Equal(t, []string{"sol-0", "eth-0", "sol-1"}, ids(w))

	phrase, err := v.auth.RevealSeedPhrase([]byte("new"))
	require.NoError(t, err)
	require.Equal(t, testMnemonic, phrase)
}

// batchFailKV accepts single writes and rejects batched ones
type batchFailKV struct {
	*store.MemoryProvider
}

func (batchFailKV) SetMany(map[string][]byte) error {
	return errors.New("write seed_phrase: disk full")
}

func TestChangePasswordFailureKeepsOldPassword(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	kv := batchFailKV{store.NewMemoryProvider()}
	session := crypto.NewSession()
	ss := crypto.NewSecureStore(kv, session)
	registry := NewRegistry(ss, logger)
	auth := NewAuth(ss, session, registry, logger)

	_, err := auth.Signup(ctx, "alice", []byte("pw"), testMnemonic)
	require.NoError(t, err)

	require.Error(t, auth.ChangePassword(ctx, []byte("pw"), []byte("new")))

	// the live session still opens everything
	phrase, err := auth.RevealSeedPhrase([]byte("pw"))
	require.NoError(t, err)
	require.Equal(t, testMnemonic, phrase)

	auth.Lock()
	_, err = auth.Unlock(ctx, []byte("new"))
	require.ErrorIs(t, err, crypto.ErrAuthentication)

	w, err := auth.Unlock(ctx, []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, []string{"sol-0", "eth-0"}, ids(w))

	phrase, err = auth.RevealSeedPhrase([]byte("pw"))
	require.NoError(t, err)
	require.Equal(t, testMnemonic, phrase)
}

func TestReset(t *testing.T) {
	v := signedUp(t)

	require.NoError(t, v.auth.Reset())
	require.False(t, v.auth.Unlocked())

	screen, err := v.auth.StartScreen()
	require.NoError(t, err)
	require.Equal(t, model.ScreenOnboarding, screen)

	for _, key := range []string{KeyUser, KeyWallet, KeySeedPhrase, KeyAuthenticated} {
		raw, err := v.kv.Get(key)
		require.NoError(t, err)
		require.Nil(t, raw, key)
	}
}

func TestStartScreenOnboarding(t *testing.T) {
	screen, err := newTestVault(t).auth.StartScreen()
	require.NoError(t, err)
	require.Equal(t, model.ScreenOnboarding, screen)
}

func TestCreateWalletWithoutSeed(t *testing.T) {
	v := newTestVault(t)
	v.session.Set(make([]byte, 32))

	_, err := v.registry.CreateWallet(context.Background())
	require.ErrorIs(t, err, ErrNoSeedPhrase)
}
