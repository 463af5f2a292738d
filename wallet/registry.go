// Package wallet manages the account set, the auth lifecycle and the
// operations that spend from the selected account.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/AlexZinkM/cryptovault/ethereum"
	"github.com/AlexZinkM/cryptovault/internal/crypto"
	"github.com/AlexZinkM/cryptovault/internal/logx"
	"github.com/AlexZinkM/cryptovault/internal/metrics"
	"github.com/AlexZinkM/cryptovault/internal/mnemonic"
	"github.com/AlexZinkM/cryptovault/internal/model"
	"github.com/AlexZinkM/cryptovault/solana"

	"go.uber.org/zap"
)

// Persisted keys
const (
	KeyUser          = "user"
	KeyWallet        = "wallet"
	KeySeedPhrase    = "seed_phrase"
	KeyAuthenticated = "authenticated"
)

var (
	// ErrUnknownAccount is returned when no account has the requested id
	ErrUnknownAccount = errors.New("unknown account")
	// ErrNoWallet is returned when no wallet is loaded (vault locked or never created)
	ErrNoWallet = errors.New("wallet not loaded")
	// ErrNoSeedPhrase is returned when deriving without a persisted mnemonic
	ErrNoSeedPhrase = errors.New("no seed phrase stored")
	// ErrInvalidName is returned when renaming to an empty name
	ErrInvalidName = errors.New("account name cannot be empty")

	errConcurrentUpdate = errors.New("wallet changed during update")
)

// Registry owns the in-memory Wallet and persists every mutation through the SecureStore
type Registry struct {
	store  *crypto.SecureStore
	logger *zap.Logger

	writeMu sync.Mutex // serializes mutations

	mu     sync.RWMutex
	wallet *model.Wallet
}

// NewRegistry creates an empty registry; call Load or CreateWallet before use
func NewRegistry(store *crypto.SecureStore, logger *zap.Logger) *Registry {
	return &Registry{
		store:  store,
		logger: logx.OrNop(logger).Named("registry"),
	}
}

// accountName is the default display name of the index-th account on a chain
func accountName(index int) string {
	return fmt.Sprintf("Account %d", index+1)
}

// CreateWallet derives sol-0 and eth-0 from the persisted mnemonic,
// selects sol-0 and persists the new wallet.
func (r *Registry) CreateWallet(ctx context.Context) (*model.Wallet, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sol, err := r.derive(model.BlockchainSOL, 0)
	if err != nil {
		return nil, err
	}
	eth, err := r.derive(model.BlockchainETH, 0)
	if err != nil {
		return nil, err
	}

	next := &model.Wallet{
		Accounts:          []model.Account{sol, eth},
		SelectedAccountID: sol.ID,
	}
	if err := r.commit(nil, next); err != nil {
		return nil, err
	}

	metrics.RecordAccountAdded(string(model.BlockchainSOL), "derived")
	metrics.RecordAccountAdded(string(model.BlockchainETH), "derived")
	r.logger.Info("wallet created", zap.Int("accounts", len(next.Accounts)))
	return next.Clone(), nil
}

// CreateAccount derives the next account on chain, appends and selects it
func (r *Registry) CreateAccount(ctx context.Context, chain model.Blockchain) (model.Account, error) {
	if !chain.Valid() {
		return model.Account{}, fmt.Errorf("unsupported blockchain %q", chain)
	}

	var created model.Account
	err := r.mutate(ctx, func(w *model.Wallet) error {
		acc, err := r.derive(chain, w.CountOn(chain))
		if err != nil {
			return err
		}
		w.Accounts = append(w.Accounts, acc)
		w.SelectedAccountID = acc.ID
		created = acc
		return nil
	})
	if err != nil {
		return model.Account{}, err
	}

	metrics.RecordAccountAdded(string(chain), "derived")
	r.logger.Info("account created", zap.String("id", created.ID))
	return created, nil
}

// SelectAccount makes id the selected account. Unknown ids fail with ErrUnknownAccount.
func (r *Registry) SelectAccount(ctx context.Context, id string) error {
	return r.mutate(ctx, func(w *model.Wallet) error {
		if _, ok := w.Find(id); !ok {
			return ErrUnknownAccount
		}
		w.SelectedAccountID = id
		return nil
	})
}

// ImportAccount adds an account from a raw private key and selects it.
// Importing a key already held on the same chain changes nothing and
// returns the existing account with added=false.
func (r *Registry) ImportAccount(ctx context.Context, chain model.Blockchain, raw string) (model.Account, bool, error) {
	keys, err := parseKey(chain, raw)
	if err != nil {
		return model.Account{}, false, err
	}

	var (
		result model.Account
		added  bool
	)
	err = r.mutate(ctx, func(w *model.Wallet) error {
		for _, acc := range w.Accounts {
			if acc.Blockchain() == chain && acc.Keys.Secret() == keys.Secret() {
				result = acc
				return errNoChange
			}
		}

		index := w.CountOn(chain)
		result = model.Account{
			ID:   model.AccountID(chain, index),
			Name: accountName(index),
			Keys: keys,
		}
		w.Accounts = append(w.Accounts, result)
		w.SelectedAccountID = result.ID
		added = true
		return nil
	})
	if err != nil {
		return model.Account{}, false, err
	}

	if added {
		metrics.RecordAccountAdded(string(chain), "imported")
		r.logger.Info("account imported", zap.String("id", result.ID))
	} else {
		r.logger.Info("import skipped, key already present", zap.String("id", result.ID))
	}
	return result, added, nil
}

// RenameAccount changes the display name of an account
func (r *Registry) RenameAccount(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	return r.mutate(ctx, func(w *model.Wallet) error {
		for i := range w.Accounts {
			if w.Accounts[i].ID == id {
				w.Accounts[i].Name = name
				return nil
			}
		}
		return ErrUnknownAccount
	})
}

// Rekey hands the loaded wallet to write while mutations are held off,
// so write can persist it under a new key without racing a mutation
func (r *Registry) Rekey(ctx context.Context, write func(w *model.Wallet) error) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	w := r.wallet
	r.mu.RUnlock()
	if w == nil {
		return ErrNoWallet
	}
	return write(w.Clone())
}

// Load reads the persisted wallet into memory
func (r *Registry) Load(ctx context.Context) (*model.Wallet, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var w model.Wallet
	found, err := r.store.SecureGet(KeyWallet, &w)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	if !found {
		return nil, ErrNoWallet
	}

	r.mu.Lock()
	r.wallet = &w
	r.mu.Unlock()
	return w.Clone(), nil
}

// Forget drops the in-memory wallet
func (r *Registry) Forget() {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	r.wallet = nil
	r.mu.Unlock()
}

// Wallet returns a copy of the loaded wallet
func (r *Registry) Wallet() (*model.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.wallet == nil {
		return nil, ErrNoWallet
	}
	return r.wallet.Clone(), nil
}

// SelectedAccount returns the selected account of the loaded wallet
func (r *Registry) SelectedAccount() (model.Account, error) {
	w, err := r.Wallet()
	if err != nil {
		return model.Account{}, err
	}
	acc, ok := w.Selected()
	if !ok {
		return model.Account{}, ErrUnknownAccount
	}
	return acc, nil
}

// errNoChange aborts a mutation without persisting and without failing
var errNoChange = errors.New("no change")

// mutate applies fn to a copy of the loaded wallet, persists the copy and
// only then swaps it in
func (r *Registry) mutate(ctx context.Context, fn func(w *model.Wallet) error) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	base := r.wallet
	r.mu.RUnlock()
	if base == nil {
		return ErrNoWallet
	}

	next := base.Clone()
	if err := fn(next); err != nil {
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}
	return r.commit(base, next)
}

// commit stamps next with the following version, persists it and swaps it in.
// base is the wallet next was built from, nil for a new wallet.
func (r *Registry) commit(base, next *model.Wallet) error {
	if base != nil {
		next.Version = base.Version + 1
	} else {
		next.Version = 1
	}

	if err := r.store.SecureSet(KeyWallet, next); err != nil {
		return fmt.Errorf("failed to persist wallet: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if base != nil && (r.wallet == nil || r.wallet.Version != base.Version) {
		return errConcurrentUpdate
	}
	r.wallet = next.Clone()
	return nil
}

// derive builds the index-th account on chain from the persisted mnemonic
func (r *Registry) derive(chain model.Blockchain, index int) (model.Account, error) {
	var phrase string
	found, err := r.store.SecureGet(KeySeedPhrase, &phrase)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to read seed phrase: %w", err)
	}
	if !found {
		return model.Account{}, ErrNoSeedPhrase
	}

	seed, err := mnemonic.ToSeed(phrase)
	if err != nil {
		return model.Account{}, err
	}
	defer clear(seed)

	var keys model.ChainKeys
	switch chain {
	case model.BlockchainSOL:
		keys, err = solana.DeriveAccount(seed, index)
	case model.BlockchainETH:
		keys, err = ethereum.DeriveAccount(seed, index)
	default:
		return model.Account{}, fmt.Errorf("unsupported blockchain %q", chain)
	}
	if err != nil {
		return model.Account{}, err
	}

	return model.Account{
		ID:   model.AccountID(chain, index),
		Name: accountName(index),
		Keys: keys,
	}, nil
}

func parseKey(chain model.Blockchain, raw string) (model.ChainKeys, error) {
	switch chain {
	case model.BlockchainSOL:
		return solana.ImportPrivateKey(raw)
	case model.BlockchainETH:
		return ethereum.ImportPrivateKey(raw)
	}
	return nil, fmt.Errorf("unsupported blockchain %q", chain)
}
