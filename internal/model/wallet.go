package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AlexZinkM/cryptovault/internal/jsonx"
)

// Blockchain identifies the chain an account lives on
type Blockchain string

const (
	BlockchainSOL Blockchain = "SOL"
	BlockchainETH Blockchain = "ETH"
)

// Lower returns the lowercase form used as account id prefix
func (b Blockchain) Lower() string {
	return strings.ToLower(string(b))
}

// Valid reports whether b is a supported chain
func (b Blockchain) Valid() bool {
	return b == BlockchainSOL || b == BlockchainETH
}

// ParseBlockchain parses "SOL"/"ETH" case-insensitively
func ParseBlockchain(s string) (Blockchain, error) {
	b := Blockchain(strings.ToUpper(strings.TrimSpace(s)))
	if !b.Valid() {
		return "", fmt.Errorf("unsupported blockchain %q", s)
	}
	return b, nil
}

// AccountID builds the wallet-unique id of the index-th account on a chain
func AccountID(chain Blockchain, index int) string {
	return fmt.Sprintf("%s-%d", chain.Lower(), index)
}

// ChainKeys is the chain-specific key material of an account.
// Implemented only by SolanaKeys and EthereumKeys.
type ChainKeys interface {
	Blockchain() Blockchain
	// Address is the public identity shown to users
	Address() string
	// Secret is the canonical private material
	Secret() string
	isChainKeys()
}

// SolanaKeys holds an ed25519 keypair, both base58 encoded
type SolanaKeys struct {
	PublicKey string `json:"publicKey"`
	SecretKey string `json:"secretKey"` // 64-byte secret key
}

func (SolanaKeys) Blockchain() Blockchain {
	return BlockchainSOL
}

func (k SolanaKeys) Address() string {
	return k.PublicKey
}

func (k SolanaKeys) Secret() string {
	return k.SecretKey
}

func (SolanaKeys) isChainKeys() {}

// EthereumKeys holds a secp256k1 key and its checksummed address
type EthereumKeys struct {
	EthAddress string `json:"address"`
	PrivateKey string `json:"privateKey"` // 0x-prefixed 32-byte scalar
}

func (EthereumKeys) Blockchain() Blockchain {
	return BlockchainETH
}

func (k EthereumKeys) Address() string {
	return k.EthAddress
}

func (k EthereumKeys) Secret() string {
	return k.PrivateKey
}

func (EthereumKeys) isChainKeys() {}

// Account is one derived or imported account of a wallet
type Account struct {
	ID   string
	Name string
	Keys ChainKeys
}

// Blockchain returns the chain of the account keys
func (a Account) Blockchain() Blockchain {
	if a.Keys == nil {
		return ""
	}
	return a.Keys.Blockchain()
}

// Address returns the public address of the account
func (a Account) Address() string {
	if a.Keys == nil {
		return ""
	}
	return a.Keys.Address()
}

type accountJSON struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Blockchain Blockchain      `json:"blockchain"`
	Keys       json.RawMessage `json:"keys"`
}

// MarshalJSON writes the account with its chain tag
func (a Account) MarshalJSON() ([]byte, error) {
	if a.Keys == nil {
		return nil, fmt.Errorf("account %s has no keys", a.ID)
	}
	keys, err := jsonx.Marshal(a.Keys)
	if err != nil {
		return nil, err
	}
	return jsonx.Marshal(accountJSON{
		ID:         a.ID,
		Name:       a.Name,
		Blockchain: a.Keys.Blockchain(),
		Keys:       keys,
	})
}

// UnmarshalJSON restores the keys variant selected by the chain tag
func (a *Account) UnmarshalJSON(data []byte) error {
	var aux accountJSON
	if err := jsonx.Unmarshal(data, &aux); err != nil {
		return err
	}

	switch aux.Blockchain {
	case BlockchainSOL:
		var k SolanaKeys
		if err := jsonx.Unmarshal(aux.Keys, &k); err != nil {
			return fmt.Errorf("failed to decode solana keys: %w", err)
		}
		a.Keys = k
	case BlockchainETH:
		var k EthereumKeys
		if err := jsonx.Unmarshal(aux.Keys, &k); err != nil {
			return fmt.Errorf("failed to decode ethereum keys: %w", err)
		}
		a.Keys = k
	default:
		return fmt.Errorf("unsupported blockchain %q", aux.Blockchain)
	}

	a.ID = aux.ID
	a.Name = aux.Name
	return nil
}

// Wallet is the ordered account set plus the current selection
type Wallet struct {
	Accounts          []Account `json:"accounts"`
	SelectedAccountID string    `json:"selectedAccountId"`
	Version           uint64    `json:"version"`
}

// Find returns the account with the given id
func (w *Wallet) Find(id string) (Account, bool) {
	for _, acc := range w.Accounts {
		if acc.ID == id {
			return acc, true
		}
	}
	return Account{}, false
}

// Selected returns the selected account
func (w *Wallet) Selected() (Account, bool) {
	return w.Find(w.SelectedAccountID)
}

// CountOn returns how many accounts exist on a chain
func (w *Wallet) CountOn(chain Blockchain) int {
	n := 0
	for _, acc := range w.Accounts {
		if acc.Blockchain() == chain {
			n++
		}
	}
	return n
}

// Clone returns a copy whose account slice can be appended to freely
func (w *Wallet) Clone() *Wallet {
	accounts := make([]Account, len(w.Accounts), len(w.Accounts)+1)
	copy(accounts, w.Accounts)
	return &Wallet{
		Accounts:          accounts,
		SelectedAccountID: w.SelectedAccountID,
		Version:           w.Version,
	}
}

// User is the record wrapped by the password-rooted envelope
type User struct {
	Username  string `json:"username"`
	CreatedAt int64  `json:"createdAt"` // unix ms
}

// Envelope is the persisted AEAD structure.
// Salt is set only for password-rooted envelopes.
type Envelope struct {
	Salt       []byte `json:"salt,omitempty"`
	IV         []byte `json:"iv"`
	CipherText []byte `json:"cipherText"`
}
