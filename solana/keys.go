// Package solana derives, imports and spends Solana accounts
package solana

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/AlexZinkM/cryptovault/internal/jsonx"
	"github.com/AlexZinkM/cryptovault/internal/model"

	slip10 "github.com/anyproto/go-slip10"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// SLIP-0010 ed25519 path, all levels hardened
const derivationPath = "m/44'/501'/%d'/0'"

// DeriveAccount derives the index-th account from a BIP-39 seed
func DeriveAccount(seed []byte, index int) (model.SolanaKeys, error) {
	if index < 0 {
		return model.SolanaKeys{}, fmt.Errorf("invalid account index %d", index)
	}

	node, err := slip10.DeriveForPath(fmt.Sprintf(derivationPath, index), seed)
	if err != nil {
		return model.SolanaKeys{}, fmt.Errorf("failed to derive solana key: %w", err)
	}

	pub, priv := node.Keypair()
	defer clear(priv)

	return model.SolanaKeys{
		PublicKey: base58.Encode(pub),
		SecretKey: base58.Encode(priv),
	}, nil
}

// ImportPrivateKey parses a 64-byte ed25519 secret given as a JSON byte
// array, base58 or hex. The first encoding that yields a consistent
// keypair wins.
func ImportPrivateKey(raw string) (model.SolanaKeys, error) {
	raw = strings.TrimSpace(raw)

	for _, decode := range []func(string) ([]byte, bool){decodeJSONArray, decodeBase58, decodeHex} {
		secret, ok := decode(raw)
		if !ok {
			continue
		}
		keys, ok := keysFromSecret(secret)
		clear(secret)
		if ok {
			return keys, nil
		}
	}
	return model.SolanaKeys{}, model.ErrInvalidKey
}

// PrivateKeyFromSecret restores a signer from the stored base58 secret
func PrivateKeyFromSecret(secret string) (solana.PrivateKey, error) {
	raw, err := base58.Decode(secret)
	if err != nil || !consistent(raw) {
		return nil, model.ErrInvalidKey
	}
	return solana.PrivateKey(raw), nil
}

// IsValidAddress validates a Solana address
func IsValidAddress(address string) bool {
	_, err := solana.PublicKeyFromBase58(address)
	return err == nil
}

func keysFromSecret(secret []byte) (model.SolanaKeys, bool) {
	if !consistent(secret) {
		return model.SolanaKeys{}, false
	}
	return model.SolanaKeys{
		PublicKey: base58.Encode(secret[32:]),
		SecretKey: base58.Encode(secret),
	}, true
}

// consistent reports whether secret is seed||pubkey of one ed25519 key
func consistent(secret []byte) bool {
	if len(secret) != ed25519.PrivateKeySize {
		return false
	}
	derived := ed25519.NewKeyFromSeed(secret[:ed25519.SeedSize])
	defer clear(derived)
	return ed25519.PublicKey(derived[ed25519.SeedSize:]).Equal(ed25519.PublicKey(secret[ed25519.SeedSize:]))
}

func decodeJSONArray(raw string) ([]byte, bool) {
	if !strings.HasPrefix(raw, "[") {
		return nil, false
	}
	var ints []int
	if err := jsonx.Unmarshal([]byte(raw), &ints); err != nil {
		return nil, false
	}
	out := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, false
		}
		out[i] = byte(v)
	}
	return out, true
}

func decodeBase58(raw string) ([]byte, bool) {
	out, err := base58.Decode(raw)
	if err != nil {
		return nil, false
	}
	return out, true
}

func decodeHex(raw string) ([]byte, bool) {
	out, err := hex.DecodeString(strings.TrimPrefix(raw, "0x"))
	if err != nil {
		return nil, false
	}
	return out, true
}
