// Package ethereum derives, imports and spends Ethereum accounts
package ethereum

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/AlexZinkM/cryptovault/internal/model"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	purpose  = 44
	coinType = 60
)

// DeriveAccount derives the index-th account from a BIP-39 seed along
// m/44'/60'/index'/0'
func DeriveAccount(seed []byte, index int) (model.EthereumKeys, error) {
	if index < 0 {
		return model.EthereumKeys{}, fmt.Errorf("invalid account index %d", index)
	}

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return model.EthereumKeys{}, fmt.Errorf("failed to create master key: %w", err)
	}

	for _, n := range []uint32{purpose, coinType, uint32(index), 0} {
		key, err = key.Derive(hdkeychain.HardenedKeyStart + n)
		if err != nil {
			return model.EthereumKeys{}, fmt.Errorf("failed to derive ethereum key: %w", err)
		}
	}

	ecPriv, err := key.ECPrivKey()
	if err != nil {
		return model.EthereumKeys{}, fmt.Errorf("failed to get private key: %w", err)
	}
	raw := ecPriv.Serialize()
	defer clear(raw)

	priv, err := crypto.ToECDSA(raw)
	if err != nil {
		return model.EthereumKeys{}, fmt.Errorf("failed to convert private key: %w", err)
	}
	return keysFromECDSA(priv), nil
}

// ImportPrivateKey parses a hex 32-byte secp256k1 scalar with optional 0x prefix
func ImportPrivateKey(raw string) (model.EthereumKeys, error) {
	priv, err := PrivateKeyFromSecret(raw)
	if err != nil {
		return model.EthereumKeys{}, err
	}
	return keysFromECDSA(priv), nil
}

// PrivateKeyFromSecret restores a signer from a hex private key
func PrivateKeyFromSecret(secret string) (*ecdsa.PrivateKey, error) {
	s := strings.TrimSpace(secret)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 64 {
		return nil, model.ErrInvalidKey
	}

	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, model.ErrInvalidKey
	}
	defer clear(raw)

	priv, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, model.ErrInvalidKey
	}
	return priv, nil
}

func keysFromECDSA(priv *ecdsa.PrivateKey) model.EthereumKeys {
	return model.EthereumKeys{
		EthAddress: crypto.PubkeyToAddress(priv.PublicKey).Hex(),
		PrivateKey: hexutil.Encode(crypto.FromECDSA(priv)),
	}
}
