package ethereum

import (
	"strings"
	"testing"

	"github.com/AlexZinkM/cryptovault/internal/mnemonic"
	"github.com/AlexZinkM/cryptovault/internal/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func testKeys(t *testing.T, index int) model.EthereumKeys {
	t.Helper()
	seed, err := mnemonic.ToSeed(testMnemonic)
	require.NoError(t, err)
	k, err := DeriveAccount(seed, index)
	require.NoError(t, err)
	return k
}

// Independently computed along m/44'/60'/index'/0' with BIP-32 hardened
// derivation and EIP-55 checksums.
func TestDeriveAccountKnownAnswer(t *testing.T) {
	t.Parallel()

	k0 := testKeys(t, 0)
	require.Equal(t, "0x1cC31E180CCA3a8698fD6f13765209EC7CB9E755", k0.EthAddress)
	require.Equal(t, "0x43ff9ebfdccfa25e3921d9500db2f946d46a525fa08004af7f98976d9706cd5c", k0.PrivateKey)
	require.Equal(t, "0x3590821f4FD8B921B74d923475B7DA6c9b2aE83b", testKeys(t, 1).EthAddress)
}

func TestDeriveAccount(t *testing.T) {
	t.Parallel()

	k0 := testKeys(t, 0)
	require.Equal(t, k0, testKeys(t, 0))
	require.NotEqual(t, k0.EthAddress, testKeys(t, 1).EthAddress)

	// EIP-55 checksummed
	require.True(t, common.IsHexAddress(k0.EthAddress))
	require.Equal(t, common.HexToAddress(k0.EthAddress).Hex(), k0.EthAddress)

	require.True(t, strings.HasPrefix(k0.PrivateKey, "0x"))
	require.Len(t, k0.PrivateKey, 66)

	priv, err := PrivateKeyFromSecret(k0.PrivateKey)
	require.NoError(t, err)
	require.Equal(t, k0.EthAddress, crypto.PubkeyToAddress(priv.PublicKey).Hex())
}

func TestImportPrivateKey(t *testing.T) {
	t.Parallel()

	want := testKeys(t, 2)
	bare := strings.TrimPrefix(want.PrivateKey, "0x")

	for _, in := range []string{want.PrivateKey, bare, strings.ToUpper(bare), " " + want.PrivateKey + " "} {
		got, err := ImportPrivateKey(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}

func TestImportPrivateKeyRejects(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"",
		"0x1234",
		"zz" + strings.Repeat("0", 62),
		strings.Repeat("0", 64), // zero scalar
		strings.Repeat("f", 64), // above curve order
	} {
		_, err := ImportPrivateKey(in)
		require.ErrorIs(t, err, model.ErrInvalidKey, in)
	}
}
