// Package mnemonic generates and validates BIP-39 seed phrases
package mnemonic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// ErrInvalidMnemonic is returned for unknown words, a bad checksum or an unsupported word count
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// SeedLen is the BIP-39 binary seed length
const SeedLen = 64

var entropyBits = map[int]int{
	12: 128,
	24: 256,
}

// Generate returns a fresh mnemonic of 12 or 24 words
func Generate(wordCount int) (string, error) {
	bits, ok := entropyBits[wordCount]
	if !ok {
		return "", fmt.Errorf("unsupported word count %d: use 12 or 24", wordCount)
	}

	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	defer clear(entropy)

	m, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to build mnemonic: %w", err)
	}
	return m, nil
}

// Normalize trims, lower-cases and collapses whitespace
func Normalize(m string) string {
	return strings.Join(strings.Fields(strings.ToLower(m)), " ")
}

// Validate checks word count, wordlist membership and the checksum
func Validate(m string) error {
	m = Normalize(m)
	if _, ok := entropyBits[len(strings.Fields(m))]; !ok {
		return ErrInvalidMnemonic
	}
	if !bip39.IsMnemonicValid(m) {
		return ErrInvalidMnemonic
	}
	return nil
}

// ToSeed returns the 64-byte seed of m with an empty passphrase.
// Caller should zero the seed after use.
func ToSeed(m string) ([]byte, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}

	seed, err := bip39.NewSeedWithErrorChecking(Normalize(m), "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	return seed, nil
}
