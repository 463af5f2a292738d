// Command rekey re-encrypts the vault under a new password without starting the daemon.
// Usage: go run ./cmd/rekey (stop vaultd first, bolt and leveldb allow one process)
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/cryptovault/internal/config"
	"github.com/AlexZinkM/cryptovault/internal/crypto"
	"github.com/AlexZinkM/cryptovault/internal/logx"
	"github.com/AlexZinkM/cryptovault/internal/store"
	"github.com/AlexZinkM/cryptovault/wallet"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()
	if cfg.StoreBackend == "memory" {
		return errors.New("nothing to re-encrypt: STORE_BACKEND is memory")
	}

	// stderr only, the daemon owns the log file
	logger, err := logx.New(logx.Options{Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer logger.Sync()

	kv, err := store.Open(cfg.StoreBackend, cfg.StorePath)
	if err != nil {
		return err
	}
	defer kv.Close()

	session := crypto.NewSession()
	defer session.Clear()
	secureStore := crypto.NewSecureStore(kv, session)
	auth := wallet.NewAuth(secureStore, session, wallet.NewRegistry(secureStore, logger), logger)

	oldPassword, err := config.PromptPassword("Current password: ")
	if err != nil {
		return err
	}
	defer clear(oldPassword)

	newPassword, err := config.PromptPassword("New password: ")
	if err != nil {
		return err
	}
	defer clear(newPassword)

	confirm, err := config.PromptPassword("Repeat new password: ")
	if err != nil {
		return err
	}
	defer clear(confirm)
	if !bytes.Equal(newPassword, confirm) {
		return errors.New("passwords do not match")
	}

	if err := auth.ChangePassword(context.Background(), oldPassword, newPassword); err != nil {
		if errors.Is(err, crypto.ErrAuthentication) {
			return errors.New("current password is wrong")
		}
		return fmt.Errorf("failed to change password: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Vault re-encrypted")
	return nil
}
