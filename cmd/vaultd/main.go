// Command vaultd serves the local wallet API the browser extension talks to.
//
// @title        CryptoVault API
// @version      1.0
// @description  Local non-custodial SOL/ETH wallet daemon
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/cryptovault/ethereum"
	"github.com/AlexZinkM/cryptovault/internal/api"
	"github.com/AlexZinkM/cryptovault/internal/client"
	"github.com/AlexZinkM/cryptovault/internal/config"
	"github.com/AlexZinkM/cryptovault/internal/crypto"
	"github.com/AlexZinkM/cryptovault/internal/handler"
	"github.com/AlexZinkM/cryptovault/internal/logx"
	"github.com/AlexZinkM/cryptovault/internal/metrics"
	"github.com/AlexZinkM/cryptovault/internal/model"
	"github.com/AlexZinkM/cryptovault/internal/prices"
	"github.com/AlexZinkM/cryptovault/internal/store"
	"github.com/AlexZinkM/cryptovault/solana"
	"github.com/AlexZinkM/cryptovault/swap"
	"github.com/AlexZinkM/cryptovault/wallet"

	"go.uber.org/zap"
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

	logger, err := logx.New(logx.Options{
		File:       cfg.LogFile,
		Level:      cfg.LogLevel,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := store.Open(cfg.StoreBackend, cfg.StorePath)
	if err != nil {
		return err
	}
	defer kv.Close()

	metrics.InitMetrics()

	session := crypto.NewSession()
	secureStore := crypto.NewSecureStore(kv, session)
	registry := wallet.NewRegistry(secureStore, logger)
	auth := wallet.NewAuth(secureStore, session, registry, logger)

	sol := solana.NewClient(client.NewSolanaRPC(cfg.SolanaRPCURL), solana.Options{
		RPCURL:         cfg.SolanaRPCURL,
		ConfirmTimeout: cfg.ConfirmTimeout,
	}, logger)

	ethBackend, err := client.DialEthereum(ctx, cfg.EthereumRPCURL)
	if err != nil {
		return err
	}
	defer ethBackend.Close()
	eth := ethereum.NewClient(ethBackend, ethereum.Options{
		RPCURL:         cfg.EthereumRPCURL,
		ConfirmTimeout: cfg.ConfirmTimeout,
	}, logger)

	priceCache := prices.NewCache(client.NewCoinGeckoClient(cfg.CoinGeckoURL, cfg.HTTPTimeout), cfg.PriceCacheTTL, logger)
	balances := wallet.NewBalanceService(map[model.Blockchain]wallet.ChainBalances{
		model.BlockchainSOL: sol,
		model.BlockchainETH: eth,
	}, priceCache, logger)
	payments := wallet.NewPaymentService(registry, map[model.Blockchain]wallet.Transferer{
		model.BlockchainSOL: sol,
		model.BlockchainETH: eth,
	}, logger)
	swaps := swap.NewOrchestrator(client.NewJupiterClient(cfg.JupiterURL, cfg.HTTPTimeout), sol, cfg.SwapSlippageBps, logger)

	router := api.SetupRouter(api.Handlers{
		Auth:   handler.NewAuthHandler(auth, logger),
		Wallet: handler.NewWalletHandler(registry, logger),
		Chain:  handler.NewChainHandler(registry, balances, priceCache, payments, swaps, logger),
	}, cfg.CORSOrigins, logger)

	srv := &http.Server{
		// loopback only
		Addr:              "127.0.0.1:" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreBackend))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
	case <-ctx.Done():
	}

	// wipe the session key
	auth.Lock()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ConfirmTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	logger.Info("stopped")
	return nil
}
