package solana

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AlexZinkM/cryptovault/internal/logx"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// RPC is the subset of the Solana JSON-RPC API the wallet uses.
// Satisfied by *rpc.Client.
type RPC interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
	GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error)
}

// Options configures a Client
type Options struct {
	// RPCURL is used only to pick the explorer cluster
	RPCURL         string
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
}

// Client builds, signs, submits and confirms Solana transactions
type Client struct {
	rpc    RPC
	opts   Options
	logger *zap.Logger
}

// NewClient creates a Client over rpcClient
func NewClient(rpcClient RPC, opts Options, logger *zap.Logger) *Client {
	if opts.ConfirmTimeout <= 0 {
		opts.ConfirmTimeout = 90 * time.Second
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 2 * time.Second
	}
	return &Client{
		rpc:    rpcClient,
		opts:   opts,
		logger: logx.OrNop(logger).Named("solana"),
	}
}

// ExplorerURL links a signature on the Solana explorer
func (c *Client) ExplorerURL(signature string) string {
	url := "https://explorer.solana.com/tx/" + signature
	if strings.Contains(c.opts.RPCURL, "devnet") {
		url += "?cluster=devnet"
	}
	return url
}

func signerFor(wallet solana.PrivateKey) func(solana.PublicKey) *solana.PrivateKey {
	return func(key solana.PublicKey) *solana.PrivateKey {
		if wallet.PublicKey().Equals(key) {
			return &wallet
		}
		return nil
	}
}

func shortSig(sig solana.Signature) string {
	s := sig.String()
	if len(s) > 12 {
		return s[:12]
	}
	return s
}

func wrapRPC(op string, err error) error {
	return fmt.Errorf("failed to %s: %w", op, err)
}
