package ethereum

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/AlexZinkM/cryptovault/internal/logx"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// Backend is the subset of the Ethereum JSON-RPC API the wallet uses.
// Satisfied by *ethclient.Client. It embeds what bind.WaitMined needs.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Options configures a Client
type Options struct {
	// RPCURL is used only to pick the explorer network
	RPCURL         string
	ConfirmTimeout time.Duration
}

// Client builds, signs, submits and waits for Ethereum transactions
type Client struct {
	backend Backend
	opts    Options
	logger  *zap.Logger
}

// NewClient creates a Client over backend
func NewClient(backend Backend, opts Options, logger *zap.Logger) *Client {
	if opts.ConfirmTimeout <= 0 {
		opts.ConfirmTimeout = 90 * time.Second
	}
	return &Client{
		backend: backend,
		opts:    opts,
		logger:  logx.OrNop(logger).Named("ethereum"),
	}
}

// ExplorerURL links a transaction hash on Etherscan
func (c *Client) ExplorerURL(txHash string) string {
	if strings.Contains(c.opts.RPCURL, "sepolia") {
		return "https://sepolia.etherscan.io/tx/" + txHash
	}
	return "https://etherscan.io/tx/" + txHash
}
