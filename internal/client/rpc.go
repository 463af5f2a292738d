package client

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/gagliardetto/solana-go/rpc"
)

// NewSolanaRPC creates a Solana JSON-RPC client
func NewSolanaRPC(rpcURL string) *rpc.Client {
	return rpc.New(rpcURL)
}

// DialEthereum connects to an Ethereum JSON-RPC endpoint
func DialEthereum(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	c, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial ethereum rpc: %w", err)
	}
	return c, nil
}
