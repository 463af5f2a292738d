package solana

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlexZinkM/cryptovault/internal/common"
	"github.com/AlexZinkM/cryptovault/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// SPL tokens reported next to the native balance
var splTokens = []string{model.TokenUSDC, model.TokenUSDT, model.TokenJUP}

// Balances returns display-unit balances of SOL and the known SPL tokens
// held by owner. A token without an associated token account is 0.
func (c *Client) Balances(ctx context.Context, owner string) (map[string]string, error) {
	ownerPubkey, err := solana.PublicKeyFromBase58(owner)
	if err != nil {
		return nil, fmt.Errorf("invalid Solana address: %w", err)
	}

	native, err := c.rpc.GetBalance(ctx, ownerPubkey, rpc.CommitmentConfirmed)
	if err != nil {
		return nil, wrapRPC("get SOL balance", err)
	}

	out := map[string]string{
		model.TokenSOL: common.LamportsToSOL(native.Value),
	}

	for _, symbol := range splTokens {
		amount, err := c.tokenBalance(ctx, ownerPubkey, symbol)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s balance: %w", symbol, err)
		}
		out[symbol] = amount
	}
	return out, nil
}

func (c *Client) tokenBalance(ctx context.Context, owner solana.PublicKey, symbol string) (string, error) {
	decimals := model.TokenDecimals[symbol]

	mint, err := solana.PublicKeyFromBase58(model.TokenMints[symbol])
	if err != nil {
		return "", fmt.Errorf("invalid %s mint address: %w", symbol, err)
	}

	ataAddress, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return "", fmt.Errorf("failed to find associated token account address: %w", err)
	}

	balance, err := c.rpc.GetTokenAccountBalance(ctx, ataAddress, rpc.CommitmentConfirmed)
	if err != nil {
		if isATANotFoundError(err) {
			return common.FormatUnits(0, decimals), nil
		}
		return "", wrapRPC("get token account balance", err)
	}
	if balance == nil || balance.Value == nil {
		return common.FormatUnits(0, decimals), nil
	}

	amount, err := strconv.ParseUint(balance.Value.Amount, 10, 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s balance amount: %w", symbol, err)
	}
	return common.FormatUnits(amount, int(balance.Value.Decimals)), nil
}

// isATANotFoundError checks if error indicates that token account doesn't exist
func isATANotFoundError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "could not find account") ||
		strings.Contains(errStr, "not found")
}
