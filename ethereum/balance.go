package ethereum

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/cryptovault/internal/common"
	"github.com/AlexZinkM/cryptovault/internal/model"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Balances returns the display-unit ETH balance of address
func (c *Client) Balances(ctx context.Context, address string) (map[string]string, error) {
	if !ethcommon.IsHexAddress(address) {
		return nil, model.ErrInvalidRecipient
	}

	wei, err := c.backend.BalanceAt(ctx, ethcommon.HexToAddress(address), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get ETH balance: %w", err)
	}
	return map[string]string{model.TokenETH: common.WeiToETH(wei)}, nil
}
