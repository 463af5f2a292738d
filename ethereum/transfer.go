package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/AlexZinkM/cryptovault/internal/common"
	"github.com/AlexZinkM/cryptovault/internal/model"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// gas of a plain value transfer
const transferGas = 21_000

// TransferNative sends amount ETH from the account owning secret to
// recipient and waits for the receipt. Returns the transaction hash.
func (c *Client) TransferNative(ctx context.Context, secret, recipient, amount string) (string, error) {
	if !ethcommon.IsHexAddress(recipient) {
		return "", model.ErrInvalidRecipient
	}
	to := ethcommon.HexToAddress(recipient)

	wei, err := common.ETHToWei(amount)
	if err != nil || wei.Sign() <= 0 {
		return "", model.ErrInvalidAmount
	}

	key, err := PrivateKeyFromSecret(secret)
	if err != nil {
		return "", err
	}
	defer key.D.SetUint64(0)
	from := crypto.PubkeyToAddress(key.PublicKey)

	chainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get chain id: %w", err)
	}

	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return "", fmt.Errorf("failed to get nonce: %w", err)
	}

	txData, err := c.buildTx(ctx, chainID, nonce, to, wei)
	if err != nil {
		return "", err
	}

	signed, err := types.SignTx(types.NewTx(txData), types.LatestSignerForChainID(chainID), key)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return "", model.NewSubmissionError(model.BlockchainETH, err)
	}

	hash := signed.Hash().Hex()
	c.logger.Info("transfer submitted",
		zap.String("tx", hash),
		zap.Uint64("nonce", nonce),
		zap.String("eth", common.WeiToETH(wei)))

	if err := c.WaitMined(ctx, signed); err != nil {
		return hash, err
	}
	return hash, nil
}

// buildTx picks EIP-1559 fees when the chain reports a base fee and legacy pricing otherwise
func (c *Client) buildTx(ctx context.Context, chainID *big.Int, nonce uint64, to ethcommon.Address, value *big.Int) (types.TxData, error) {
	head, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest header: %w", err)
	}

	if head.BaseFee != nil {
		tip, err := c.backend.SuggestGasTipCap(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to suggest gas tip: %w", err)
		}
		// feeCap = 2*baseFee + tip
		feeCap := new(big.Int).Add(new(big.Int).Mul(head.BaseFee, big.NewInt(2)), tip)
		return &types.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: feeCap,
			Gas:       transferGas,
			To:        &to,
			Value:     value,
		}, nil
	}

	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas price: %w", err)
	}
	return &types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      transferGas,
		To:       &to,
		Value:    value,
	}, nil
}

// WaitMined waits for the receipt of tx until it is mined or the confirm timeout elapses.
// A reverted receipt is a *model.SubmissionError.
func (c *Client) WaitMined(ctx context.Context, tx *types.Transaction) error {
	waitCtx, cancel := context.WithTimeout(ctx, c.opts.ConfirmTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, c.backend, tx)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return &model.ConfirmationTimeoutError{Chain: model.BlockchainETH, TxID: tx.Hash().Hex()}
		}
		return err
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return model.NewSubmissionError(model.BlockchainETH,
			fmt.Errorf("transaction reverted in block %v", receipt.BlockNumber))
	}
	c.logger.Info("transaction mined", zap.String("tx", tx.Hash().Hex()), zap.Stringer("block", receipt.BlockNumber))
	return nil
}
