package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlexZinkM/cryptovault/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// Confirm polls the signature status until the cluster reports it
// confirmed or finalized, the transaction fails on chain, or the
// confirm timeout elapses.
func (c *Client) Confirm(ctx context.Context, sig solana.Signature) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.ConfirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.opts.PollInterval)
	defer ticker.Stop()

	for {
		done, err := c.checkStatus(ctx, sig)
		if done {
			return err
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return &model.ConfirmationTimeoutError{Chain: model.BlockchainSOL, TxID: sig.String()}
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// checkStatus returns done=true once the outcome of sig is known
func (c *Client) checkStatus(ctx context.Context, sig solana.Signature) (bool, error) {
	res, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		// transient, keep polling until the deadline
		c.logger.Debug("signature status unavailable", zap.String("sig", shortSig(sig)), zap.Error(err))
		return false, nil
	}
	if res == nil || len(res.Value) == 0 || res.Value[0] == nil {
		return false, nil
	}

	status := res.Value[0]
	if status.Err != nil {
		return true, model.NewSubmissionError(model.BlockchainSOL, fmt.Errorf("transaction failed: %v", status.Err))
	}

	switch status.ConfirmationStatus {
	case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
		c.logger.Info("transaction confirmed",
			zap.String("sig", shortSig(sig)),
			zap.String("status", string(status.ConfirmationStatus)))
		return true, nil
	}
	return false, nil
}
