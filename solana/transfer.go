package solana

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/cryptovault/internal/common"
	"github.com/AlexZinkM/cryptovault/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// TransferNative sends amount SOL from the account owning secret to recipient
// and waits for confirmation. Returns the transaction signature.
func (c *Client) TransferNative(ctx context.Context, secret, recipient, amount string) (string, error) {
	toPubkey, err := solana.PublicKeyFromBase58(recipient)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidRecipient, err)
	}

	lamports, err := common.SOLToLamports(amount)
	if err != nil || lamports == 0 {
		return "", model.ErrInvalidAmount
	}

	wallet, err := PrivateKeyFromSecret(secret)
	if err != nil {
		return "", err
	}
	defer clear(wallet)
	from := wallet.PublicKey()

	recent, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return "", wrapRPC("get recent blockhash", err)
	}

	transferInstruction := system.NewTransferInstruction(
		lamports,
		from,
		toPubkey,
	).Build()

	tx, err := solana.NewTransaction(
		[]solana.Instruction{transferInstruction},
		recent.Value.Blockhash,
		solana.TransactionPayer(from),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create transaction: %w", err)
	}

	if _, err := tx.Sign(signerFor(wallet)); err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	sig, err := c.Submit(ctx, tx, false)
	if err != nil {
		return "", err
	}

	c.logger.Info("transfer submitted",
		zap.String("sig", shortSig(sig)),
		zap.String("lamports", common.LamportsToSOL(lamports)))

	if err := c.Confirm(ctx, sig); err != nil {
		return sig.String(), err
	}
	return sig.String(), nil
}

// Submit sends a signed transaction. Node rejections become *model.SubmissionError.
func (c *Client) Submit(ctx context.Context, tx *solana.Transaction, skipPreflight bool) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       skipPreflight,
		PreflightCommitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		return solana.Signature{}, model.NewSubmissionError(model.BlockchainSOL, err)
	}
	return sig, nil
}
