// Package swap executes a reviewed SwapIntent through an aggregator,
// signing the route transaction locally.
package swap

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlexZinkM/cryptovault/internal/common"
	"github.com/AlexZinkM/cryptovault/internal/logx"
	"github.com/AlexZinkM/cryptovault/internal/metrics"
	"github.com/AlexZinkM/cryptovault/internal/model"
	vaultsol "github.com/AlexZinkM/cryptovault/solana"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// DefaultSlippageBps is used when the orchestrator is built with a non-positive slippage
const DefaultSlippageBps = 50

// ErrUnsupportedToken is returned for a symbol without a known mint
var ErrUnsupportedToken = errors.New("unsupported token")

// Aggregator quotes routes and builds unsigned route transactions.
// Satisfied by *client.JupiterClient.
type Aggregator interface {
	Quote(ctx context.Context, req model.QuoteRequest) (*model.Quote, error)
	SwapTransaction(ctx context.Context, quote *model.Quote, userPublicKey string) ([]byte, error)
}

// Submitter sends and confirms signed transactions. Satisfied by *solana.Client.
type Submitter interface {
	Submit(ctx context.Context, tx *solana.Transaction, skipPreflight bool) (solana.Signature, error)
	Confirm(ctx context.Context, sig solana.Signature) error
	ExplorerURL(signature string) string
}

// Orchestrator runs SwapIntents: quote, build, sign, submit, confirm
type Orchestrator struct {
	aggregator  Aggregator
	submitter   Submitter
	slippageBps int
	logger      *zap.Logger
}

// NewOrchestrator creates an Orchestrator
func NewOrchestrator(aggregator Aggregator, submitter Submitter, slippageBps int, logger *zap.Logger) *Orchestrator {
	if slippageBps <= 0 {
		slippageBps = DefaultSlippageBps
	}
	return &Orchestrator{
		aggregator:  aggregator,
		submitter:   submitter,
		slippageBps: slippageBps,
		logger:      logx.OrNop(logger).Named("swap"),
	}
}

// RawAmount converts the intent amount to the aggregator amount.
// SOL amounts are scaled to lamports; every other token amount is passed
// through unchanged, callers must already give it in base units.
func RawAmount(fromToken, fromAmount string) (string, error) {
	amount := strings.TrimSpace(fromAmount)
	if fromToken == model.TokenSOL {
		lamports, err := common.SOLToLamports(amount)
		if err != nil || lamports == 0 {
			return "", model.ErrInvalidAmount
		}
		return strconv.FormatUint(lamports, 10), nil
	}

	if _, err := common.ParseUnits(amount, 0); err != nil {
		return "", model.ErrInvalidAmount
	}
	if f, err := strconv.ParseFloat(amount, 64); err != nil || f <= 0 {
		return "", model.ErrInvalidAmount
	}
	return amount, nil
}

// Execute swaps intent.FromAmount of intent.FromToken into intent.ToToken
// for the Solana account owning secret. The returned result always
// describes the last reached state; err is set when the swap did not
// reach CONFIRMED.
func (o *Orchestrator) Execute(ctx context.Context, intent model.SwapIntent, secret string) (*model.SwapResult, error) {
	result, err := o.execute(ctx, intent, secret)
	if err != nil {
		result.Error = UserMessage(err)
		if result.State != model.SwapSubmitted {
			result.State = model.SwapFailed
		}
		o.logger.Warn("swap failed",
			zap.String("state", string(result.State)),
			zap.String("from", intent.FromToken),
			zap.String("to", intent.ToToken),
			zap.Error(err))
	}
	metrics.RecordSwap(string(result.State))
	return result, err
}

func (o *Orchestrator) execute(ctx context.Context, intent model.SwapIntent, secret string) (*model.SwapResult, error) {
	result := &model.SwapResult{}

	inputMint, outputMint, err := mints(intent)
	if err != nil {
		return result, err
	}
	amount, err := RawAmount(intent.FromToken, intent.FromAmount)
	if err != nil {
		return result, err
	}

	wallet, err := vaultsol.PrivateKeyFromSecret(secret)
	if err != nil {
		return result, err
	}
	defer clear(wallet)

	quote, err := o.aggregator.Quote(ctx, model.QuoteRequest{
		InputMint:   inputMint,
		OutputMint:  outputMint,
		Amount:      amount,
		SlippageBps: o.slippageBps,
	})
	if err != nil {
		return result, err
	}
	result.State = model.SwapQuoted
	result.InputAmount = quote.InAmount
	result.OutputAmount = quote.OutAmount
	result.PriceImpactPct = quote.PriceImpactPct
	o.logger.Info("quote received",
		zap.String("in", quote.InAmount),
		zap.String("out", quote.OutAmount),
		zap.String("priceImpact", quote.PriceImpactPct))

	// only the public key leaves the process
	raw, err := o.aggregator.SwapTransaction(ctx, quote, wallet.PublicKey().String())
	if err != nil {
		return result, err
	}

	result.State = model.SwapApproving
	tx, err := signRouteTx(raw, wallet)
	if err != nil {
		return result, err
	}

	sig, err := o.submitter.Submit(ctx, tx, true)
	if err != nil {
		return result, err
	}
	result.State = model.SwapSubmitted
	result.Signature = sig.String()
	result.ExplorerURL = o.submitter.ExplorerURL(sig.String())

	if err := o.submitter.Confirm(ctx, sig); err != nil {
		if model.IsSubmissionError(err) {
			result.State = model.SwapFailed
		}
		return result, err
	}
	result.State = model.SwapConfirmed
	o.logger.Info("swap confirmed", zap.String("sig", result.Signature))
	return result, nil
}

// signRouteTx decodes an aggregator transaction and signs it with wallet
func signRouteTx(raw []byte, wallet solana.PrivateKey) (*solana.Transaction, error) {
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode swap transaction: %w", err)
	}

	owner := wallet.PublicKey()
	// placeholder signatures are replaced, Sign appends one per signer
	tx.Signatures = nil
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if owner.Equals(key) {
			return &wallet
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign swap transaction: %w", err)
	}
	return tx, nil
}

func mints(intent model.SwapIntent) (string, string, error) {
	in, ok := model.TokenMints[intent.FromToken]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedToken, intent.FromToken)
	}
	out, ok := model.TokenMints[intent.ToToken]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedToken, intent.ToToken)
	}
	if in == out {
		return "", "", fmt.Errorf("%w: cannot swap %s into itself", ErrUnsupportedToken, intent.FromToken)
	}
	return in, out, nil
}

// UserMessage maps a swap failure to the message shown to the user
func UserMessage(err error) string {
	if errors.Is(err, model.ErrNoRoute) {
		return "No swap route found for this token pair"
	}
	if model.IsConfirmationTimeoutError(err) {
		return "Transaction was not confirmed in time. Check the explorer before retrying"
	}

	switch model.ClassifyFailure(err.Error()) {
	case model.FailureInsufficientFunds:
		return "Insufficient balance for this swap"
	case model.FailureSlippage:
		return "Price slippage exceeded. Try increasing slippage tolerance"
	case model.FailureExpired:
		return "Transaction expired. Please try again"
	}
	return err.Error()
}
