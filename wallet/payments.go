package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/AlexZinkM/cryptovault/internal/logx"
	"github.com/AlexZinkM/cryptovault/internal/metrics"
	"github.com/AlexZinkM/cryptovault/internal/model"

	"go.uber.org/zap"
)

// Transferer sends native coin on one chain.
// Satisfied by *solana.Client and *ethereum.Client.
type Transferer interface {
	TransferNative(ctx context.Context, secret, recipient, amount string) (string, error)
	ExplorerURL(txID string) string
}

// PaymentService sends native transfers from the selected account
type PaymentService struct {
	registry *Registry
	chains   map[model.Blockchain]Transferer
	logger   *zap.Logger

	payMu sync.Mutex // one transfer at a time keeps ETH nonces sequential
}

// NewPaymentService creates a PaymentService
func NewPaymentService(registry *Registry, chains map[model.Blockchain]Transferer, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		registry: registry,
		chains:   chains,
		logger:   logx.OrNop(logger).Named("payments"),
	}
}

// Send transfers req.Amount of the selected account's native coin to req.ToAddress.
// On a confirmation timeout the response still carries the transaction id.
func (p *PaymentService) Send(ctx context.Context, req model.PayRequest) (*model.PayResponse, error) {
	acc, err := p.registry.SelectedAccount()
	if err != nil {
		return nil, err
	}

	chain := acc.Blockchain()
	tr, ok := p.chains[chain]
	if !ok {
		return nil, fmt.Errorf("unsupported blockchain %q", chain)
	}

	p.payMu.Lock()
	defer p.payMu.Unlock()

	txID, err := tr.TransferNative(ctx, acc.Keys.Secret(), req.ToAddress, req.Amount)
	switch {
	case err == nil:
		metrics.RecordTransfer(string(chain), metrics.ResultOK)
	case model.IsConfirmationTimeoutError(err):
		metrics.RecordTransfer(string(chain), metrics.ResultTimeout)
	default:
		metrics.RecordTransfer(string(chain), metrics.ResultFailed)
	}
	if err != nil {
		p.logger.Warn("transfer failed", zap.String("account", acc.ID), zap.Error(err))
		if txID == "" {
			return nil, err
		}
		return &model.PayResponse{TxID: txID, Blockchain: string(chain), ExplorerURL: tr.ExplorerURL(txID)}, err
	}

	p.logger.Info("transfer confirmed", zap.String("account", acc.ID), zap.String("tx", txID))
	return &model.PayResponse{
		TxID:        txID,
		Blockchain:  string(chain),
		ExplorerURL: tr.ExplorerURL(txID),
	}, nil
}
