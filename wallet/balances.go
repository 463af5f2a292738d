package wallet

import (
	"context"
	"strconv"
	"sync"

	"github.com/AlexZinkM/cryptovault/internal/logx"
	"github.com/AlexZinkM/cryptovault/internal/metrics"
	"github.com/AlexZinkM/cryptovault/internal/model"

	"go.uber.org/zap"
)

// ChainBalances reads display-unit balances of an address.
// Satisfied by *solana.Client and *ethereum.Client.
type ChainBalances interface {
	Balances(ctx context.Context, address string) (map[string]string, error)
}

// PriceSource returns USD prices; on feed failure it returns usable
// prices together with a *model.PriceFetchError. Satisfied by *prices.Cache.
type PriceSource interface {
	Prices(ctx context.Context) (model.PriceMap, error)
}

// BalanceService reads balances of accounts and values them in USD.
// Network failures degrade to the last known balances.
type BalanceService struct {
	chains map[model.Blockchain]ChainBalances
	prices PriceSource
	logger *zap.Logger

	mu   sync.Mutex
	last map[string]model.Balances // by account id
}

// NewBalanceService creates a BalanceService
func NewBalanceService(chains map[model.Blockchain]ChainBalances, prices PriceSource, logger *zap.Logger) *BalanceService {
	return &BalanceService{
		chains: chains,
		prices: prices,
		logger: logx.OrNop(logger).Named("balances"),
		last:   make(map[string]model.Balances),
	}
}

// Refresh returns the current balances of acc. It never fails on network
// errors: the last known balances (or zeros) are returned with Stale set.
func (s *BalanceService) Refresh(ctx context.Context, acc model.Account) model.Balances {
	chain := acc.Blockchain()

	prices, err := s.prices.Prices(ctx)
	pricesStale := err != nil
	if err != nil {
		metrics.IncPriceFetchFailure()
		s.logger.Warn("prices unavailable", zap.Error(err))
	}

	src, ok := s.chains[chain]
	if !ok {
		s.logger.Error("no balance source for chain", zap.String("chain", string(chain)))
		return s.stale(acc, prices)
	}

	native, err := src.Balances(ctx, acc.Address())
	if err != nil {
		metrics.IncStaleBalance(string(chain))
		s.logger.Warn("balance refresh failed, serving last known",
			zap.String("account", acc.ID), zap.Error(err))
		return s.stale(acc, prices)
	}

	b := model.Balances{
		AccountID: acc.ID,
		Address:   acc.Address(),
		Tokens:    valued(native, prices),
		Stale:     pricesStale,
	}

	s.mu.Lock()
	s.last[acc.ID] = b
	s.mu.Unlock()
	return b
}

func (s *BalanceService) stale(acc model.Account, prices model.PriceMap) model.Balances {
	s.mu.Lock()
	last, ok := s.last[acc.ID]
	s.mu.Unlock()

	if !ok {
		last = model.Balances{
			AccountID: acc.ID,
			Address:   acc.Address(),
			Tokens:    valued(zeroBalances(acc.Blockchain()), prices),
		}
	}
	last.Stale = true
	return last
}

func zeroBalances(chain model.Blockchain) map[string]string {
	if chain == model.BlockchainETH {
		return map[string]string{model.TokenETH: "0"}
	}
	return map[string]string{
		model.TokenSOL:  "0",
		model.TokenUSDC: "0",
		model.TokenUSDT: "0",
		model.TokenJUP:  "0",
	}
}

// valued attaches USD values. Float is used only for display, never for amounts sent on chain.
func valued(native map[string]string, prices model.PriceMap) map[string]model.TokenBalance {
	out := make(map[string]model.TokenBalance, len(native))
	for symbol, amount := range native {
		f, _ := strconv.ParseFloat(amount, 64)
		out[symbol] = model.TokenBalance{Native: amount, USD: f * prices[symbol]}
	}
	return out
}
