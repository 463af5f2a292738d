package handler

import (
	"net/http"

	"github.com/AlexZinkM/cryptovault/internal/logx"
	"github.com/AlexZinkM/cryptovault/internal/model"
	"github.com/AlexZinkM/cryptovault/internal/prices"
	"github.com/AlexZinkM/cryptovault/swap"
	"github.com/AlexZinkM/cryptovault/wallet"

	"go.uber.org/zap"
)

// ChainHandler exposes the network-facing operations of the selected account
type ChainHandler struct {
	registry *wallet.Registry
	balances *wallet.BalanceService
	prices   wallet.PriceSource
	payments *wallet.PaymentService
	swaps    *swap.Orchestrator
	logger   *zap.Logger
}

// NewChainHandler creates a ChainHandler
func NewChainHandler(
	registry *wallet.Registry,
	balances *wallet.BalanceService,
	priceSource wallet.PriceSource,
	payments *wallet.PaymentService,
	swaps *swap.Orchestrator,
	logger *zap.Logger,
) *ChainHandler {
	return &ChainHandler{
		registry: registry,
		balances: balances,
		prices:   priceSource,
		payments: payments,
		swaps:    swaps,
		logger:   logx.OrNop(logger).Named("http.chain"),
	}
}

// Balances handles GET /balances
// @Summary      Selected account balances
// @Description  Native and token balances with USD values. stale=true when the node could not be reached.
// @Tags         chain
// @Produce      json
// @Success      200  {object}  model.Balances
// @Failure      423  {object}  model.ErrorResponse
// @Router       /balances [get]
func (h *ChainHandler) Balances(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	acc, err := h.registry.SelectedAccount()
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, h.balances.Refresh(r.Context(), acc))
}

// Prices handles GET /prices
// @Summary      USD prices
// @Description  Cached USD prices and the exchange-rate matrix. stale=true when the feed failed.
// @Tags         chain
// @Produce      json
// @Success      200  {object}  model.PricesResponse
// @Router       /prices [get]
func (h *ChainHandler) Prices(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	p, err := h.prices.Prices(r.Context())
	if err != nil && !model.IsPriceFetchError(err) {
		fail(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.PricesResponse{
		Prices: p,
		Rates:  prices.ExchangeRates(p),
		Stale:  err != nil,
	})
}

type payErrorResponse struct {
	*model.PayResponse
	model.ErrorResponse
}

// Send handles POST /send
// @Summary      Send native coin
// @Description  Sends SOL or ETH from the selected account and waits for confirmation
// @Tags         chain
// @Accept       json
// @Produce      json
// @Param        request  body      model.PayRequest  true  "Recipient and decimal amount"
// @Success      200      {object}  model.PayResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      422      {object}  model.ErrorResponse
// @Failure      504      {object}  payErrorResponse
// @Router       /send [post]
func (h *ChainHandler) Send(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.PayRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.payments.Send(r.Context(), req)
	if err != nil {
		if resp == nil {
			fail(w, h.logger, err)
			return
		}
		// sent but unconfirmed: the client still needs the tx id
		status, code := errorStatus(err)
		writeJSON(w, status, payErrorResponse{
			PayResponse:   resp,
			ErrorResponse: model.ErrorResponse{Error: err.Error(), Code: code},
		})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Swap handles POST /swap
// @Summary      Execute swap
// @Description  Quotes the reviewed intent on Jupiter, signs the route transaction locally and submits it. SOL amounts are decimal, other tokens are given in base units.
// @Tags         chain
// @Accept       json
// @Produce      json
// @Param        request  body      model.SwapIntent  true  "Reviewed swap"
// @Success      200      {object}  model.SwapResult
// @Failure      400      {object}  model.ErrorResponse
// @Failure      422      {object}  model.SwapResult
// @Failure      504      {object}  model.SwapResult
// @Router       /swap [post]
func (h *ChainHandler) Swap(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var intent model.SwapIntent
	if !decodeBody(w, r, &intent) {
		return
	}

	acc, err := h.registry.SelectedAccount()
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	if acc.Blockchain() != model.BlockchainSOL {
		writeError(w, http.StatusBadRequest, "invalid_request", "Swaps require a Solana account")
		return
	}

	result, err := h.swaps.Execute(r.Context(), intent, acc.Keys.Secret())
	if err != nil {
		status, _ := errorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("swap failed", zap.Error(err))
		}
		writeJSON(w, status, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
