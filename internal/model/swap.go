package model

import (
	"encoding/json"
	"errors"
)

// SwapIntent is a reviewed, not yet executed token exchange
type SwapIntent struct {
	FromToken    string  `json:"fromToken"`
	ToToken      string  `json:"toToken"`
	FromAmount   string  `json:"fromAmount"`
	ToAmount     string  `json:"toAmount"`
	Rate         float64 `json:"rate"`
	FromUSDValue string  `json:"fromUsdValue"`
	ToUSDValue   string  `json:"toUsdValue"`
}

// SwapState is a step of swap execution
type SwapState string

const (
	SwapQuoted    SwapState = "QUOTED"
	SwapApproving SwapState = "APPROVING"
	SwapSubmitted SwapState = "SUBMITTED"
	SwapConfirmed SwapState = "CONFIRMED"
	SwapFailed    SwapState = "FAILED"
)

// SwapResult represents response for POST /swap
type SwapResult struct {
	State          SwapState `json:"state"`
	Signature      string    `json:"signature,omitempty"`
	InputAmount    string    `json:"inputAmount,omitempty"`
	OutputAmount   string    `json:"outputAmount,omitempty"`
	PriceImpactPct string    `json:"priceImpactPct,omitempty"`
	ExplorerURL    string    `json:"explorerUrl,omitempty"`
	Error          string    `json:"error,omitempty"`
}

// ErrNoRoute is returned when the aggregator has no route for a token pair
var ErrNoRoute = errors.New("no swap route found for this token pair")

// QuoteRequest asks the aggregator for a route. Amount is in raw units.
type QuoteRequest struct {
	InputMint   string
	OutputMint  string
	Amount      string
	SlippageBps int
}

// Quote is an aggregator route. Raw is passed back verbatim when building the transaction.
type Quote struct {
	InputMint      string          `json:"inputMint"`
	OutputMint     string          `json:"outputMint"`
	InAmount       string          `json:"inAmount"`
	OutAmount      string          `json:"outAmount"`
	PriceImpactPct string          `json:"priceImpactPct"`
	RoutePlan      json.RawMessage `json:"routePlan"`
	Raw            json.RawMessage `json:"-"`
}
