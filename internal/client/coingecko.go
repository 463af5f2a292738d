package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AlexZinkM/cryptovault/internal/model"
)

// coinGeckoIDs maps CoinGecko coin ids to wallet token symbols
var coinGeckoIDs = map[string]string{
	"solana":                  model.TokenSOL,
	"ethereum":                model.TokenETH,
	"jupiter-exchange-solana": model.TokenJUP,
	"usd-coin":                model.TokenUSDC,
	"tether":                  model.TokenUSDT,
}

// CoinGeckoClient client for CoinGecko API
type CoinGeckoClient struct {
	baseURL string
	client  *http.Client
}

// NewCoinGeckoClient creates a new CoinGecko client
func NewCoinGeckoClient(baseURL string, timeout time.Duration) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchUSDPrices gets the USD price of every wallet token.
// Tokens missing from the answer are priced 0.
func (c *CoinGeckoClient) FetchUSDPrices(ctx context.Context) (model.PriceMap, error) {
	ids := make([]string, 0, len(coinGeckoIDs))
	for id := range coinGeckoIDs {
		ids = append(ids, id)
	}
	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", c.baseURL, strings.Join(ids, ","))

	var resp map[string]struct {
		USD float64 `json:"usd"`
	}
	if err := getJSON(ctx, c.client, url, &resp); err != nil {
		return nil, fmt.Errorf("failed to get prices: %w", err)
	}

	prices := make(model.PriceMap, len(coinGeckoIDs))
	for id, symbol := range coinGeckoIDs {
		prices[symbol] = resp[id].USD
	}
	return prices, nil
}
