package model

// Token symbols known to the wallet
const (
	TokenSOL  = "SOL"
	TokenETH  = "ETH"
	TokenUSDC = "USDC"
	TokenUSDT = "USDT"
	TokenJUP  = "JUP"
)

// TokenMints maps SPL token symbols to their mainnet mint addresses
var TokenMints = map[string]string{
	TokenUSDC: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
	TokenUSDT: "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB",
	TokenJUP:  "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN",
	TokenSOL:  "So11111111111111111111111111111111111111112",
}

// TokenDecimals is the number of fractional digits of each token's base unit
var TokenDecimals = map[string]int{
	TokenSOL:  9,
	TokenETH:  18,
	TokenUSDC: 6,
	TokenUSDT: 6,
	TokenJUP:  6,
}

// PriceMap maps token symbol to USD price
type PriceMap map[string]float64

// TokenBalance is a balance in display units and its USD value
type TokenBalance struct {
	Native string  `json:"native"`
	USD    float64 `json:"usd"`
}

// Balances represents response for GET /balances
type Balances struct {
	AccountID string                  `json:"accountId"`
	Address   string                  `json:"address"`
	Tokens    map[string]TokenBalance `json:"tokens"`
	Stale     bool                    `json:"stale"`
}

// PricesResponse represents response for GET /prices
type PricesResponse struct {
	Prices PriceMap                      `json:"prices"`
	Rates  map[string]map[string]float64 `json:"rates"`
	Stale  bool                          `json:"stale"`
}
