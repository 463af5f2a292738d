package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: passwords never come from the environment, they are passed per call or prompted
type Config struct {
	Port        string   `envconfig:"PORT" default:"8080"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS"` // comma separated, e.g. chrome-extension://<id>

	StoreBackend string `envconfig:"STORE_BACKEND" default:"bolt"` // bolt, leveldb or memory
	StorePath    string `envconfig:"STORE_PATH" default:"./data/vault.db"`

	SolanaRPCURL   string `envconfig:"SOLANA_RPC_URL" default:"https://api.devnet.solana.com"`
	EthereumRPCURL string `envconfig:"ETH_RPC_URL" default:"https://rpc.sepolia.org"`
	CoinGeckoURL   string `envconfig:"COINGECKO_URL" default:"https://api.coingecko.com/api/v3"`
	JupiterURL     string `envconfig:"JUPITER_URL" default:"https://quote-api.jup.ag/v6"`

	SwapSlippageBps int           `envconfig:"SWAP_SLIPPAGE_BPS" default:"50"`
	ConfirmTimeout  time.Duration `envconfig:"CONFIRM_TIMEOUT" default:"90s"`
	PriceCacheTTL   time.Duration `envconfig:"PRICE_CACHE_TTL" default:"60s"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`

	LogFile       string `envconfig:"LOG_FILE" default:"./logs/cryptovault.log"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogMaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"50"`
	LogMaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"14"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads configuration from environment variables without touching the global instance
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values envconfig cannot check by itself
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case "bolt", "leveldb", "memory":
	default:
		return fmt.Errorf("STORE_BACKEND must be bolt, leveldb or memory, got %q", c.StoreBackend)
	}
	for _, origin := range c.CORSOrigins {
		if origin == "*" || strings.TrimSpace(origin) == "" {
			return fmt.Errorf("CORS_ORIGINS must list exact origins, got %q", origin)
		}
	}
	if c.SwapSlippageBps <= 0 || c.SwapSlippageBps > 10_000 {
		return fmt.Errorf("SWAP_SLIPPAGE_BPS must be in (0, 10000], got %d", c.SwapSlippageBps)
	}
	if c.ConfirmTimeout <= 0 {
		return errors.New("CONFIRM_TIMEOUT must be positive")
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// PromptPassword prompts the user for a password in the terminal.
// The password is read without echoing (hidden input).
// Caller must zero the returned slice after use for security.
func PromptPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	password := make([]byte, len(raw))
	copy(password, raw)
	clear(raw)
	return password, nil
}
