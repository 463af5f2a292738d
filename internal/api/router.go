package api

import (
	"net/http"

	_ "github.com/AlexZinkM/cryptovault/docs" // registers the swagger document
	"github.com/AlexZinkM/cryptovault/internal/handler"
	"github.com/AlexZinkM/cryptovault/internal/logx"
	"github.com/AlexZinkM/cryptovault/internal/metrics"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers served by the router
type Handlers struct {
	Auth   *handler.AuthHandler
	Wallet *handler.WalletHandler
	Chain  *handler.ChainHandler
}

// SetupRouter sets up router with handlers
func SetupRouter(h Handlers, corsOrigins []string, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)
	metrics.RegisterMetrics(mux)

	// Vault lifecycle
	mux.HandleFunc("/auth/state", h.Auth.State)
	mux.HandleFunc("/auth/signup", h.Auth.Signup)
	mux.HandleFunc("/auth/login", h.Auth.Login)
	mux.HandleFunc("/auth/unlock", h.Auth.Unlock)
	mux.HandleFunc("/auth/lock", h.Auth.Lock)
	mux.HandleFunc("/auth/logout", h.Auth.Logout)
	mux.HandleFunc("/auth/reset", h.Auth.Reset)
	mux.HandleFunc("/auth/change-password", h.Auth.ChangePassword)

	// Accounts
	mux.HandleFunc("/wallet", h.Wallet.Get)
	mux.HandleFunc("/wallet/accounts", h.Wallet.CreateAccount)
	mux.HandleFunc("/wallet/import", h.Wallet.Import)
	mux.HandleFunc("/wallet/select", h.Wallet.Select)
	mux.HandleFunc("/wallet/rename", h.Wallet.Rename)
	mux.HandleFunc("/wallet/receive", h.Wallet.Receive)
	mux.HandleFunc("/wallet/seed-phrase", h.Auth.SeedPhrase)
	mux.HandleFunc("/wallet/private-key", h.Auth.PrivateKey)

	// Network
	mux.HandleFunc("/balances", h.Chain.Balances)
	mux.HandleFunc("/prices", h.Chain.Prices)
	mux.HandleFunc("/send", h.Chain.Send)
	mux.HandleFunc("/swap", h.Chain.Swap)

	logger = logx.OrNop(logger).Named("http")
	return logRequests(logger, originGuard(corsOrigins, logger, mux))
}
