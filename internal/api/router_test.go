package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AlexZinkM/cryptovault/internal/config"
	"github.com/AlexZinkM/cryptovault/internal/crypto"
	"github.com/AlexZinkM/cryptovault/internal/handler"
	"github.com/AlexZinkM/cryptovault/internal/jsonx"
	"github.com/AlexZinkM/cryptovault/internal/model"
	"github.com/AlexZinkM/cryptovault/internal/store"
	"github.com/AlexZinkM/cryptovault/swap"
	"github.com/AlexZinkM/cryptovault/wallet"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

type fakeChain struct {
	txID      string
	sendErr   error
	sendCalls []string
}

func (f *fakeChain) Balances(context.Context, string) (map[string]string, error) {
	return map[string]string{model.TokenETH: "1.500000000000000000"}, nil
}

func (f *fakeChain) TransferNative(_ context.Context, _, to, _ string) (string, error) {
	f.sendCalls = append(f.sendCalls, to)
	return f.txID, f.sendErr
}

func (f *fakeChain) ExplorerURL(txID string) string { return "https://etherscan.io/tx/" + txID }

type fakePrices struct {
	err error
}

func (f *fakePrices) Prices(context.Context) (model.PriceMap, error) {
	return model.PriceMap{model.TokenSOL: 150, model.TokenETH: 3000, model.TokenUSDC: 1}, f.err
}

type testServer struct {
	server *httptest.Server
	chain  *fakeChain
	prices *fakePrices
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithOrigins(t, []string{"chrome-extension://vault"})
}

func newTestServerWithOrigins(t *testing.T, origins []string) *testServer {
	t.Helper()
	logger := zaptest.NewLogger(t)

	session := crypto.NewSession()
	ss := crypto.NewSecureStore(store.NewMemoryProvider(), session)
	registry := wallet.NewRegistry(ss, logger)
	auth := wallet.NewAuth(ss, session, registry, logger)

	chain := &fakeChain{txID: "0xfeed"}
	priceSource := &fakePrices{}
	balances := wallet.NewBalanceService(map[model.Blockchain]wallet.ChainBalances{model.BlockchainETH: chain}, priceSource, logger)
	payments := wallet.NewPaymentService(registry, map[model.Blockchain]wallet.Transferer{model.BlockchainETH: chain}, logger)

	router := SetupRouter(Handlers{
		Auth:   handler.NewAuthHandler(auth, logger),
		Wallet: handler.NewWalletHandler(registry, logger),
		Chain:  handler.NewChainHandler(registry, balances, priceSource, payments, swap.NewOrchestrator(nil, nil, 0, logger), logger),
	}, origins, logger)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{server: srv, chain: chain, prices: priceSource}
}

func (s *testServer) do(t *testing.T, method, path, body string, out any) int {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.server.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, jsonx.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *testServer) signup(t *testing.T) model.WalletResponse {
	t.Helper()
	var wlt model.WalletResponse
	status := s.do(t, http.MethodPost, "/auth/signup",
		`{"username":"alice","password":"pw","mnemonic":"`+testMnemonic+`"}`, &wlt)
	require.Equal(t, http.StatusCreated, status)
	return wlt
}

func TestOnboardingAndLock(t *testing.T) {
	s := newTestServer(t)

	var state model.StateResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/auth/state", "", &state))
	require.Equal(t, model.ScreenOnboarding, state.Screen)

	wlt := s.signup(t)
	require.Len(t, wlt.Accounts, 2)
	require.Equal(t, "sol-0", wlt.SelectedAccountID)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/auth/state", "", &state))
	require.Equal(t, model.ScreenHome, state.Screen)
	require.True(t, state.Unlocked)

	require.Equal(t, http.StatusNoContent, s.do(t, http.MethodPost, "/auth/lock", "", nil))

	var errResp model.ErrorResponse
	require.Equal(t, http.StatusLocked, s.do(t, http.MethodGet, "/wallet", "", &errResp))
	require.Equal(t, "locked", errResp.Code)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/auth/state", "", &state))
	require.Equal(t, model.ScreenUnlock, state.Screen)

	require.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/auth/unlock", `{"password":"nope"}`, &errResp))
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/auth/unlock", `{"password":"pw"}`, &wlt))
	require.Equal(t, "sol-0", wlt.SelectedAccountID)
}

func TestAccountEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.signup(t)

	var acc model.AccountView
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/wallet/accounts", `{"blockchain":"sol"}`, &acc))
	require.Equal(t, "sol-1", acc.ID)
	require.Equal(t, "Account 2", acc.Name)

	var errResp model.ErrorResponse
	require.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/wallet/accounts", `{"blockchain":"BTC"}`, &errResp))

	var secret model.SecretResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/wallet/private-key", `{"password":"pw"}`, &secret))

	// the selected account's own key is a duplicate
	var imported model.ImportAccountResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/wallet/import",
		`{"blockchain":"SOL","privateKey":"`+secret.Secret+`"}`, &imported))
	require.False(t, imported.Added)
	require.Equal(t, "sol-1", imported.Account.ID)

	require.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/wallet/import",
		`{"blockchain":"SOL","privateKey":"not-a-key"}`, &errResp))
	require.Equal(t, "invalid_key", errResp.Code)

	require.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/wallet/select", `{"accountId":"sol-9"}`, &errResp))

	var wlt model.WalletResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/wallet/select", `{"accountId":"eth-0"}`, &wlt))
	require.Equal(t, "eth-0", wlt.SelectedAccountID)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/wallet/rename", `{"accountId":"eth-0","name":"Savings"}`, &wlt))
	require.Equal(t, "Savings", wlt.Accounts[1].Name)

	var receive model.ReceiveResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/wallet/receive", "", &receive))
	require.Equal(t, wlt.Accounts[1].Address, receive.Address)
	require.NotEmpty(t, receive.QR)

	require.Equal(t, http.StatusMethodNotAllowed, s.do(t, http.MethodGet, "/wallet/seed-phrase", "", nil))
	require.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/wallet/seed-phrase", `{"password":"nope"}`, &errResp))
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/wallet/seed-phrase", `{"password":"pw"}`, &secret))
	require.Equal(t, testMnemonic, secret.Secret)
}

func TestChainEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.signup(t)

	var wlt model.WalletResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/wallet/select", `{"accountId":"eth-0"}`, &wlt))

	var balances model.Balances
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/balances", "", &balances))
	require.Equal(t, "eth-0", balances.AccountID)
	require.Equal(t, 4500.0, balances.Tokens[model.TokenETH].USD)

	var pay model.PayResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/send", `{"toAddress":"0xabc","amount":"0.1"}`, &pay))
	require.Equal(t, "0xfeed", pay.TxID)
	require.Equal(t, "https://etherscan.io/tx/0xfeed", pay.ExplorerURL)

	s.chain.sendErr = &model.ConfirmationTimeoutError{Chain: model.BlockchainETH, TxID: "0xfeed"}
	var timeout struct {
		TxID string `json:"txId"`
		Code string `json:"code"`
	}
	require.Equal(t, http.StatusGatewayTimeout, s.do(t, http.MethodPost, "/send", `{"toAddress":"0xabc","amount":"0.1"}`, &timeout))
	require.Equal(t, "0xfeed", timeout.TxID)
	require.Equal(t, "confirmation_timeout", timeout.Code)

	// swaps only run from a Solana account
	var errResp model.ErrorResponse
	require.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/swap",
		`{"fromToken":"SOL","toToken":"USDC","fromAmount":"1"}`, &errResp))

	s.prices.err = &model.PriceFetchError{Err: io.ErrUnexpectedEOF}
	var prices model.PricesResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/prices", "", &prices))
	require.True(t, prices.Stale)
	require.Equal(t, 20.0, prices.Rates[model.TokenETH][model.TokenSOL])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, s.server.URL+"/auth/unlock", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "chrome-extension://vault")

	resp, err := s.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "chrome-extension://vault", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example")
	resp2, err := s.server.Client().Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusForbidden, resp2.StatusCode)
	require.Empty(t, resp2.Header.Get("Access-Control-Allow-Origin"))
}

func TestForeignOriginGetsNoSecret(t *testing.T) {
	s := newTestServer(t)
	s.signup(t)

	for _, tc := range []struct {
		method, path, body string
	}{
		{http.MethodPost, "/wallet/seed-phrase", `{"password":"pw"}`},
		{http.MethodPost, "/wallet/private-key", `{"password":"pw"}`},
		{http.MethodGet, "/wallet", ""},
		{http.MethodPost, "/send", `{"toAddress":"0xabc","amount":"0.1"}`},
	} {
		t.Run(tc.path, func(t *testing.T) {
			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}
			req, err := http.NewRequest(tc.method, s.server.URL+tc.path, body)
			require.NoError(t, err)
			req.Header.Set("Origin", "https://evil.example")
			req.Header.Set("Content-Type", "application/json")

			resp, err := s.server.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			require.Equal(t, http.StatusForbidden, resp.StatusCode)
			require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
			require.NotContains(t, string(raw), "abandon")
			require.NotContains(t, string(raw), "0x")
		})
	}
	require.Empty(t, s.chain.sendCalls)
}

func TestDefaultConfigRefusesForeignOrigin(t *testing.T) {
	c, err := config.Load()
	require.NoError(t, err)
	s := newTestServerWithOrigins(t, c.CORSOrigins)
	s.signup(t)

	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/wallet/seed-phrase", strings.NewReader(`{"password":"pw"}`))
	require.NoError(t, err)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	require.NotContains(t, string(raw), testMnemonic)
}

func TestPlainTextBodyRefused(t *testing.T) {
	s := newTestServer(t)
	s.signup(t)

	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/send", strings.NewReader(`{"toAddress":"0xabc","amount":"0.1"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/plain")

	resp, err := s.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	require.Empty(t, s.chain.sendCalls)
}

func TestSwaggerAndMetricsMounted(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.server.Client().Get(s.server.URL + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "/wallet/import")

	resp2, err := s.server.Client().Get(s.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)
}
