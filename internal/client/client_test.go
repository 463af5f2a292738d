package client

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AlexZinkM/cryptovault/internal/jsonx"
	"github.com/AlexZinkM/cryptovault/internal/model"

	"github.com/stretchr/testify/require"
)

func TestFetchUSDPrices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/simple/price", r.URL.Path)
		require.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		_, _ = io.WriteString(w, `{"solana":{"usd":150.5},"ethereum":{"usd":3000},"usd-coin":{"usd":1},"tether":{"usd":0.999}}`)
	}))
	defer srv.Close()

	prices, err := NewCoinGeckoClient(srv.URL+"/", time.Second).FetchUSDPrices(context.Background())
	require.NoError(t, err)
	require.Equal(t, model.PriceMap{
		model.TokenSOL:  150.5,
		model.TokenETH:  3000,
		model.TokenUSDC: 1,
		model.TokenUSDT: 0.999,
		model.TokenJUP:  0,
	}, prices)
}

func TestFetchUSDPricesStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewCoinGeckoClient(srv.URL, time.Second).FetchUSDPrices(context.Background())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusTooManyRequests, statusErr.Code)
	require.Equal(t, "rate limited", statusErr.Body)
}

const quoteBody = `{"inputMint":"So11111111111111111111111111111111111111112","outputMint":"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v","inAmount":"1500000000","outAmount":"225000000","priceImpactPct":"0.01","routePlan":[{"percent":100}],"contextSlot":1}`

func TestJupiterQuoteAndSwap(t *testing.T) {
	t.Parallel()

	unsigned := []byte{1, 2, 3, 4}
	var got swapRequest

	mux := http.NewServeMux()
	mux.HandleFunc("/quote", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "1500000000", q.Get("amount"))
		require.Equal(t, "50", q.Get("slippageBps"))
		require.Equal(t, "false", q.Get("onlyDirectRoutes"))
		require.Equal(t, "false", q.Get("asLegacyTransaction"))
		_, _ = io.WriteString(w, quoteBody)
	})
	mux.HandleFunc("/swap", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, jsonx.NewDecoder(r.Body).Decode(&got))
		_ = jsonx.NewEncoder(w).Encode(swapResponse{SwapTransaction: base64.StdEncoding.EncodeToString(unsigned)})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewJupiterClient(srv.URL, time.Second)
	quote, err := c.Quote(context.Background(), model.QuoteRequest{
		InputMint:   model.TokenMints[model.TokenSOL],
		OutputMint:  model.TokenMints[model.TokenUSDC],
		Amount:      "1500000000",
		SlippageBps: 50,
	})
	require.NoError(t, err)
	require.Equal(t, "225000000", quote.OutAmount)
	require.Equal(t, "0.01", quote.PriceImpactPct)

	tx, err := c.SwapTransaction(context.Background(), quote, "Pubkey111")
	require.NoError(t, err)
	require.Equal(t, unsigned, tx)

	require.Equal(t, "Pubkey111", got.UserPublicKey)
	require.True(t, got.WrapAndUnwrapSol)
	require.True(t, got.DynamicComputeUnitLimit)
	require.True(t, got.DynamicSlippage)
	require.JSONEq(t, quoteBody, string(got.QuoteResponse))
}

func TestJupiterNoRoute(t *testing.T) {
	t.Parallel()

	for name, handler := range map[string]http.HandlerFunc{
		"error status": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"Could not find any route","errorCode":"COULD_NOT_FIND_ANY_ROUTE"}`)
		},
		"empty plan": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"inAmount":"1","outAmount":"0","routePlan":[]}`)
		},
	} {
		srv := httptest.NewServer(handler)
		_, err := NewJupiterClient(srv.URL, time.Second).Quote(context.Background(), model.QuoteRequest{Amount: "1"})
		srv.Close()
		require.ErrorIs(t, err, model.ErrNoRoute, name)
	}
}
