package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AlexZinkM/cryptovault/internal/jsonx"
	"github.com/AlexZinkM/cryptovault/internal/model"
)

// JupiterClient talks to the Jupiter swap aggregator API
type JupiterClient struct {
	baseURL string
	client  *http.Client
}

// NewJupiterClient creates a new Jupiter client
func NewJupiterClient(baseURL string, timeout time.Duration) *JupiterClient {
	return &JupiterClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Quote requests the best route for req. A pair without routes is model.ErrNoRoute.
func (c *JupiterClient) Quote(ctx context.Context, req model.QuoteRequest) (*model.Quote, error) {
	q := url.Values{}
	q.Set("inputMint", req.InputMint)
	q.Set("outputMint", req.OutputMint)
	q.Set("amount", req.Amount)
	q.Set("slippageBps", strconv.Itoa(req.SlippageBps))
	q.Set("onlyDirectRoutes", "false")
	q.Set("asLegacyTransaction", "false")

	var raw json.RawMessage
	err := getJSON(ctx, c.client, c.baseURL+"/quote?"+q.Encode(), &raw)
	if err != nil {
		if isNoRouteError(err) {
			return nil, model.ErrNoRoute
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	var quote model.Quote
	if err := jsonx.Unmarshal(raw, &quote); err != nil {
		return nil, fmt.Errorf("failed to decode quote: %w", err)
	}
	if quote.OutAmount == "" || isEmptyRoute(quote.RoutePlan) {
		return nil, model.ErrNoRoute
	}
	quote.Raw = raw
	return &quote, nil
}

type swapRequest struct {
	QuoteResponse           json.RawMessage `json:"quoteResponse"`
	UserPublicKey           string          `json:"userPublicKey"`
	WrapAndUnwrapSol        bool            `json:"wrapAndUnwrapSol"`
	DynamicComputeUnitLimit bool            `json:"dynamicComputeUnitLimit"`
	DynamicSlippage         bool            `json:"dynamicSlippage"`
}

type swapResponse struct {
	SwapTransaction string `json:"swapTransaction"`
}

// SwapTransaction builds the unsigned transaction for quote, paid by userPublicKey.
// Returns the serialized transaction bytes.
func (c *JupiterClient) SwapTransaction(ctx context.Context, quote *model.Quote, userPublicKey string) ([]byte, error) {
	if quote == nil || len(quote.Raw) == 0 {
		return nil, errors.New("quote has no raw response")
	}

	body := swapRequest{
		QuoteResponse:           quote.Raw,
		UserPublicKey:           userPublicKey,
		WrapAndUnwrapSol:        true,
		DynamicComputeUnitLimit: true,
		DynamicSlippage:         true,
	}

	var resp swapResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/swap", body, &resp); err != nil {
		return nil, fmt.Errorf("failed to build swap transaction: %w", err)
	}
	if resp.SwapTransaction == "" {
		return nil, errors.New("aggregator returned an empty swap transaction")
	}

	tx, err := base64.StdEncoding.DecodeString(resp.SwapTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to decode swap transaction: %w", err)
	}
	return tx, nil
}

func isNoRouteError(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	body := strings.ToLower(statusErr.Body)
	return strings.Contains(body, "no_routes_found") ||
		strings.Contains(body, "could not find any route") ||
		strings.Contains(body, "token_not_tradable")
}

func isEmptyRoute(plan []byte) bool {
	s := strings.TrimSpace(string(plan))
	return s == "" || s == "null" || s == "[]"
}
