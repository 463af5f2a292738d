// Package prices caches USD token prices from an upstream feed
package prices

import (
	"context"
	"sync"
	"time"

	"github.com/AlexZinkM/cryptovault/internal/logx"
	"github.com/AlexZinkM/cryptovault/internal/model"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Feed fetches current USD prices. Satisfied by *client.CoinGeckoClient.
type Feed interface {
	FetchUSDPrices(ctx context.Context) (model.PriceMap, error)
}

// fetchTimeout bounds one shared upstream call
const fetchTimeout = 30 * time.Second

// Symbols are the tokens every PriceMap returned by Cache carries
var Symbols = []string{model.TokenSOL, model.TokenETH, model.TokenUSDC, model.TokenUSDT, model.TokenJUP}

// Cache serves prices younger than ttl from memory and refreshes the rest
// from the feed. Concurrent refreshes share one upstream call.
type Cache struct {
	feed   Feed
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
	group  singleflight.Group

	mu        sync.RWMutex
	prices    model.PriceMap
	fetchedAt time.Time
}

// NewCache creates a Cache over feed
func NewCache(feed Feed, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{
		feed:   feed,
		ttl:    ttl,
		now:    time.Now,
		logger: logx.OrNop(logger).Named("prices"),
	}
}

// Prices returns current prices. When the feed fails the last known map
// (or zeros) is returned together with a *model.PriceFetchError.
// The shared fetch is detached from ctx, so one caller giving up does not fail the others.
func (c *Cache) Prices(ctx context.Context) (model.PriceMap, error) {
	if prices, ok := c.fresh(); ok {
		return prices, nil
	}

	ch := c.group.DoChan("prices", func() (any, error) {
		if prices, ok := c.fresh(); ok {
			return prices, nil
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		prices, err := c.feed.FetchUSDPrices(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.store(prices)
		return prices, nil
	})

	select {
	case <-ctx.Done():
		return c.last(), &model.PriceFetchError{Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			c.logger.Warn("price refresh failed, serving last known prices", zap.Error(res.Err))
			return c.last(), &model.PriceFetchError{Err: res.Err}
		}
		return copyPrices(res.Val.(model.PriceMap)), nil
	}
}

func (c *Cache) fresh() (model.PriceMap, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.prices == nil || c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return copyPrices(c.prices), true
}

func (c *Cache) store(prices model.PriceMap) {
	full := make(model.PriceMap, len(Symbols))
	for _, s := range Symbols {
		full[s] = prices[s]
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.prices = full
	c.fetchedAt = c.now()
}

func (c *Cache) last() model.PriceMap {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.prices == nil {
		zeros := make(model.PriceMap, len(Symbols))
		for _, s := range Symbols {
			zeros[s] = 0
		}
		return zeros
	}
	return copyPrices(c.prices)
}

func copyPrices(p model.PriceMap) model.PriceMap {
	out := make(model.PriceMap, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// ExchangeRates returns rates[from][to], the amount of to bought by one from.
// 1 on the diagonal and 0 where the price of to is unknown.
func ExchangeRates(prices model.PriceMap) map[string]map[string]float64 {
	rates := make(map[string]map[string]float64, len(prices))
	for from, fromPrice := range prices {
		row := make(map[string]float64, len(prices))
		for to, toPrice := range prices {
			switch {
			case from == to:
				row[to] = 1
			case toPrice == 0:
				row[to] = 0
			default:
				row[to] = fromPrice / toPrice
			}
		}
		rates[from] = row
	}
	return rates
}
