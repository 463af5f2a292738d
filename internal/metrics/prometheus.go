// Package metrics exposes vault counters to prometheus
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels
const (
	ResultOK      = "ok"
	ResultFailed  = "failed"
	ResultTimeout = "timeout"
)

type vaultPromMetrics struct {
	sessionUnlocked    prometheus.Gauge
	unlockFailures     prometheus.Counter
	transfers          *prometheus.CounterVec
	swaps              *prometheus.CounterVec
	accountsCreated    *prometheus.CounterVec
	priceFetchFailures prometheus.Counter
	staleBalances      *prometheus.CounterVec
}

func newVaultPromMetrics(reg prometheus.Registerer) *vaultPromMetrics {
	factory := promauto.With(reg)
	return &vaultPromMetrics{
		sessionUnlocked: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "cryptovault_session_unlocked",
				Help: "1 while a session key is established",
			},
		),
		unlockFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cryptovault_unlock_failures_total",
				Help: "Password checks that failed (login, unlock, reveal, change password)",
			},
		),
		transfers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptovault_transfers_total",
				Help: "Native transfers by chain and result",
			},
			[]string{"chain", "result"},
		),
		swaps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptovault_swaps_total",
				Help: "Swap executions by final state",
			},
			[]string{"state"},
		),
		accountsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptovault_accounts_added_total",
				Help: "Accounts derived or imported",
			},
			[]string{"chain", "origin"},
		),
		priceFetchFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cryptovault_price_fetch_failures_total",
				Help: "Price feed refreshes that fell back to cached prices",
			},
		),
		staleBalances: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptovault_stale_balances_total",
				Help: "Balance refreshes that served last known balances",
			},
			[]string{"chain"},
		),
	}
}

var (
	vaultMetrics *vaultPromMetrics
	initOnce     sync.Once
)

// InitMetrics registers the vault metrics with the default registry.
// Record functions are no-ops until it is called.
func InitMetrics() {
	initOnce.Do(func() {
		vaultMetrics = newVaultPromMetrics(prometheus.DefaultRegisterer)
	})
}

// RegisterMetrics serves the default registry on /metrics
func RegisterMetrics(mux *http.ServeMux) {
	mux.Handle("/metrics", promhttp.Handler())
}

func SetSessionUnlocked(unlocked bool) {
	if vaultMetrics == nil {
		return
	}
	if unlocked {
		vaultMetrics.sessionUnlocked.Set(1)
	} else {
		vaultMetrics.sessionUnlocked.Set(0)
	}
}

func IncUnlockFailure() {
	if vaultMetrics == nil {
		return
	}
	vaultMetrics.unlockFailures.Inc()
}

func RecordTransfer(chain, result string) {
	if vaultMetrics == nil {
		return
	}
	vaultMetrics.transfers.WithLabelValues(chain, result).Inc()
}

func RecordSwap(state string) {
	if vaultMetrics == nil {
		return
	}
	vaultMetrics.swaps.WithLabelValues(state).Inc()
}

// RecordAccountAdded counts an account; origin is "derived" or "imported"
func RecordAccountAdded(chain, origin string) {
	if vaultMetrics == nil {
		return
	}
	vaultMetrics.accountsCreated.WithLabelValues(chain, origin).Inc()
}

func IncPriceFetchFailure() {
	if vaultMetrics == nil {
		return
	}
	vaultMetrics.priceFetchFailures.Inc()
}

func IncStaleBalance(chain string) {
	if vaultMetrics == nil {
		return
	}
	vaultMetrics.staleBalances.WithLabelValues(chain).Inc()
}
