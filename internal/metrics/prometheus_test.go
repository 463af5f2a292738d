package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordBeforeInitIsNoop(t *testing.T) {
	saved := vaultMetrics
	vaultMetrics = nil
	defer func() { vaultMetrics = saved }()

	require.NotPanics(t, func() {
		RecordTransfer("SOL", ResultOK)
		IncUnlockFailure()
		SetSessionUnlocked(true)
	})
}

func TestCounters(t *testing.T) {
	saved := vaultMetrics
	vaultMetrics = newVaultPromMetrics(prometheus.NewRegistry())
	defer func() { vaultMetrics = saved }()

	RecordTransfer("ETH", ResultOK)
	RecordTransfer("ETH", ResultOK)
	RecordTransfer("ETH", ResultTimeout)
	IncUnlockFailure()
	SetSessionUnlocked(true)

	require.Equal(t, 2.0, testutil.ToFloat64(vaultMetrics.transfers.WithLabelValues("ETH", ResultOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(vaultMetrics.transfers.WithLabelValues("ETH", ResultTimeout)))
	require.Equal(t, 1.0, testutil.ToFloat64(vaultMetrics.unlockFailures))
	require.Equal(t, 1.0, testutil.ToFloat64(vaultMetrics.sessionUnlocked))
}
