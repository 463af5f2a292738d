package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		decimals int
		want     uint64
		wantErr  bool
	}{
		{in: "1.5", decimals: 9, want: 1_500_000_000},
		{in: "1", decimals: 9, want: 1_000_000_000},
		{in: ".25", decimals: 2, want: 25},
		{in: " 0.024981836 ", decimals: 9, want: 24_981_836},
		{in: "0.0000000019", decimals: 9, want: 1},
		{in: "", decimals: 9, wantErr: true},
		{in: "1.2.3", decimals: 9, wantErr: true},
		{in: "-1", decimals: 9, wantErr: true},
		{in: "1e9", decimals: 9, wantErr: true},
		{in: ".", decimals: 9, wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseUnits(tc.in, tc.decimals)
		if tc.wantErr {
			require.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestFormatUnits(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0.024981836", LamportsToSOL(24_981_836))
	require.Equal(t, "1.500000000", LamportsToSOL(1_500_000_000))
	require.Equal(t, "0.000000000", LamportsToSOL(0))
}

func TestETHUnits(t *testing.T) {
	t.Parallel()

	wei, err := ETHToWei("0.01")
	require.NoError(t, err)
	require.Zero(t, big.NewInt(10_000_000_000_000_000).Cmp(wei))

	big18, ok := new(big.Int).SetString("123000000000000000000", 10)
	require.True(t, ok)
	require.Equal(t, "123.000000000000000000", WeiToETH(big18))
}
