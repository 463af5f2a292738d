package common

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

const (
	SOLDecimals = 9  // SOL has 9 decimals (lamports)
	ETHDecimals = 18 // ETH has 18 decimals (wei)
)

// LamportsToSOL converts lamports to SOL string without float precision loss
func LamportsToSOL(lamports uint64) string {
	return FormatUnits(lamports, SOLDecimals)
}

// SOLToLamports converts SOL string to lamports without float precision loss
func SOLToLamports(sol string) (uint64, error) {
	return ParseUnits(sol, SOLDecimals)
}

// WeiToETH converts wei to ETH string
func WeiToETH(wei *big.Int) string {
	return FormatBigUnits(wei, ETHDecimals)
}

// ETHToWei converts ETH string to wei
func ETHToWei(eth string) (*big.Int, error) {
	return ParseBigUnits(eth, ETHDecimals)
}

// FormatUnits converts integer to decimal string by inserting decimal point
// Example: FormatUnits(24981836, 9) = "0.024981836"
func FormatUnits(value uint64, decimals int) string {
	return insertPoint(strconv.FormatUint(value, 10), decimals)
}

// FormatBigUnits is FormatUnits for values that do not fit uint64
func FormatBigUnits(value *big.Int, decimals int) string {
	if value == nil {
		return insertPoint("0", decimals)
	}
	return insertPoint(value.String(), decimals)
}

func insertPoint(s string, decimals int) string {
	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// ParseUnits converts decimal string to integer by removing decimal point
// Example: ParseUnits("0.024981836", 9) = 24981836
func ParseUnits(s string, decimals int) (uint64, error) {
	digits, err := shiftDecimal(s, decimals)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(digits, 10, 64)
}

// ParseBigUnits is ParseUnits without the uint64 limit
func ParseBigUnits(s string, decimals int) (*big.Int, error) {
	digits, err := shiftDecimal(s, decimals)
	if err != nil {
		return nil, err
	}
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return n, nil
}

// shiftDecimal returns the digits of s scaled by 10^decimals.
// Fractional digits beyond decimals are truncated.
func shiftDecimal(s string, decimals int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty string")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}
	if whole == "" && frac == "" {
		return "", fmt.Errorf("invalid decimal format")
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || !isDigits(frac) {
		return "", fmt.Errorf("invalid decimal format")
	}

	// Pad or truncate fractional part to exact decimals
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else if len(frac) > decimals {
		frac = frac[:decimals]
	}

	return whole + frac, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
