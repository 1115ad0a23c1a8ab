package market

import "github.com/shopspring/decimal"

const (
	RateDecimals = 5
	CashDecimals = 2
)

// RoundRate rounds an exchange rate to 5 decimal places.
func RoundRate(x float64) float64 {
	return decimal.NewFromFloat(x).Round(RateDecimals).InexactFloat64()
}

// RoundCash rounds a currency amount to 2 decimal places.
func RoundCash(x float64) float64 {
	return decimal.NewFromFloat(x).Round(CashDecimals).InexactFloat64()
}

// Round rounds x to places decimal places.
func Round(x float64, places int32) float64 {
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

// FormatRate renders a rate with exactly 5 decimals, e.g. "1.08470".
func FormatRate(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(RateDecimals)
}

// FormatCash renders an amount with exactly 2 decimals.
func FormatCash(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(CashDecimals)
}

// FormatSigned renders an amount with 2 decimals and an explicit sign for
// non-negative values, e.g. "+4.89".
func FormatSigned(x float64) string {
	s := FormatCash(x)
	if x >= 0 {
		return "+" + s
	}
	return s
}
