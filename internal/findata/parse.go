package findata

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Num parses an Alpha Vantage numeric string. The datasets use "None" and
// "-" for missing values, so anything unparseable reads as zero.
func Num(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Round2 rounds to two decimal places using decimal arithmetic so ratio
// outputs stay stable across platforms.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Format2 renders v rounded to two decimals without trailing zeros,
// matching the source datasets' display convention ("12.34", "7.5", "0").
func Format2(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String()
}

// Percent renders v as "12.34%".
func Percent(v float64) string {
	return Format2(v) + "%"
}

// PercentYoY renders v as "12.34% YoY".
func PercentYoY(v float64) string {
	return Format2(v) + "% YoY"
}
