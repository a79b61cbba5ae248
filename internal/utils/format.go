package utils

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Round rounds the exact binary value of value to the given number of
// decimal places, ties to even. 0.25 becomes 0.2 and 2.675 becomes 2.67.
func Round(value float64, places int32) float64 {
	d, err := decimal.NewFromString(strconv.FormatFloat(value, 'f', 40, 64))
	if err != nil {
		return value
	}
	return d.RoundBank(places).InexactFloat64()
}

// Inverse returns 1/value rounded to places, or 0 when value is not positive.
func Inverse(value float64, places int32) float64 {
	if value <= 0 {
		return 0
	}
	return Round(1/value, places)
}

// FormatNumber renders the shortest decimal form of value ("0.1", "12", "0.0125").
func FormatNumber(value float64) string {
	return decimal.NewFromFloat(value).String()
}

// FormatFixed renders value with exactly the given number of decimals.
func FormatFixed(value float64, decimals int32) string {
	return decimal.NewFromFloat(value).StringFixed(decimals)
}
