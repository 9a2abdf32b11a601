package pricing

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// RoundCents rounds half away from zero at the cent. The float is read through its
// shortest decimal form, so 99.995 rounds to 100.00 rather than falling foul of binary
// representation.
func RoundCents(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatAUD renders an amount as dollars with thousands separators, e.g. $1,234.50.
func FormatAUD(v float64) string {
	if !finite(v) {
		return "$0.00"
	}
	return "$" + humanize.FormatFloat("#,###.##", RoundCents(v))
}
