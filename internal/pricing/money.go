package pricing

import (
	"fmt"
	"math"
)

const (
	CurrencyINR    = "INR"
	currencySymbol = "₹"
)

// Round2 rounds half away from zero to two decimals. Only used for
// presentation; stored amounts keep full precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount renders an amount for user-facing messages, e.g. "₹72.50".
func FormatAmount(v float64) string {
	return fmt.Sprintf("%s%.2f", currencySymbol, Round2(v))
}
