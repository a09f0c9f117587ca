package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoundWhole rounds half away from zero to an integer amount.
func RoundWhole(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(0).Float64()
	return f
}

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatBaht renders an amount with thousand separators and two decimals,
// e.g. 12,345.50.
func FormatBaht(amount float64) string {
	s := decimal.NewFromFloat(amount).StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	return sign + formatThousand(whole) + "." + frac
}

func formatThousand(digits string) string {
	var out strings.Builder
	for i, c := range digits {
		if i != 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
