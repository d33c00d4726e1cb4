// Package currencyutils parses user-typed amounts and formats decimals for display.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyNoise = regexp.MustCompile(`[€$£¥₹₣\s]|CHF|INR|EUR|USD|GBP|Rs\.?`)

// ParseAmount parses amounts such as "1,234.56", "1.234,56", "₹ 250" or
// "CHF 1'234.50". An empty string is zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(StandardizeAmount(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", s, err)
	}
	return amount, nil
}

// StandardizeAmount strips currency markers and thousands separators so that
// decimal.NewFromString accepts the result.
func StandardizeAmount(s string) string {
	s = currencyNoise.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "'", "")

	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		if strings.LastIndex(s, ".") < strings.LastIndex(s, ",") {
			// 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Contains(s, ","):
		parts := strings.Split(s, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	return s
}

// FormatAmount renders amount with two decimals and the symbol of currency,
// e.g. "₹120.00" or "CHF 12.50". Unknown codes are prefixed as is.
func FormatAmount(amount decimal.Decimal, currency string) string {
	formatted := amount.StringFixed(2)
	switch strings.ToUpper(currency) {
	case "":
		return formatted
	case "INR":
		return "₹" + formatted
	case "EUR":
		return "€" + formatted
	case "USD":
		return "$" + formatted
	case "GBP":
		return "£" + formatted
	case "JPY":
		return "¥" + formatted
	default:
		return strings.ToUpper(currency) + " " + formatted
	}
}

// FormatSigned prefixes debits with "-" and credits with "+".
func FormatSigned(amount decimal.Decimal, currency string, debit bool) string {
	sign := "+"
	if debit {
		sign = "-"
	}
	return sign + FormatAmount(amount.Abs(), currency)
}

// Percent returns part/total*100 rounded to one decimal, or zero when total is zero.
func Percent(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).Round(1)
}
