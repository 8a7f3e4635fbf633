// Package pricefmt renders the pt-BR currency mask used by the gift form.
package pricefmt

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL strips every non-digit from input, reads the digits as cents and
// renders them as "R$ 1.234,56". Input with no digits yields "".
func FormatBRL(input string) string {
	var digits strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}

	cents, err := decimal.NewFromString(digits.String())
	if err != nil {
		return ""
	}
	fixed := cents.Shift(-2).StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	return "R$ " + groupThousands(intPart) + "," + frac
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
