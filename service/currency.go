package service

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	decimalSeparator   = ","
	thousandsSeparator = "."
	currencySymbol     = "R$"
)

// RoundCurrency rounds half away from zero to cents. It goes through the shortest decimal
// representation of v, so 1.005 rounds to 1.01. NaN and infinities round to 0.
func RoundCurrency(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatAmountForDisplay renders amount as pt-BR currency text without the symbol: 1234.5 -> "1.234,50".
// Negative amounts keep a leading minus sign. NaN and infinities render as "0,00".
func FormatAmountForDisplay(amount float64) string {
	if !isFinite(amount) {
		return "0" + decimalSeparator + "00"
	}
	d := decimal.NewFromFloat(amount).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	intPart, cents, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + groupThousands(intPart) + decimalSeparator + cents
}

// FormatKeystroke re-masks a currency field as the user types. Every digit pushes the previous
// ones to the left: the last two digits are cents. Non-digits are dropped, so the function is
// idempotent on its own output.
func FormatKeystroke(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := strings.TrimLeft(b.String(), "0")
	if digits == "" {
		return ""
	}
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}

	split := len(digits) - 2
	return groupThousands(digits[:split]) + decimalSeparator + digits[split:]
}

// ParseAmount converts pt-BR currency text ("R$ 1.234,56", "1234,56", "10") into a number.
func ParseAmount(text string) (float64, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimSpace(strings.TrimPrefix(s, currencySymbol))
	if s == "" {
		return 0, invalid(ErrMalformedAmount, "empty input")
	}

	s = strings.ReplaceAll(s, thousandsSeparator, "")
	s = strings.Replace(s, decimalSeparator, ".", 1)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, invalid(ErrMalformedAmount, "%q", text)
	}
	return d.InexactFloat64(), nil
}

// ParseDisplayToAmount is the lenient form used behind text fields: anything unparseable is 0.
func ParseDisplayToAmount(text string) float64 {
	v, err := ParseAmount(text)
	if err != nil {
		return 0
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func groupThousands(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousandsSeparator)
		}
		b.WriteRune(c)
	}
	return b.String()
}
