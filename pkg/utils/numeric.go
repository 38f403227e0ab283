package utils

import (
	"strconv"
	"strings"
)

// DigitsOnly drops every character that is not an ASCII digit
func DigitsOnly(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// ParseAmount normalizes user-typed rupiah text such as "Rp 1.500.000" to an
// integer. Empty, digitless or overflowing input parses to 0.
func ParseAmount(raw string) int64 {
	digits := DigitsOnly(raw)
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatRupiah renders 1500000 as "Rp 1.500.000"
func FormatRupiah(amount int64) string {
	return "Rp " + FormatThousands(amount)
}

// FormatThousands groups digits with dots, the id-ID convention
func FormatThousands(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)

	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatRate renders a percentage without trailing zeros, e.g. 2.5 -> "2,5%"
func FormatRate(rate float64) string {
	s := strconv.FormatFloat(rate, 'f', -1, 64)
	return strings.Replace(s, ".", ",", 1) + "%"
}
