// Package terbilang spells out rupiah amounts in Indonesian words, the way
// they are written on the "uang sebanyak" line of a kwitansi.
package terbilang

import (
	"strconv"
	"strings"
)

var satuan = [...]string{"", "Satu", "Dua", "Tiga", "Empat", "Lima", "Enam", "Tujuh", "Delapan", "Sembilan"}

// tiers cover the full uint64 range (10^18 is "Kuintiliun").
var tiers = [...]string{"", "Ribu", "Juta", "Miliar", "Triliun", "Kuadriliun", "Kuintiliun"}

// ToWords returns the Indonesian reading of n without a currency unit.
// The sign is ignored, so -1500 reads the same as 1500.
func ToWords(n int64) string {
	return Parse(strconv.FormatInt(n, 10))
}

// Parse reads every digit in raw as one integer and spells it out.
// Blank input yields "", input without digits or equal to zero yields "Nol",
// and digit runs too large for uint64 yield "".
func Parse(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return "Nol"
	}

	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return ""
	}
	return fromUint(n)
}

// WithUnit appends the currency unit when words is non-empty.
func WithUnit(words, unit string) string {
	if words == "" || unit == "" {
		return words
	}
	return words + " " + unit
}

func fromUint(n uint64) string {
	if n == 0 {
		return "Nol"
	}

	parts := make([]string, 0, len(tiers))
	for tier := 0; n > 0 && tier < len(tiers); tier++ {
		chunk := n % 1000
		n /= 1000
		if chunk == 0 {
			continue
		}

		var part string
		switch {
		case tier == 1 && chunk == 1:
			part = "Seribu"
		case tiers[tier] == "":
			part = chunkToWords(chunk)
		default:
			part = chunkToWords(chunk) + " " + tiers[tier]
		}
		parts = append(parts, part)
	}

	// parts were collected least significant first
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func chunkToWords(n uint64) string {
	out := make([]string, 0, 3)

	hundreds := n / 100
	rest := n % 100
	tens := rest / 10
	units := rest % 10

	switch {
	case hundreds == 1:
		out = append(out, "Seratus")
	case hundreds > 1:
		out = append(out, satuan[hundreds]+" Ratus")
	}

	switch {
	case rest == 0:
	case rest < 10:
		out = append(out, satuan[units])
	case rest == 10:
		out = append(out, "Sepuluh")
	case rest == 11:
		out = append(out, "Sebelas")
	case rest < 20:
		out = append(out, satuan[units]+" Belas")
	default:
		out = append(out, satuan[tens]+" Puluh")
		if units > 0 {
			out = append(out, satuan[units])
		}
	}

	return strings.Join(out, " ")
}
