package terbilang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToWords(t *testing.T) {
	tcs := []struct {
		name string
		in   int64
		want string
	}{
		{name: "zero", in: 0, want: "Nol"},
		{name: "single digit", in: 7, want: "Tujuh"},
		{name: "ten", in: 10, want: "Sepuluh"},
		{name: "eleven", in: 11, want: "Sebelas"},
		{name: "twelve", in: 12, want: "Dua Belas"},
		{name: "nineteen", in: 19, want: "Sembilan Belas"},
		{name: "twenty", in: 20, want: "Dua Puluh"},
		{name: "ninety nine", in: 99, want: "Sembilan Puluh Sembilan"},
		{name: "hundred", in: 100, want: "Seratus"},
		{name: "hundred eleven", in: 111, want: "Seratus Sebelas"},
		{name: "two hundred five", in: 205, want: "Dua Ratus Lima"},
		{name: "thousand", in: 1000, want: "Seribu"},
		{name: "thousand one", in: 1001, want: "Seribu Satu"},
		{name: "eleven thousand", in: 11000, want: "Sebelas Ribu"},
		{name: "hundred thousand", in: 100000, want: "Seratus Ribu"},
		{name: "one million", in: 1000000, want: "Satu Juta"},
		{name: "one million one thousand", in: 1001000, want: "Satu Juta Seribu"},
		{name: "one million nine hundred thousand", in: 1900000, want: "Satu Juta Sembilan Ratus Ribu"},
		{name: "skips zero tiers", in: 2000000005, want: "Dua Miliar Lima"},
		{
			name: "mixed tiers",
			in:   56622221,
			want: "Lima Puluh Enam Juta Enam Ratus Dua Puluh Dua Ribu Dua Ratus Dua Puluh Satu",
		},
		{name: "trillion", in: 3000000000000, want: "Tiga Triliun"},
		{name: "quadrillion", in: 1000000000000000, want: "Satu Kuadriliun"},
		{name: "quintillion", in: 2000000000000000000, want: "Dua Kuintiliun"},
		{name: "negative reads digits", in: -1500, want: "Seribu Lima Ratus"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToWords(tc.in))
		})
	}
}

func TestToWords_TwentyOneThousandPrefix(t *testing.T) {
	assert.True(t, strings.HasPrefix(ToWords(21500), "Dua Puluh Satu Ribu"))
}

func TestParse(t *testing.T) {
	tcs := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "blank", in: "   ", want: ""},
		{name: "no digits", in: "Rp -", want: "Nol"},
		{name: "zero", in: "000", want: "Nol"},
		{name: "formatted rupiah", in: "Rp 1.250.000,-", want: "Satu Juta Dua Ratus Lima Puluh Ribu"},
		{name: "overflow", in: "99999999999999999999999", want: ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.in))
		})
	}
}

func TestWithUnit(t *testing.T) {
	assert.Equal(t, "Seribu Rupiah", WithUnit("Seribu", "Rupiah"))
	assert.Equal(t, "", WithUnit("", "Rupiah"))
	assert.Equal(t, "Seribu", WithUnit("Seribu", ""))
}
