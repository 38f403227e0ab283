package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tcs := []struct {
		in   string
		want int64
	}{
		{in: "", want: 0},
		{in: "abc", want: 0},
		{in: "1500000", want: 1500000},
		{in: "Rp 1.500.000", want: 1500000},
		{in: "1,500,000.-", want: 1500000},
		{in: "-250", want: 250},
		{in: "99999999999999999999", want: 0},
	}

	for _, tc := range tcs {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseAmount(tc.in))
		})
	}
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 0", FormatRupiah(0))
	assert.Equal(t, "Rp 999", FormatRupiah(999))
	assert.Equal(t, "Rp 1.000", FormatRupiah(1000))
	assert.Equal(t, "Rp 1.900.000", FormatRupiah(1900000))
	assert.Equal(t, "-12.345", FormatThousands(-12345))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "5%", FormatRate(5))
	assert.Equal(t, "2,5%", FormatRate(2.5))
	assert.Equal(t, "0%", FormatRate(0))
}
