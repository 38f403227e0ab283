package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTanggal(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{in: time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC), want: "17 Oktober 2026"},
		{in: time.Date(2025, time.January, 1, 9, 30, 0, 0, time.UTC), want: "1 Januari 2025"},
		{in: time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), want: "31 Desember 2024"},
		{in: time.Time{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTanggal(tt.in))
		})
	}
}
