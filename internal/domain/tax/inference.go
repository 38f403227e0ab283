package tax

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/sangkips/kwitansi-api/internal/domain/enum"
)

// Stored is what a persisted record holds for one category.
// Records written before rates were tracked carry only Amount.
type Stored struct {
	Rate   *float64
	Amount *int64
}

// ResolveRate reconstructs the rate for an edit form.
// A stored rate wins; otherwise the rate is inferred from the stored amount
// as round(amount/base*10000)/100, which rounds in basis points first.
func ResolveRate(storedRate *float64, storedAmount *int64, originalBase int64) float64 {
	if storedRate != nil && !math.IsNaN(*storedRate) && !math.IsInf(*storedRate, 0) {
		return *storedRate
	}
	if originalBase <= 0 {
		return 0
	}

	var amount int64
	if storedAmount != nil {
		amount = NormalizeAmount(*storedAmount)
	}

	return decimal.NewFromInt(amount).
		Div(decimal.NewFromInt(originalBase)).
		Mul(basisPoints).
		Round(0).
		Div(hundred).
		InexactFloat64()
}

// ResolveRates runs ResolveRate once for each of categories.
// Categories missing from stored resolve to 0.
func ResolveRates(stored map[enum.TaxCategory]Stored, categories []enum.TaxCategory, originalBase int64) Rates {
	rates := make(Rates, len(categories))
	for _, c := range categories {
		s := stored[c]
		rates[c] = ResolveRate(s.Rate, s.Amount, originalBase)
	}
	return rates
}
