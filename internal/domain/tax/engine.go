// Package tax computes kwitansi tax line items and net amounts.
//
// Every function here is pure and total: malformed numbers normalize to zero
// instead of producing errors, so callers can recompute on every keystroke.
package tax

import (
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/sangkips/kwitansi-api/internal/domain/enum"
)

var (
	hundred     = decimal.NewFromInt(100)
	basisPoints = decimal.NewFromInt(10000)
	// dppDivisor assumes an 11% PPN embedded in the gross amount.
	dppDivisor = decimal.NewFromInt(111)
	maxAmount  = decimal.NewFromInt(math.MaxInt64)
)

// Rates maps a category to its percentage rate
type Rates map[enum.TaxCategory]float64

// Mode bundles the two independent computation switches
type Mode struct {
	Base          enum.BaseSelection `json:"base_selection"`
	Applicability enum.Applicability `json:"applicability"`
}

// DefaultMode is RawBase with subtractive line items
var DefaultMode = Mode{Base: enum.BaseRaw, Applicability: enum.Subtractive}

// LineItem is one computed category
type LineItem struct {
	Category enum.TaxCategory `json:"category"`
	Rate     float64          `json:"rate"`
	Amount   int64            `json:"amount"`
}

// Result is the outcome of Compute
type Result struct {
	Gross         int64      `json:"gross"`
	EffectiveBase int64      `json:"effective_base"`
	Lines         []LineItem `json:"lines"`
	TotalTax      int64      `json:"total_tax"`
	Net           int64      `json:"net"`
}

// Amount returns the computed amount for c, or 0 when c was not computed
func (r Result) Amount(c enum.TaxCategory) int64 {
	for _, l := range r.Lines {
		if l.Category == c {
			return l.Amount
		}
	}
	return 0
}

// NormalizeRate maps NaN, infinities and negatives to 0
func NormalizeRate(rate float64) float64 {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return 0
	}
	return rate
}

// NormalizeAmount maps negative amounts to 0
func NormalizeAmount(amount int64) int64 {
	if amount < 0 {
		return 0
	}
	return amount
}

// EffectiveBase returns the figure rates are applied to.
// BaseDerived recovers the DPP as round(base*100/111).
func EffectiveBase(base int64, sel enum.BaseSelection) int64 {
	base = NormalizeAmount(base)
	if sel != enum.BaseDerived {
		return base
	}
	return decimal.NewFromInt(base).Mul(hundred).Div(dppDivisor).Round(0).IntPart()
}

// LineAmount returns round(base*rate/100), rounding halves up. Results
// beyond the int64 range saturate at math.MaxInt64.
func LineAmount(base int64, rate float64) int64 {
	base = NormalizeAmount(base)
	rate = NormalizeRate(rate)
	if base == 0 || rate == 0 {
		return 0
	}
	amount := decimal.NewFromInt(base).
		Mul(decimal.NewFromFloat(rate)).
		Div(hundred).
		Round(0)
	if amount.GreaterThan(maxAmount) {
		return math.MaxInt64
	}
	return amount.IntPart()
}

// addAmounts adds two non-negative amounts, saturating at math.MaxInt64
func addAmounts(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// Compute applies every rate to the effective base independently and
// combines the line items according to mode.Applicability.
func Compute(base int64, rates Rates, mode Mode) Result {
	res := Result{
		Gross:         NormalizeAmount(base),
		EffectiveBase: EffectiveBase(base, mode.Base),
	}

	for _, c := range orderedCategories(rates) {
		rate := NormalizeRate(rates[c])
		amount := LineAmount(res.EffectiveBase, rate)
		res.Lines = append(res.Lines, LineItem{Category: c, Rate: rate, Amount: amount})
		res.TotalTax = addAmounts(res.TotalTax, amount)
	}

	if mode.Applicability == enum.Additive {
		res.Net = addAmounts(res.EffectiveBase, res.TotalTax)
	} else {
		res.Net = NormalizeAmount(res.EffectiveBase - res.TotalTax)
	}
	return res
}

// orderedCategories lists known categories in print order, then any others sorted
func orderedCategories(rates Rates) []enum.TaxCategory {
	out := make([]enum.TaxCategory, 0, len(rates))
	for _, c := range enum.TaxCategories {
		if _, ok := rates[c]; ok {
			out = append(out, c)
		}
	}
	var extra []enum.TaxCategory
	for c := range rates {
		if !c.IsValid() {
			extra = append(extra, c)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}
