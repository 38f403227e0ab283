// Package form implements the working copy of an open kwitansi form: the
// numeric state, the derived tax figures and the save/discard lifecycle.
package form

import (
	"slices"

	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/internal/domain/tax"
)

// Profile configures one receipt kind. The three kinds share the same
// controller and differ only here.
type Profile struct {
	Kind        enum.ReceiptKind   `json:"kind"`
	Title       string             `json:"title"`
	Categories  []enum.TaxCategory `json:"categories"`
	DefaultMode tax.Mode           `json:"default_mode"`
	// ModeToggle allows the user to switch applicability and base selection
	ModeToggle bool `json:"mode_toggle"`
	// MinBase keeps a category at zero until the nota pembayaran exceeds it
	MinBase map[enum.TaxCategory]int64 `json:"min_base,omitempty"`
}

var profiles = map[enum.ReceiptKind]Profile{
	enum.ReceiptKindHonor: {
		Kind:        enum.ReceiptKindHonor,
		Title:       "Kwitansi Honor",
		Categories:  []enum.TaxCategory{enum.TaxPPh21},
		DefaultMode: tax.DefaultMode,
	},
	enum.ReceiptKindJasa: {
		Kind:        enum.ReceiptKindJasa,
		Title:       "Kwitansi Jasa",
		Categories:  enum.TaxCategories,
		DefaultMode: tax.DefaultMode,
		ModeToggle:  true,
		MinBase:     map[enum.TaxCategory]int64{enum.TaxPPh21: 1000000},
	},
	enum.ReceiptKindBarang: {
		Kind:        enum.ReceiptKindBarang,
		Title:       "Kwitansi Barang",
		Categories:  enum.TaxCategories,
		DefaultMode: tax.DefaultMode,
	},
}

// ProfileFor returns the profile of kind
func ProfileFor(kind enum.ReceiptKind) (Profile, bool) {
	p, ok := profiles[kind]
	return p, ok
}

// Profiles lists every profile in report order
func Profiles() []Profile {
	out := make([]Profile, 0, len(enum.ReceiptKinds))
	for _, k := range enum.ReceiptKinds {
		out = append(out, profiles[k])
	}
	return out
}

// Allows reports whether c is one of the profile's categories
func (p Profile) Allows(c enum.TaxCategory) bool {
	return slices.Contains(p.Categories, c)
}

// AllowsMode reports whether m can be selected on this profile
func (p Profile) AllowsMode(m tax.Mode) bool {
	if !m.Base.IsValid() || !m.Applicability.IsValid() {
		return false
	}
	return p.ModeToggle || m == p.DefaultMode
}

// Active reports whether c is computed for a nota pembayaran of base
func (p Profile) Active(c enum.TaxCategory, base int64) bool {
	floor, ok := p.MinBase[c]
	return !ok || base > floor
}

// EffectiveRates returns rates with every inactive category set to zero
func (p Profile) EffectiveRates(base int64, rates tax.Rates) tax.Rates {
	out := make(tax.Rates, len(rates))
	for c, r := range rates {
		if p.Active(c, base) {
			out[c] = r
		} else {
			out[c] = 0
		}
	}
	return out
}
