package form

import (
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/internal/domain/tax"
	"github.com/sangkips/kwitansi-api/pkg/apperror"
)

// Calculation is a one-off preview of the kwitansi figures
type Calculation struct {
	Kind         enum.ReceiptKind `json:"kind"`
	Rates        tax.Rates        `json:"rates"`
	Mode         tax.Mode         `json:"mode"`
	Result       tax.Result       `json:"result"`
	UangSebanyak string           `json:"uang_sebanyak"`
}

// Calculate runs the same recomputation an open form does, without keeping
// any state
func Calculate(kind enum.ReceiptKind, nota string, rates map[enum.TaxCategory]float64, mode *tax.Mode, opts ...Option) (*Calculation, error) {
	profile, ok := ProfileFor(kind)
	if !ok {
		return nil, apperror.NewBadRequestError("Unknown kwitansi kind: " + string(kind))
	}

	f := New(profile, opts...)
	p := Patch{NotaPembayaran: &nota, Rates: rates}
	if mode != nil {
		p.BaseSelection = &mode.Base
		p.Applicability = &mode.Applicability
	}
	if err := f.Apply(p); err != nil {
		return nil, err
	}

	v := f.View()
	return &Calculation{
		Kind:         kind,
		Rates:        v.Rates,
		Mode:         v.Mode,
		Result:       v.Result,
		UangSebanyak: v.UangSebanyak,
	}, nil
}
