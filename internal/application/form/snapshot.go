package form

import (
	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/internal/domain/tax"
)

// BuildSnapshot turns a record into the read-only shape renderers consume.
// Rates missing from older records are inferred the same way the edit form
// infers them.
func BuildSnapshot(rec *entity.Kwitansi, title, location string) entity.PrintSnapshot {
	snap := entity.PrintSnapshot{
		Kind:              rec.Kind,
		Title:             title,
		Lembar:            rec.Lembar,
		BuktiKas:          rec.BuktiKas,
		KodeRekening:      rec.KodeRekening,
		TerimaDari:        rec.TerimaDari,
		UntukPembayaran:   rec.UntukPembayaran,
		Uraian:            rec.Uraian,
		NotaPembayaran:    rec.NotaPembayaran,
		BaseSelection:     rec.BaseSelection,
		Applicability:     rec.Applicability,
		DPP:               rec.DPP,
		TotalPajak:        rec.TotalPajak,
		JumlahDiterimakan: rec.JumlahDiterimakan,
		UangSebanyak:      rec.UangSebanyak,
		Location:          location,
		Tanggal:           rec.Tanggal,
		Signatures:        rec.Signatures,
	}

	base := tax.EffectiveBase(rec.NotaPembayaran, rec.BaseSelection)
	for _, l := range rec.TaxLines {
		var amount int64
		if l.Amount != nil {
			amount = *l.Amount
		}
		snap.Lines = append(snap.Lines, entity.PrintLine{
			Category: l.Category,
			Label:    l.Category.Label(),
			Rate:     tax.ResolveRate(l.Rate, l.Amount, base),
			Amount:   amount,
		})
	}
	return snap
}
