package request

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/sangkips/kwitansi-api/internal/application/form"
	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/internal/domain/tax"
	"github.com/sangkips/kwitansi-api/pkg/apperror"
)

// DateLayout is the format of tanggal in requests
const DateLayout = "2006-01-02"

// Amount is user-typed rupiah text. It accepts a JSON string such as
// "Rp 1.500.000" or a bare number; normalization happens in the form.
type Amount string

// UnmarshalJSON keeps the raw text of strings and numbers alike
func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(data)
	return nil
}

// NewFormRequest opens an empty form
type NewFormRequest struct {
	Kind enum.ReceiptKind `json:"kind" binding:"required"`
}

// PatchFormRequest is one edit of an open form. Omitted fields are left
// untouched.
type PatchFormRequest struct {
	Lembar          *string                      `json:"lembar"`
	BuktiKas        *string                      `json:"bukti_kas"`
	KodeRekening    *string                      `json:"kode_rekening"`
	TerimaDari      *string                      `json:"terima_dari"`
	UntukPembayaran *string                      `json:"untuk_pembayaran"`
	Uraian          *string                      `json:"uraian"`
	Tanggal         *string                      `json:"tanggal"`
	Signatures      *entity.Signatures           `json:"signatures"`
	NotaPembayaran  *Amount                      `json:"nota_pembayaran"`
	Rates           map[enum.TaxCategory]float64 `json:"rates"`
	BaseSelection   *enum.BaseSelection          `json:"base_selection"`
	Applicability   *enum.Applicability          `json:"applicability"`
}

// ToPatch converts the request into a form edit
func (r *PatchFormRequest) ToPatch() (form.Patch, error) {
	p := form.Patch{
		Lembar:          r.Lembar,
		BuktiKas:        r.BuktiKas,
		KodeRekening:    r.KodeRekening,
		TerimaDari:      r.TerimaDari,
		UntukPembayaran: r.UntukPembayaran,
		Uraian:          r.Uraian,
		Signatures:      r.Signatures,
		Rates:           r.Rates,
		BaseSelection:   r.BaseSelection,
		Applicability:   r.Applicability,
	}
	if r.NotaPembayaran != nil {
		s := string(*r.NotaPembayaran)
		p.NotaPembayaran = &s
	}
	if r.Tanggal != nil && *r.Tanggal != "" {
		t, err := time.Parse(DateLayout, *r.Tanggal)
		if err != nil {
			return form.Patch{}, apperror.NewValidationError([]apperror.FieldError{
				{Field: "tanggal", Message: "Tanggal must use the format YYYY-MM-DD"},
			})
		}
		p.Tanggal = &t
	}
	return p, nil
}

// CalculateRequest previews the figures of a kwitansi
type CalculateRequest struct {
	Kind           enum.ReceiptKind             `json:"kind" binding:"required"`
	NotaPembayaran Amount                       `json:"nota_pembayaran"`
	Rates          map[enum.TaxCategory]float64 `json:"rates"`
	BaseSelection  *enum.BaseSelection          `json:"base_selection"`
	Applicability  *enum.Applicability          `json:"applicability"`
}

// Mode returns the requested computation mode, or nil for the kind default
func (r *CalculateRequest) Mode() *tax.Mode {
	if r.BaseSelection == nil && r.Applicability == nil {
		return nil
	}
	m := tax.DefaultMode
	if r.BaseSelection != nil {
		m.Base = *r.BaseSelection
	}
	if r.Applicability != nil {
		m.Applicability = *r.Applicability
	}
	return &m
}

// KwitansiFilterRequest represents Laporan list filters
type KwitansiFilterRequest struct {
	Kind      string `form:"kind"`
	Search    string `form:"search"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
