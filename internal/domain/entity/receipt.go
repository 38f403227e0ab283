package entity

import (
	"time"

	"github.com/sangkips/kwitansi-api/internal/domain/enum"
)

// PrintLine is a tax row on a printed kwitansi
type PrintLine struct {
	Category enum.TaxCategory `json:"category"`
	Label    string           `json:"label"`
	Rate     float64          `json:"rate"`
	Amount   int64            `json:"amount"`
}

// PrintSnapshot is a read-only, fully computed view of a kwitansi.
// It is NOT a database entity; renderers receive it and never recompute.
type PrintSnapshot struct {
	Kind              enum.ReceiptKind   `json:"kind"`
	Title             string             `json:"title"`
	Lembar            string             `json:"lembar"`
	BuktiKas          string             `json:"bukti_kas"`
	KodeRekening      string             `json:"kode_rekening"`
	TerimaDari        string             `json:"terima_dari"`
	UntukPembayaran   string             `json:"untuk_pembayaran"`
	Uraian            string             `json:"uraian"`
	NotaPembayaran    int64              `json:"nota_pembayaran"`
	BaseSelection     enum.BaseSelection `json:"base_selection"`
	Applicability     enum.Applicability `json:"applicability"`
	DPP               int64              `json:"dpp"`
	Lines             []PrintLine        `json:"lines"`
	TotalPajak        int64              `json:"total_pajak"`
	JumlahDiterimakan int64              `json:"jumlah_diterimakan"`
	UangSebanyak      string             `json:"uang_sebanyak"`
	Location          string             `json:"location"`
	Tanggal           time.Time          `json:"tanggal"`
	Signatures        Signatures         `json:"signatures"`
}
