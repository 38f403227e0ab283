package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/internal/domain/tax"
)

// Signatory is one signature block on a kwitansi
type Signatory struct {
	Nama string `gorm:"size:255" json:"nama"`
	NIP  string `gorm:"size:50" json:"nip,omitempty"`
}

// Signatures holds the four signature blocks printed at the bottom of a kwitansi
type Signatures struct {
	Pengguna  Signatory `gorm:"embedded;embeddedPrefix:pengguna_" json:"pengguna"`
	PPTK      Signatory `gorm:"embedded;embeddedPrefix:pptk_" json:"pptk"`
	Bendahara Signatory `gorm:"embedded;embeddedPrefix:bendahara_" json:"bendahara"`
	Penerima  Signatory `gorm:"embedded;embeddedPrefix:penerima_" json:"penerima"`
}

// Kwitansi is a persisted receipt. Amounts are whole rupiah.
type Kwitansi struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind              enum.ReceiptKind   `gorm:"size:20;not null;index" json:"kind"`
	Lembar            string             `gorm:"size:50" json:"lembar"`
	BuktiKas          string             `gorm:"size:100" json:"bukti_kas"`
	KodeRekening      string             `gorm:"size:100" json:"kode_rekening"`
	TerimaDari        string             `gorm:"size:255;not null" json:"terima_dari"`
	UntukPembayaran   string             `gorm:"type:text" json:"untuk_pembayaran"`
	Uraian            string             `gorm:"type:text" json:"uraian"`
	NotaPembayaran    int64              `gorm:"not null;default:0" json:"nota_pembayaran"`
	BaseSelection     enum.BaseSelection `gorm:"default:0" json:"base_selection"`
	Applicability     enum.Applicability `gorm:"default:0" json:"applicability"`
	DPP               int64              `gorm:"column:dpp;default:0" json:"dpp"`
	TotalPajak        int64              `gorm:"default:0" json:"total_pajak"`
	JumlahDiterimakan int64              `gorm:"not null;default:0" json:"jumlah_diterimakan"`
	UangSebanyak      string             `gorm:"type:text" json:"uang_sebanyak"`
	Tanggal           time.Time          `gorm:"type:date" json:"tanggal"`
	Signatures        Signatures         `gorm:"embedded;embeddedPrefix:sig_" json:"signatures"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`

	// Relationships
	User     User              `gorm:"foreignKey:UserID" json:"-"`
	TaxLines []KwitansiTaxLine `gorm:"foreignKey:KwitansiID;constraint:OnDelete:CASCADE" json:"tax_lines"`
}

// BeforeCreate generates a UUID before creating a new kwitansi
func (k *Kwitansi) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Kwitansi model
func (Kwitansi) TableName() string {
	return "kwitansi"
}

// StoredTaxes indexes the tax lines by category for rate inference
func (k *Kwitansi) StoredTaxes() map[enum.TaxCategory]tax.Stored {
	out := make(map[enum.TaxCategory]tax.Stored, len(k.TaxLines))
	for _, l := range k.TaxLines {
		out[l.Category] = tax.Stored{Rate: l.Rate, Amount: l.Amount}
	}
	return out
}

// TaxAmount returns the stored amount for c, or 0
func (k *Kwitansi) TaxAmount(c enum.TaxCategory) int64 {
	for _, l := range k.TaxLines {
		if l.Category == c && l.Amount != nil {
			return *l.Amount
		}
	}
	return 0
}

// KwitansiTaxLine is one tax category of a kwitansi.
// Rate is nil on records written before rates were stored.
type KwitansiTaxLine struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	KwitansiID uuid.UUID        `gorm:"type:uuid;not null;index" json:"kwitansi_id"`
	Category   enum.TaxCategory `gorm:"size:20;not null" json:"category"`
	Rate       *float64         `json:"rate,omitempty"`
	Amount     *int64           `json:"amount,omitempty"`
}

// BeforeCreate generates a UUID before creating a new tax line
func (l *KwitansiTaxLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the KwitansiTaxLine model
func (KwitansiTaxLine) TableName() string {
	return "kwitansi_tax_lines"
}
