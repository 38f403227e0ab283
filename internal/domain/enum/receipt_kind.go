package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ReceiptKind identifies which kwitansi form produced a record
type ReceiptKind string

const (
	ReceiptKindHonor  ReceiptKind = "honor"
	ReceiptKindJasa   ReceiptKind = "jasa"
	ReceiptKindBarang ReceiptKind = "barang"
)

// ReceiptKinds lists every kind in report order
var ReceiptKinds = []ReceiptKind{ReceiptKindHonor, ReceiptKindJasa, ReceiptKindBarang}

func (k ReceiptKind) String() string {
	return string(k)
}

// IsValid reports whether k is a known kind
func (k ReceiptKind) IsValid() bool {
	switch k {
	case ReceiptKindHonor, ReceiptKindJasa, ReceiptKindBarang:
		return true
	}
	return false
}

// Title is the heading used on reports, e.g. "Laporan Jasa"
func (k ReceiptKind) Title() string {
	switch k {
	case ReceiptKindHonor:
		return "Honor"
	case ReceiptKindJasa:
		return "Jasa"
	case ReceiptKindBarang:
		return "Barang"
	}
	return string(k)
}

func (k ReceiptKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(k))
}

func (k *ReceiptKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*k = ReceiptKind(str)
	return nil
}

func (k ReceiptKind) Value() (driver.Value, error) {
	return string(k), nil
}

func (k *ReceiptKind) Scan(value interface{}) error {
	if value == nil {
		*k = ReceiptKindJasa
		return nil
	}
	switch v := value.(type) {
	case string:
		*k = ReceiptKind(v)
	case []byte:
		*k = ReceiptKind(string(v))
	}
	return nil
}
