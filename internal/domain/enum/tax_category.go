package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TaxCategory names a withholding or deduction line on a kwitansi
type TaxCategory string

const (
	TaxPPh21 TaxCategory = "pph21"
	TaxPPh22 TaxCategory = "pph22"
	TaxPPh23 TaxCategory = "pph23"
	TaxPPN   TaxCategory = "ppn"
	TaxPAD   TaxCategory = "pad"
)

// TaxCategories is the canonical print order
var TaxCategories = []TaxCategory{TaxPPh21, TaxPPh22, TaxPPh23, TaxPPN, TaxPAD}

func (c TaxCategory) String() string {
	return string(c)
}

// Label is the printed caption for the category
func (c TaxCategory) Label() string {
	switch c {
	case TaxPPh21:
		return "PPh 21"
	case TaxPPh22:
		return "PPh 22"
	case TaxPPh23:
		return "PPh 23"
	case TaxPPN:
		return "PPN"
	case TaxPAD:
		return "PAD"
	}
	return string(c)
}

// IsValid reports whether c is a known category
func (c TaxCategory) IsValid() bool {
	switch c {
	case TaxPPh21, TaxPPh22, TaxPPh23, TaxPPN, TaxPAD:
		return true
	}
	return false
}

func (c TaxCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

func (c *TaxCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*c = TaxCategory(str)
	return nil
}

func (c TaxCategory) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *TaxCategory) Scan(value interface{}) error {
	if value == nil {
		*c = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*c = TaxCategory(v)
	case []byte:
		*c = TaxCategory(string(v))
	}
	return nil
}
