package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// BaseSelection chooses which figure tax percentages are applied to
type BaseSelection int

const (
	// BaseRaw applies rates to the nota pembayaran as entered
	BaseRaw BaseSelection = 0
	// BaseDerived applies rates to the DPP recovered from a PPN-inclusive gross
	BaseDerived BaseSelection = 1
)

func (b BaseSelection) String() string {
	names := [...]string{"raw", "derived"}
	if int(b) < 0 || int(b) >= len(names) {
		return "raw"
	}
	return names[b]
}

// IsValid reports whether b is a known value
func (b BaseSelection) IsValid() bool {
	switch b {
	case BaseRaw, BaseDerived:
		return true
	}
	return false
}

func (b BaseSelection) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *BaseSelection) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		v := BaseSelection(i)
		if !v.IsValid() {
			return fmt.Errorf("invalid base selection %d", i)
		}
		*b = v
		return nil
	}
	switch str {
	case "raw":
		*b = BaseRaw
	case "derived", "dpp":
		*b = BaseDerived
	default:
		return fmt.Errorf("invalid base selection %q", str)
	}
	return nil
}

func (b BaseSelection) Value() (driver.Value, error) {
	return int64(b), nil
}

func (b *BaseSelection) Scan(value interface{}) error {
	if value == nil {
		*b = BaseRaw
		return nil
	}
	switch v := value.(type) {
	case int64:
		*b = BaseSelection(v)
	case int:
		*b = BaseSelection(v)
	}
	return nil
}
