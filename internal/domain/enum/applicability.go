package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Applicability decides whether tax line items reduce or increase the net amount
type Applicability int

const (
	Subtractive Applicability = 0
	Additive    Applicability = 1
)

func (a Applicability) String() string {
	names := [...]string{"subtractive", "additive"}
	if int(a) < 0 || int(a) >= len(names) {
		return "subtractive"
	}
	return names[a]
}

// IsValid reports whether a is a known value
func (a Applicability) IsValid() bool {
	switch a {
	case Subtractive, Additive:
		return true
	}
	return false
}

func (a Applicability) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Applicability) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		v := Applicability(i)
		if !v.IsValid() {
			return fmt.Errorf("invalid applicability %d", i)
		}
		*a = v
		return nil
	}
	switch str {
	case "subtractive":
		*a = Subtractive
	case "additive":
		*a = Additive
	default:
		return fmt.Errorf("invalid applicability %q", str)
	}
	return nil
}

func (a Applicability) Value() (driver.Value, error) {
	return int64(a), nil
}

func (a *Applicability) Scan(value interface{}) error {
	if value == nil {
		*a = Subtractive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*a = Applicability(v)
	case int:
		*a = Applicability(v)
	}
	return nil
}
