package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimal is a money or quantity value. Forms post raw input, so an empty
// string or null decodes as zero instead of failing the whole record.
type Decimal struct {
	decimal.Decimal
}

func NewDecimal(d decimal.Decimal) Decimal { return Decimal{Decimal: d} }

// RequireDecimal parses s and panics on malformed input.
func RequireDecimal(s string) Decimal { return Decimal{Decimal: decimal.RequireFromString(s)} }

func (d Decimal) MarshalJSON() ([]byte, error) {
	return d.Decimal.MarshalJSON()
}

func (d *Decimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		d.Decimal = decimal.Zero
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			d.Decimal = decimal.Zero
			return nil
		}
	}
	return d.Decimal.UnmarshalJSON(b)
}
