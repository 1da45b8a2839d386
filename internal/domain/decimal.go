package domain

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// Decimal is a wrapper around apd.Decimal used for prices so that amounts
// such as 1500.00 UAH never pass through binary floating point.
type Decimal struct {
	apd.Decimal
}

var Zero = Decimal{}

// NewDecimalFromString parses a price such as "1500.00".
func NewDecimalFromString(v string) (Decimal, error) {
	d := Decimal{}
	if _, _, err := d.SetString(v); err != nil {
		return d, fmt.Errorf("invalid decimal string %s: %w", v, err)
	}
	return d, nil
}

// mustDecimal is for compile-time price literals.
func mustDecimal(v string) Decimal {
	d, err := NewDecimalFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Decimal) String() string {
	return d.Decimal.String()
}

func (d Decimal) Cmp(other Decimal) int {
	return d.Decimal.Cmp(&other.Decimal)
}

// MarshalJSON writes the amount as a JSON number, keeping its scale.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}
