package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	PriceMaxDigits     = 8
	PriceDecimalPlaces = 2
)

// Price is a fixed-point money amount stored as NUMERIC(8,2).
type Price struct {
	decimal.Decimal
}

func NewPrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return Price{Decimal: d}, nil
}

func MustPrice(s string) Price {
	p, err := NewPrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Valid reports whether the amount fits NUMERIC(8,2) without rounding.
func (p Price) Valid() bool {
	if !p.Equal(p.Truncate(PriceDecimalPlaces)) {
		return false
	}
	limit := decimal.New(1, PriceMaxDigits-PriceDecimalPlaces)
	return p.Abs().LessThan(limit)
}

func (p Price) String() string {
	return p.StringFixed(PriceDecimalPlaces)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

func (p Price) Value() (driver.Value, error) {
	return p.String(), nil
}
