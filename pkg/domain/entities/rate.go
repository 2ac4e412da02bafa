package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rate represents a material flow in units per minute. Rates are kept
// at two decimal places so that sums, differences and minimums of
// valid rates stay exact and remainder checks need no epsilon.
type Rate struct {
	d decimal.Decimal
}

// ZeroRate is the additive identity for rates.
var ZeroRate = Rate{}

// NewRate creates a rate from a float, rounded to two decimal places.
func NewRate(value float64) Rate {
	return Rate{d: decimal.NewFromFloat(value).Round(2)}
}

// NewRateFromInt creates a rate from an integer unit count.
func NewRateFromInt(value int64) Rate {
	return Rate{d: decimal.NewFromInt(value)}
}

// NewRateFromString parses a decimal string such as "533.33"
func NewRateFromString(value string) (Rate, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Rate{}, fmt.Errorf("invalid rate %q: %w", value, err)
	}
	return Rate{d: d.Round(2)}, nil
}

// Add returns r + other.
func (r Rate) Add(other Rate) Rate {
	return Rate{d: r.d.Add(other.d)}
}

// Sub returns r - other. The result may be negative; callers treat a
// negative remainder as a conservation violation.
func (r Rate) Sub(other Rate) Rate {
	return Rate{d: r.d.Sub(other.d)}
}

// MulInt scales the rate by an integer repetition count.
func (r Rate) MulInt(n int) Rate {
	return Rate{d: r.d.Mul(decimal.NewFromInt(int64(n)))}
}

// Min returns the smaller of r and other.
func (r Rate) Min(other Rate) Rate {
	if r.d.LessThan(other.d) {
		return r
	}
	return other
}

// Round2 rounds to at most two decimal places.
func (r Rate) Round2() Rate {
	return Rate{d: r.d.Round(2)}
}

func (r Rate) IsZero() bool {
	return r.d.IsZero()
}

func (r Rate) IsPositive() bool {
	return r.d.IsPositive()
}

func (r Rate) IsNegative() bool {
	return r.d.IsNegative()
}

func (r Rate) Equal(other Rate) bool {
	return r.d.Equal(other.d)
}

func (r Rate) Less(other Rate) bool {
	return r.d.LessThan(other.d)
}

// Decimal exposes the underlying decimal value.
func (r Rate) Decimal() decimal.Decimal {
	return r.d
}

// String renders the rate without trailing zeros: 8 not 8.00, 8.5 not 8.50.
func (r Rate) String() string {
	return r.d.String()
}

func (r Rate) MarshalJSON() ([]byte, error) {
	return r.d.MarshalJSON()
}

func (r *Rate) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	r.d = d.Round(2)
	return nil
}
