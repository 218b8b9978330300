package kernel

import (
	"fmt"

	"github.com/shopspring/decimal"

	"ordersync/internal/pkg/errs"
)

// ErrPriceIsNotConstructed indicates that a Price was not created through one
// of the constructor functions.
var ErrPriceIsNotConstructed = errs.NewValueIsRequiredError(
	"Price must be created via NewPrice or PriceFromString",
)

// Price is a value object for negotiated delivery amounts, expressed in whole
// currency units. Amounts are strictly positive integers: fractional or
// non-positive values are rejected at construction, before any call leaves the
// process.
//
// Price is immutable and safe for concurrent use. The zero value is invalid
// and must be constructed via NewPrice or PriceFromString.
type Price struct {
	amount        decimal.Decimal
	isConstructed bool
}

// NewPrice creates a Price from a whole currency amount.
// Returns a validation error for non-positive amounts.
func NewPrice(amount int64) (Price, error) {
	if amount <= 0 {
		return Price{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%d is not greater than 0", amount))
	}

	return Price{amount: decimal.NewFromInt(amount), isConstructed: true}, nil
}

// PriceFromString parses a Price from its decimal string representation.
// The value must be a strictly positive integer: "4800" is valid, "4800.50"
// and "-100" are not.
func PriceFromString(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, errs.NewValueIsInvalidErrorWithCause("price", err)
	}

	if !d.IsInteger() {
		return Price{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is not a whole amount", s))
	}

	if !d.IsPositive() {
		return Price{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is not greater than 0", s))
	}

	return Price{amount: d, isConstructed: true}, nil
}

// Amount returns the price as a whole currency amount.
func (p Price) Amount() int64 {
	return p.amount.IntPart()
}

// String returns the decimal string representation of the price.
func (p Price) String() string {
	return p.amount.String()
}

// IsEqual reports whether two prices represent the same amount.
func (p Price) IsEqual(other Price) bool {
	return p.amount.Equal(other.amount)
}

// Validate checks that the Price was properly constructed.
func (p Price) Validate() error {
	if !p.isConstructed {
		return ErrPriceIsNotConstructed
	}
	return nil
}
