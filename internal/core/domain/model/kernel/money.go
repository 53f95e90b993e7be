package kernel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when a zero-value Money is validated.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or MoneyFromReais")

// Money is a non-negative amount of Brazilian reais held in centavos, so sums
// and products never accumulate floating point error.
//
// Example:
//
//	price, _ := kernel.MoneyFromReais(10.00)
//	subtotal, _ := price.Multiply(2)
//	fmt.Println(subtotal.Format()) // 20,00
type Money struct { //nolint:recvcheck //using for validation
	cents int64
	guard guard.ConstructorGuard
}

// NewMoney builds an amount from centavos. Negative amounts are rejected.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("cents", cents, 0, int64(math.MaxInt64))
	}
	return Money{cents: cents, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromReais converts a decimal amount (as received over JSON) to centavos,
// rounding half away from zero.
func MoneyFromReais(reais float64) (Money, error) {
	if math.IsNaN(reais) || math.IsInf(reais, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("reais", fmt.Errorf("%v is not a finite amount", reais))
	}
	return NewMoney(int64(math.Round(reais * 100)))
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{guard: guard.NewConstructorGuard()}
}

// Validate reports whether the amount was built through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Cents returns the amount in centavos.
func (m Money) Cents() int64 {
	return m.cents
}

// Reais returns the amount as a decimal number, for JSON responses.
func (m Money) Reais() float64 {
	return float64(m.cents) / 100
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// Add returns m + other. A sum beyond math.MaxInt64 centavos is a
// *errs.ValueIsOutOfRangeError.
func (m Money) Add(other Money) (Money, error) {
	if other.cents > math.MaxInt64-m.cents {
		return Money{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"amount", m.cents, 0, int64(math.MaxInt64), errors.New("sum overflows"))
	}
	return Money{cents: m.cents + other.cents, guard: guard.NewConstructorGuard()}, nil
}

// Multiply returns m × quantity. quantity must not be negative and the
// product must fit in int64 centavos.
func (m Money) Multiply(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", errors.New("cannot multiply money by a negative quantity"))
	}
	if quantity > 0 && m.cents > math.MaxInt64/int64(quantity) {
		return Money{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"amount", m.cents, 0, int64(math.MaxInt64), fmt.Errorf("product with %d overflows", quantity))
	}
	return Money{cents: m.cents * int64(quantity), guard: guard.NewConstructorGuard()}, nil
}

// IsEqual compares two amounts.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// Format renders the amount the Brazilian way: '.' groups thousands and ','
// separates the two decimal places, e.g. 1.234,50. The currency symbol is
// left to the caller.
func (m Money) Format() string {
	whole := strconv.FormatInt(m.cents/100, 10)
	frac := m.cents % 100

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	return fmt.Sprintf("%s,%02d", b.String(), frac)
}

// String implements fmt.Stringer as "R$ 1.234,50".
func (m Money) String() string {
	return "R$ " + m.Format()
}
