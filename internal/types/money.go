package types

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrSubCentPrecision = errors.New("amounts must not have more than two decimal places")
	ErrInvalidSplit     = errors.New("an amount can only be split into one or more parts")
	ErrInvalidMoney     = errors.New("could not parse the amount")
)

// Money is an amount in minor units (cents).
//
// All arithmetic in the ledger is done on this integer. shopspring/decimal
// is only used at the boundaries to parse and format amounts.
type Money int64

// MoneyFromDecimal converts a decimal amount into Money.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if !d.Equal(d.Round(2)) {
		return 0, fmt.Errorf("%w: %s", ErrSubCentPrecision, d)
	}

	cents := d.Shift(2)
	if !cents.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s is out of range", ErrInvalidMoney, d)
	}

	return Money(cents.IntPart()), nil
}

// ParseMoney parses a decimal string like "12.34".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}

	return MoneyFromDecimal(d)
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String returns the amount with exactly two decimal places.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

func (m Money) Add(n Money) Money {
	return m + n
}

func (m Money) Sub(n Money) Money {
	return m - n
}

func (m Money) Neg() Money {
	return -m
}

func (m Money) IsPositive() bool {
	return m > 0
}

func (m Money) IsZero() bool {
	return m == 0
}

// Split divides the amount into n parts that sum up to exactly the amount.
//
// Every part gets the amount divided by n, rounded towards zero. The
// remaining cents are distributed one by one to the first parts, so
// 100.00 split in 3 is 33.34, 33.33, 33.33.
func (m Money) Split(n int) ([]Money, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidSplit, n)
	}

	share := m / Money(n)
	remainder := m - share*Money(n)

	step := Money(1)
	if remainder < 0 {
		step = -1
	}

	parts := make([]Money, n)
	for i := range parts {
		parts[i] = share
		if remainder != 0 {
			parts[i] += step
			remainder -= step
		}
	}

	return parts, nil
}

// Sum adds up all amounts.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}

// MarshalJSON implements the json.Marshaler interface. The amount is
// written as a decimal string in major units, e.g. "14.03".
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts decimal strings and JSON numbers.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidMoney, data)
	}

	parsed, err := MoneyFromDecimal(d)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}

// Scan reads the amount in cents from the database.
func (m *Money) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*m = 0
	case int64:
		*m = Money(v)
	case float64:
		*m = Money(v)
	case []byte:
		return m.Scan(string(v))
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidMoney, v)
		}
		*m = Money(d.IntPart())
	default:
		return fmt.Errorf("%w: unsupported database type %T", ErrInvalidMoney, value)
	}

	return nil
}

// Value stores the amount as an integer number of cents.
func (m Money) Value() (driver.Value, error) {
	return int64(m), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Money) GormDataType() string {
	return "integer"
}
