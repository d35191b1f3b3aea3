// Package types implements the calendar and money types of the ledger.
package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidMonth is returned when a value cannot be interpreted as a month.
var ErrInvalidMonth = errors.New("could not parse the month, use the YYYY-MM format")

// Month is a month in a specific year. It is the period key for billing
// periods and recurring rules.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs in that time's location.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return NewMonth(year, month)
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}

	return MonthOf(t), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// Calendar returns the year and month of m.
func (m Month) Calendar() (int, time.Month) {
	return time.Time(m).Year(), time.Time(m).Month()
}

// Start returns midnight UTC of the first day of the month.
func (m Month) Start() time.Time {
	return time.Time(NewMonth(m.Calendar()))
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(m.Start().AddDate(years, months, 0))
}

// Before reports whether the month m is before n.
func (m Month) Before(n Month) bool {
	return m.Start().Before(n.Start())
}

// After reports whether the month m is after n.
func (m Month) After(n Month) bool {
	return m.Start().After(n.Start())
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return m.Start().Equal(n.Start())
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	year, month := m.Calendar()
	return t.Year() == year && t.Month() == month
}

// MarshalJSON implements the json.Marshaler interface. Months are
// represented as "YYYY-MM" strings, the zero month as null.
func (m Month) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("null"), nil
	}

	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
//
// Besides "YYYY-MM", full dates and RFC3339 timestamps are accepted.
// Everything except the year and month is ignored for those.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*m = Month{}
		return nil
	}

	for _, layout := range []string{"2006-01", time.DateOnly, time.RFC3339} {
		t, err := time.Parse(layout, value)
		if err == nil {
			*m = MonthOf(t)
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrInvalidMonth, value)
}

// UnmarshalParam implements gin's binding.BindUnmarshaler for "YYYY-MM"
// path and query parameters.
func (m *Month) UnmarshalParam(p string) error {
	if p == "" {
		*m = Month{}
		return nil
	}

	parsed, err := ParseMonth(p)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}

// Scan reads the month from the database, where it is stored as YYYY-MM.
func (m *Month) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*m = Month{}
		return nil
	case string:
		parsed, err := ParseMonth(v)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case []byte:
		return m.Scan(string(v))
	case time.Time:
		*m = MonthOf(v)
		return nil
	}

	return fmt.Errorf("%w: unsupported database type %T", ErrInvalidMonth, value)
}

// Value returns the value for the SQL driver to write to the database.
func (m Month) Value() (driver.Value, error) {
	if m.IsZero() {
		return nil, nil
	}

	return m.String(), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Month) GormDataType() string {
	return "text"
}
