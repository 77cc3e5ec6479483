package domain

import (
	"fmt"
	"time"
)

// Month identifies a calendar month. It is comparable and safe to use
// as a map key. The zero value is not a valid month.
type Month struct {
	Year int
	Mon  time.Month
}

// NewMonth builds a Month from a year and month number.
func NewMonth(year int, mon time.Month) Month {
	return Month{Year: year, Mon: mon}
}

// MonthOf truncates a time to its calendar month.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Mon: t.Month()}
}

// ParseMonth accepts "YYYY-MM" or a first-of-month ISO date "YYYY-MM-DD".
func ParseMonth(value string) (Month, error) {
	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return MonthOf(t), nil
		}
	}
	return Month{}, fmt.Errorf("parse month %q: expected YYYY-MM or YYYY-MM-DD", value)
}

// IsZero reports whether m is the zero value.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Mon == 0
}

// String renders the first-of-month ISO date, e.g. "2006-01-01".
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d-01", m.Year, int(m.Mon))
}

// AddMonths returns the month n calendar months after m.
func (m Month) AddMonths(n int) Month {
	t := time.Date(m.Year, m.Mon, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return MonthOf(t)
}

// DeltaMonths returns the signed number of calendar months from prev to m.
func (m Month) DeltaMonths(prev Month) int {
	return (m.Year-prev.Year)*12 + int(m.Mon) - int(prev.Mon)
}

// YearEarlier returns the same calendar month one year before m.
func (m Month) YearEarlier() Month {
	return Month{Year: m.Year - 1, Mon: m.Mon}
}

// Before reports whether m is strictly earlier than other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Mon < other.Mon
}

// MarshalJSON renders the month as a first-of-month ISO date string.
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM" or "YYYY-MM-DD" strings.
func (m *Month) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("parse month: expected JSON string, got %s", string(data))
	}
	parsed, err := ParseMonth(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
