package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date is a plain calendar date with no time or timezone component. Qoyod
// returns dates both bare ("2024-03-05") and with a time suffix; only the
// calendar day matters for bonus attribution, so the suffix is dropped rather
// than converted.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses the leading YYYY-MM-DD of a date string. Unparseable or
// empty input yields the zero Date.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Equal reports whether two dates are the same calendar day.
func (d Date) Equal(o Date) bool {
	return d == o
}

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool {
	if d.Year != o.Year {
		return d.Year > o.Year
	}
	if d.Month != o.Month {
		return d.Month > o.Month
	}
	return d.Day > o.Day
}

// String formats the date as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a date string in any format ParseDate handles, plus
// null.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("unmarshaling date: %w", err)
	}
	if s == nil {
		*d = Date{}
		return nil
	}
	*d = ParseDate(*s)
	return nil
}

// Period is a target calendar month.
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses a YYYY-MM string.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// Contains reports whether the date falls inside the period. The zero Date is
// never contained.
func (p Period) Contains(d Date) bool {
	return !d.IsZero() && d.Year == p.Year && d.Month == p.Month
}

// Start returns the first day of the month.
func (p Period) Start() Date {
	return Date{Year: p.Year, Month: p.Month, Day: 1}
}

// End returns the last day of the month.
func (p Period) End() Date {
	t := time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// String formats the period as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// MarshalJSON encodes the period as a "YYYY-MM" string.
func (p Period) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts a "YYYY-MM" string.
func (p *Period) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("unmarshaling period: %w", err)
	}
	parsed, err := ParsePeriod(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
