package domain

import (
	"errors"
	"fmt"
	"time"
)

const yearMonthLayout = "2006-01"

var ErrInvalidYearMonth = errors.New("invalid year-month")

// YearMonth identifies one calendar month. Day-of-month is never
// significant anywhere in the engine.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth builds a YearMonth from its parts.
func NewYearMonth(year int, month time.Month) YearMonth {
	return YearMonth{Year: year, Month: month}
}

// CurrentYearMonth returns the month containing t.
func CurrentYearMonth(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses a "YYYY-MM" string.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(yearMonthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// MustParseYearMonth panics on malformed input. Date strings are validated
// upstream; one reaching this point unparsed is a programmer error.
func MustParseYearMonth(s string) YearMonth {
	ym, err := ParseYearMonth(s)
	if err != nil {
		panic(err)
	}
	return ym
}

func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// AddMonths returns the month n months after ym (n may be negative).
func (ym YearMonth) AddMonths(n int) YearMonth {
	total := ym.Year*12 + int(ym.Month) - 1 + n
	return YearMonth{Year: total / 12, Month: time.Month(total%12 + 1)}
}

func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Year < other.Year || (ym.Year == other.Year && ym.Month < other.Month)
}

func (ym YearMonth) After(other YearMonth) bool {
	return other.Before(ym)
}

// MonthsBetween returns to minus from in whole months; negative when to
// precedes from.
func MonthsBetween(from, to YearMonth) int {
	return (to.Year-from.Year)*12 + int(to.Month) - int(from.Month)
}

// MarshalJSON encodes the month as its "YYYY-MM" string form.
func (ym YearMonth) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ym.String() + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM" string.
func (ym *YearMonth) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidYearMonth, s)
	}
	parsed, err := ParseYearMonth(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}

// startOffset converts an optional "YYYY-MM" start date into a non-negative
// month index relative to the anchor. An empty, unparseable, or past date
// means "already started".
func startOffset(date string, current YearMonth) int {
	if date == "" {
		return 0
	}
	ym, err := ParseYearMonth(date)
	if err != nil {
		return 0
	}
	n := MonthsBetween(current, ym)
	if n < 0 {
		return 0
	}
	return n
}
