package domain

import "github.com/shopspring/decimal"

// Cents is a monetary amount in integer cents. Every stored monetary field
// in the system is Cents; decimal.Decimal appears only in intermediate rate
// math and is rounded back immediately.
type Cents int64

// NewCents wraps a raw cent count.
func NewCents(v int64) Cents {
	return Cents(v)
}

// CentsFromDecimal rounds a decimal cent amount half-up to whole cents.
func CentsFromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Round(0).IntPart())
}

// Decimal returns the amount as a decimal cent count for rate math.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(c))
}

func (c Cents) IsZero() bool     { return c == 0 }
func (c Cents) IsPositive() bool { return c > 0 }
func (c Cents) IsNegative() bool { return c < 0 }

// String renders the amount in whole currency units, e.g. "1234.50".
func (c Cents) String() string {
	return decimal.New(int64(c), -2).StringFixed(2)
}

// MinCents returns the smaller of two amounts.
func MinCents(a, b Cents) Cents {
	if a < b {
		return a
	}
	return b
}

// MaxCents returns the larger of two amounts.
func MaxCents(a, b Cents) Cents {
	if a > b {
		return a
	}
	return b
}

// BasisPoints is an annual rate in integer basis points (500 = 5.00%).
type BasisPoints int64

// AnnualDecimal returns the rate as a decimal fraction (500 -> 0.05).
func (b BasisPoints) AnnualDecimal() decimal.Decimal {
	return decimal.New(int64(b), -4)
}

// MonthlyDecimal returns the simple monthly rate, annual divided by twelve.
func (b BasisPoints) MonthlyDecimal() decimal.Decimal {
	return b.AnnualDecimal().Div(decimal.NewFromInt(12))
}

func (b BasisPoints) IsZero() bool { return b == 0 }
