package service

import (
	"github.com/dafibh/horizon/horizon-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxBracket is one progressive bracket: Rate applies to income above
// Threshold, up to the next bracket's threshold.
type TaxBracket struct {
	Threshold domain.Cents       `json:"threshold"`
	Rate      domain.BasisPoints `json:"rate"`
}

// DefaultTaxBrackets is the built-in progressive table used when no
// override is configured.
var DefaultTaxBrackets = []TaxBracket{
	{Threshold: 0, Rate: 1500},
	{Threshold: 5_586_700, Rate: 2050},
	{Threshold: 11_173_300, Rate: 2600},
	{Threshold: 17_320_500, Rate: 2900},
	{Threshold: 24_675_200, Rate: 3300},
}

// TaxService estimates net income from a progressive bracket table. It is
// a pure formula lookup consumed only by the dashboard; the timeline
// engine never reads its output.
type TaxService struct {
	brackets []TaxBracket
}

// NewTaxService creates a TaxService. A nil or empty table falls back to
// DefaultTaxBrackets.
func NewTaxService(brackets []TaxBracket) *TaxService {
	if len(brackets) == 0 {
		brackets = DefaultTaxBrackets
	}
	return &TaxService{brackets: brackets}
}

// EstimateAnnualTax walks the bracket table over an annual income.
func (s *TaxService) EstimateAnnualTax(income domain.Cents) domain.Cents {
	if !income.IsPositive() {
		return 0
	}
	tax := decimal.Zero
	for i, bracket := range s.brackets {
		if income <= bracket.Threshold {
			break
		}
		upper := income
		if i+1 < len(s.brackets) {
			upper = domain.MinCents(income, s.brackets[i+1].Threshold)
		}
		taxable := (upper - bracket.Threshold).Decimal()
		tax = tax.Add(taxable.Mul(bracket.Rate.AnnualDecimal()))
	}
	return domain.CentsFromDecimal(tax)
}

// EstimateNetMonthlyIncome converts an annual employment income into the
// single net monthly figure the dashboard consumes.
func (s *TaxService) EstimateNetMonthlyIncome(annual domain.Cents) domain.Cents {
	net := annual - s.EstimateAnnualTax(annual)
	return domain.CentsFromDecimal(net.Decimal().Div(decimal.NewFromInt(12)))
}
