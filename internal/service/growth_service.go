package service

import (
	"github.com/dafibh/horizon/horizon-backend/internal/domain"
)

// GrowthPoint is one month of an investment projection. Balance decomposes
// as Principal + (SimpleBaseline - Principal) + CompoundDelta: Principal is
// the money put in, SimpleBaseline adds interest accrued on principal
// without compounding, and CompoundDelta is everything compounding earned
// on top. Reporting only; the timeline never consults these.
type GrowthPoint struct {
	Balance        domain.Cents `json:"balance"`
	Principal      domain.Cents `json:"principal"`
	SimpleBaseline domain.Cents `json:"simpleBaseline"`
	CompoundDelta  domain.Cents `json:"compoundDelta"`
}

// GrowthProjection is a month-by-month investment balance projection.
// Point zero is the opening state.
type GrowthProjection struct {
	Points []GrowthPoint `json:"points"`
}

// ProjectInvestmentGrowth compounds a fixed monthly contribution over the
// horizon. Contributions begin at the start offset.
func ProjectInvestmentGrowth(starting, monthly domain.Cents, rate domain.BasisPoints, months, startOffset int) *GrowthProjection {
	contributions := make([]domain.Cents, months)
	for m := range contributions {
		if m >= startOffset {
			contributions[m] = monthly
		}
	}
	return ProjectInvestmentGrowthVariable(starting, contributions, rate)
}

// ProjectInvestmentGrowthVariable compounds an externally supplied
// contribution stream, typically a timeline series with room capping and
// redirects already folded in. contributions[m] lands in point m+1, after
// that month's growth.
func ProjectInvestmentGrowthVariable(starting domain.Cents, contributions []domain.Cents, rate domain.BasisPoints) *GrowthProjection {
	monthlyRate := rate.MonthlyDecimal()

	projection := &GrowthProjection{Points: make([]GrowthPoint, 0, len(contributions)+1)}
	balance := starting
	principal := starting
	var simpleInterest domain.Cents
	projection.Points = append(projection.Points, GrowthPoint{
		Balance:        balance,
		Principal:      principal,
		SimpleBaseline: principal,
	})

	for _, contribution := range contributions {
		simpleInterest += domain.CentsFromDecimal(principal.Decimal().Mul(monthlyRate))
		balance += domain.CentsFromDecimal(balance.Decimal().Mul(monthlyRate))
		balance += contribution
		principal += contribution

		baseline := principal + simpleInterest
		projection.Points = append(projection.Points, GrowthPoint{
			Balance:        balance,
			Principal:      principal,
			SimpleBaseline: baseline,
			CompoundDelta:  balance - baseline,
		})
	}
	return projection
}
