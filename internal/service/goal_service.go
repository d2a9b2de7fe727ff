package service

import (
	"github.com/dafibh/horizon/horizon-backend/internal/domain"
)

// GoalPoint is one month of a goal projection. ContributedPrincipal is the
// starting balance plus every contribution so far.
type GoalPoint struct {
	Balance              domain.Cents `json:"balance"`
	Contribution         domain.Cents `json:"contribution"`
	ContributedPrincipal domain.Cents `json:"contributedPrincipal"`
	Reached              bool         `json:"reached"`
}

// GoalProjection is a month-by-month goal balance projection. Point zero is
// the opening state; point k is the state after k contributing months.
// ReachedMonth is nil while the target is never reached (always nil for
// zero-target goals).
type GoalProjection struct {
	Points       []GoalPoint `json:"points"`
	ReachedMonth *int        `json:"reachedMonth"`
}

// ProjectGoalFund grows a goal balance with monthly contributions. Growth
// compounds before the contribution lands. A positive target trims the
// final contribution to hit the target exactly; from that month on,
// contributions and growth both stop. A zero target never stops.
func ProjectGoalFund(goal *domain.GoalFund, current domain.YearMonth, months int) *GoalProjection {
	offset := goal.StartOffset(current)
	rate := goal.AnnualReturn.MonthlyDecimal()

	projection := &GoalProjection{Points: make([]GoalPoint, 0, months+1)}
	balance := goal.Balance
	principal := goal.Balance
	reached := goal.Target.IsPositive() && balance >= goal.Target
	if reached {
		idx := 0
		projection.ReachedMonth = &idx
	}
	projection.Points = append(projection.Points, GoalPoint{
		Balance:              balance,
		ContributedPrincipal: principal,
		Reached:              reached,
	})

	for k := 1; k <= months; k++ {
		var contribution domain.Cents
		if !reached && k-1 >= offset {
			balance += domain.CentsFromDecimal(balance.Decimal().Mul(rate))
			contribution = goal.MonthlyContribution
			if goal.Target.IsPositive() {
				contribution = domain.MinCents(contribution, domain.MaxCents(0, goal.Target-balance))
			}
			balance += contribution
			principal += contribution
		}
		if goal.Target.IsPositive() && balance >= goal.Target && !reached {
			reached = true
			idx := k
			projection.ReachedMonth = &idx
		}
		projection.Points = append(projection.Points, GoalPoint{
			Balance:              balance,
			Contribution:         contribution,
			ContributedPrincipal: principal,
			Reached:              reached,
		})
	}
	return projection
}

// GoalMonthlyForTargetDate solves the contribution that lands the goal on
// its target by its target date: ceil(remaining / months to target), months
// floored at one. Zero when nothing remains or the target date is missing
// or malformed.
func GoalMonthlyForTargetDate(goal *domain.GoalFund, current domain.YearMonth) domain.Cents {
	remaining := goal.Remaining()
	if !remaining.IsPositive() {
		return 0
	}
	target, err := domain.ParseYearMonth(goal.TargetDate)
	if err != nil {
		return 0
	}
	months := domain.MonthsBetween(effectiveStart(goal.StartDate, current), target)
	if months < 1 {
		months = 1
	}
	return ceilDivCents(remaining, months)
}

// GoalTargetDateForMonthly solves the implied target date for the goal's
// monthly contribution: start plus ceil(remaining / monthly) months. The
// second return is false when the contribution is non-positive while an
// amount remains, which can never converge.
func GoalTargetDateForMonthly(goal *domain.GoalFund, current domain.YearMonth) (domain.YearMonth, bool) {
	start := effectiveStart(goal.StartDate, current)
	remaining := goal.Remaining()
	if !remaining.IsPositive() {
		return start, true
	}
	if !goal.MonthlyContribution.IsPositive() {
		return domain.YearMonth{}, false
	}
	months := int((remaining + goal.MonthlyContribution - 1) / goal.MonthlyContribution)
	return start.AddMonths(months), true
}

func ceilDivCents(amount domain.Cents, months int) domain.Cents {
	n := domain.Cents(months)
	return (amount + n - 1) / n
}
