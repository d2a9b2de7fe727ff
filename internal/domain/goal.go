package domain

import "errors"

var (
	ErrGoalNotFound       = errors.New("goal fund not found")
	ErrGoalNameEmpty      = errors.New("goal fund name is required")
	ErrGoalTargetNegative = errors.New("goal target must not be negative")
)

// GoalFund is a savings goal. A zero target means the goal is open-ended
// and contributions never stop; a positive target caps the balance exactly,
// with the final contribution trimmed to land on it.
type GoalFund struct {
	ID                  int32       `json:"id"`
	Name                string      `json:"name"`
	Target              Cents       `json:"target"`
	Balance             Cents       `json:"balance"`
	AnnualReturn        BasisPoints `json:"annualReturn"`
	MonthlyContribution Cents       `json:"monthlyContribution"`
	StartDate           string      `json:"startDate,omitempty"`  // "YYYY-MM"
	TargetDate          string      `json:"targetDate,omitempty"` // "YYYY-MM"
}

func (g *GoalFund) Validate() error {
	if g.Name == "" {
		return ErrGoalNameEmpty
	}
	if len(g.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if g.Target.IsNegative() {
		return ErrGoalTargetNegative
	}
	return nil
}

// StartOffset returns the month index at which the goal starts, relative to
// the timeline anchor.
func (g *GoalFund) StartOffset(current YearMonth) int {
	return startOffset(g.StartDate, current)
}

// Remaining is the distance from the current balance to the target, floored
// at zero. Zero-target goals report zero remaining.
func (g *GoalFund) Remaining() Cents {
	if !g.Target.IsPositive() {
		return 0
	}
	return MaxCents(0, g.Target-g.Balance)
}
