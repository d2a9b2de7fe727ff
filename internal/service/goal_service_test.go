package service

import (
	"testing"

	"github.com/dafibh/horizon/horizon-backend/internal/domain"
)

func TestProjectGoalFund_TrimsOvershoot(t *testing.T) {
	goal := &domain.GoalFund{
		ID:                  1,
		Name:                "Vacation",
		Target:              100_000,
		MonthlyContribution: 60_000,
	}

	projection := ProjectGoalFund(goal, jan2025, 4)

	if projection.Points[0].Balance != 0 {
		t.Errorf("Point 0 is the opening state, got balance %d", projection.Points[0].Balance)
	}
	if projection.Points[1].Balance != 60_000 || projection.Points[1].Contribution != 60_000 {
		t.Errorf("Point 1: got balance %d, contribution %d", projection.Points[1].Balance, projection.Points[1].Contribution)
	}
	// The final contribution trims to land exactly on the target
	if projection.Points[2].Balance != 100_000 || projection.Points[2].Contribution != 40_000 {
		t.Errorf("Point 2: got balance %d, contribution %d", projection.Points[2].Balance, projection.Points[2].Contribution)
	}
	if !projection.Points[2].Reached {
		t.Error("Expected reached at point 2")
	}
	if projection.ReachedMonth == nil || *projection.ReachedMonth != 2 {
		t.Errorf("Expected reached month 2, got %v", projection.ReachedMonth)
	}
	// Contributions and growth stop once the target is reached
	if projection.Points[3].Balance != 100_000 || projection.Points[3].Contribution != 0 {
		t.Errorf("Point 3: got balance %d, contribution %d", projection.Points[3].Balance, projection.Points[3].Contribution)
	}
}

func TestProjectGoalFund_ContributedPrincipal(t *testing.T) {
	goal := &domain.GoalFund{
		ID:                  1,
		Name:                "Nest Egg",
		Balance:             50_000,
		AnnualReturn:        1200, // 1% monthly
		MonthlyContribution: 10_000,
	}

	projection := ProjectGoalFund(goal, jan2025, 2)

	// Growth compounds before the contribution lands
	if projection.Points[1].Balance != 60_500 {
		t.Errorf("Point 1: expected balance 60500, got %d", projection.Points[1].Balance)
	}
	if projection.Points[1].ContributedPrincipal != 60_000 {
		t.Errorf("Point 1: expected principal 60000, got %d", projection.Points[1].ContributedPrincipal)
	}
	if projection.Points[2].ContributedPrincipal != 70_000 {
		t.Errorf("Point 2: expected principal 70000, got %d", projection.Points[2].ContributedPrincipal)
	}
}

func TestProjectGoalFund_AlreadyAtTarget(t *testing.T) {
	goal := &domain.GoalFund{
		ID:                  1,
		Name:                "Done",
		Target:              100_000,
		Balance:             100_000,
		MonthlyContribution: 10_000,
	}

	projection := ProjectGoalFund(goal, jan2025, 3)

	if projection.ReachedMonth == nil || *projection.ReachedMonth != 0 {
		t.Errorf("Expected reached month 0, got %v", projection.ReachedMonth)
	}
	for k, p := range projection.Points {
		if p.Contribution != 0 || p.Balance != 100_000 {
			t.Errorf("Point %d: got contribution %d, balance %d", k, p.Contribution, p.Balance)
		}
	}
}

func TestProjectGoalFund_ZeroTargetNeverStops(t *testing.T) {
	goal := &domain.GoalFund{
		ID:                  1,
		Name:                "Open-Ended",
		MonthlyContribution: 10_000,
	}

	projection := ProjectGoalFund(goal, jan2025, 24)

	if projection.ReachedMonth != nil {
		t.Errorf("Zero-target goals are never reached, got month %d", *projection.ReachedMonth)
	}
	if projection.Points[24].Balance != 240_000 {
		t.Errorf("Expected balance 240000, got %d", projection.Points[24].Balance)
	}
}

func TestGoalMonthlyForTargetDate(t *testing.T) {
	goal := &domain.GoalFund{
		ID:         1,
		Name:       "Down Payment",
		Target:     100_000,
		TargetDate: "2025-11",
	}

	// $1000 remaining over 10 months
	if got := GoalMonthlyForTargetDate(goal, jan2025); got != 10_000 {
		t.Errorf("Expected 10000, got %d", got)
	}

	// Remainders round up so the goal lands on or before the date
	goal.Target = 100_001
	if got := GoalMonthlyForTargetDate(goal, jan2025); got != 10_001 {
		t.Errorf("Expected 10001, got %d", got)
	}

	goal.Balance = goal.Target
	if got := GoalMonthlyForTargetDate(goal, jan2025); got != 0 {
		t.Errorf("Nothing remaining: expected 0, got %d", got)
	}
}

func TestGoalTargetDateForMonthly(t *testing.T) {
	goal := &domain.GoalFund{
		ID:                  1,
		Name:                "Down Payment",
		Target:              100_000,
		MonthlyContribution: 30_000,
	}

	date, ok := GoalTargetDateForMonthly(goal, jan2025)
	if !ok {
		t.Fatal("Expected a reachable date")
	}
	// ceil(1000 / 300) = 4 months out
	if date.String() != "2025-05" {
		t.Errorf("Expected 2025-05, got %s", date)
	}
}

func TestGoalTargetDateForMonthly_Unreachable(t *testing.T) {
	goal := &domain.GoalFund{
		ID:     1,
		Name:   "Stalled",
		Target: 100_000,
	}

	if _, ok := GoalTargetDateForMonthly(goal, jan2025); ok {
		t.Error("Zero contribution with a remaining amount can never converge")
	}
}
