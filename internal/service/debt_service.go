package service

import (
	"github.com/dafibh/horizon/horizon-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// effectiveStart resolves an optional "YYYY-MM" start date against the
// timeline anchor. Empty or malformed dates mean the entity is already
// active.
func effectiveStart(date string, current domain.YearMonth) domain.YearMonth {
	if date == "" {
		return current
	}
	ym, err := domain.ParseYearMonth(date)
	if err != nil {
		return current
	}
	return ym
}

// ComputeMonthlyPayment derives the planned monthly payment for a debt.
// Fixed-payment plans return the configured payment unchanged. Target-date
// plans solve the standard annuity formula P = r*PV / (1 - (1+r)^-n) over
// the months between the debt's effective start and the target date,
// floored at one month, falling back to straight-line division when the
// rate is (near) zero or the denominator degenerates. Non-positive
// balances and missing or unparseable target dates degrade to zero; this
// never panics.
func ComputeMonthlyPayment(debt *domain.DebtLoan, monthlyRate decimal.Decimal, current domain.YearMonth) domain.Cents {
	if !debt.Balance.IsPositive() {
		return 0
	}
	switch plan := debt.Plan.(type) {
	case domain.FixedPaymentPlan:
		return plan.Payment
	case domain.TargetDatePlan:
		target, err := domain.ParseYearMonth(plan.Date)
		if err != nil {
			return 0
		}
		months := domain.MonthsBetween(effectiveStart(debt.StartDate, current), target)
		if months < 1 {
			months = 1
		}
		return annuityPayment(debt.Balance, monthlyRate, months)
	default:
		return 0
	}
}

// MonthlyPaymentForDebt derives the monthly rate from the debt's APR and
// computes the payment. UI previews call this with transiently invalid
// data, so every internal failure collapses to zero.
func MonthlyPaymentForDebt(debt *domain.DebtLoan, current domain.YearMonth) domain.Cents {
	if debt == nil || debt.Plan == nil {
		return 0
	}
	return ComputeMonthlyPayment(debt, debt.AnnualRate.MonthlyDecimal(), current)
}

// annuityPayment solves P = r*PV / (1 - (1+r)^-n).
func annuityPayment(balance domain.Cents, monthlyRate decimal.Decimal, months int) domain.Cents {
	pv := balance.Decimal()
	n := decimal.NewFromInt(int64(months))
	if monthlyRate.Abs().LessThan(decimal.New(1, -9)) {
		return domain.CentsFromDecimal(pv.Div(n))
	}
	pow := decimal.NewFromInt(1).Add(monthlyRate).Pow(n)
	denominator := decimal.NewFromInt(1).Sub(decimal.NewFromInt(1).Div(pow))
	if !denominator.IsPositive() {
		return domain.CentsFromDecimal(pv.Div(n))
	}
	return domain.CentsFromDecimal(pv.Mul(monthlyRate).Div(denominator))
}

// DebtSchedulePoint is one month of an amortization schedule. Balance is
// the ending balance for the month.
type DebtSchedulePoint struct {
	Payment   domain.Cents `json:"payment"`
	Interest  domain.Cents `json:"interest"`
	Principal domain.Cents `json:"principal"`
	Balance   domain.Cents `json:"balance"`
}

// DebtSchedule is a month-by-month amortization projection. PayoffMonth is
// nil while the balance never reaches zero within the schedule.
type DebtSchedule struct {
	Points      []DebtSchedulePoint `json:"points"`
	PayoffMonth *int                `json:"payoffMonth"`
}

// BuildDebtSchedule amortizes a debt over the horizon with the payment the
// payoff plan implies, computed once up front. Months before the debt's
// start offset do not exist for amortization: zero payment, zero interest,
// zero balance, never marked paid off.
func BuildDebtSchedule(debt *domain.DebtLoan, current domain.YearMonth, horizonYears int) *DebtSchedule {
	months := horizonYears * 12
	rate := debt.AnnualRate.MonthlyDecimal()
	payment := ComputeMonthlyPayment(debt, rate, current)
	offset := debt.StartOffset(current)

	schedule := &DebtSchedule{Points: make([]DebtSchedulePoint, 0, months+1)}
	var balance domain.Cents
	originated := false
	for m := 0; m <= months; m++ {
		if !originated && m >= offset {
			originated = true
			balance = domain.MaxCents(0, debt.Balance)
		}
		if !originated {
			schedule.Points = append(schedule.Points, DebtSchedulePoint{})
			continue
		}
		interest := domain.CentsFromDecimal(balance.Decimal().Mul(rate))
		applied := domain.MinCents(payment, balance+interest)
		if applied.IsNegative() {
			applied = 0
		}
		ending := domain.MaxCents(0, balance+interest-applied)
		schedule.Points = append(schedule.Points, DebtSchedulePoint{
			Payment:   applied,
			Interest:  interest,
			Principal: applied - interest,
			Balance:   ending,
		})
		if ending.IsZero() && schedule.PayoffMonth == nil {
			idx := m
			schedule.PayoffMonth = &idx
		}
		balance = ending
	}
	return schedule
}

// PaymentDrivenSchedule is an amortization projection driven by an
// externally supplied payment stream. Unallocated holds the cents the
// stream offered that the debt could not absorb each month.
type PaymentDrivenSchedule struct {
	Points      []DebtSchedulePoint `json:"points"`
	Unallocated []domain.Cents      `json:"unallocated"`
	PayoffMonth *int                `json:"payoffMonth"`
}

// BuildDebtScheduleFromPayments amortizes a debt against a per-month
// payment stream, typically the timeline engine's output with redirects
// already folded in. Pre-payment of a future-start debt is disallowed:
// everything offered before origination is unallocated. Once originated,
// interest accrues first, the applied payment is capped at balance plus
// interest, and any excess is unallocated. Underpaying the interest due
// grows the balance.
func BuildDebtScheduleFromPayments(debt *domain.DebtLoan, current domain.YearMonth, payments []domain.Cents) *PaymentDrivenSchedule {
	rate := debt.AnnualRate.MonthlyDecimal()
	offset := debt.StartOffset(current)

	schedule := &PaymentDrivenSchedule{
		Points:      make([]DebtSchedulePoint, len(payments)),
		Unallocated: make([]domain.Cents, len(payments)),
	}
	var balance domain.Cents
	originated := false
	for m, supplied := range payments {
		if !originated && m >= offset {
			originated = true
			balance = domain.MaxCents(0, debt.Balance)
		}
		if !originated {
			schedule.Unallocated[m] = domain.MaxCents(0, supplied)
			continue
		}
		interest := domain.CentsFromDecimal(balance.Decimal().Mul(rate))
		applied := domain.MinCents(supplied, balance+interest)
		if applied.IsNegative() {
			applied = 0
		}
		schedule.Unallocated[m] = domain.MaxCents(0, supplied-applied)
		ending := domain.MaxCents(0, balance+interest-applied)
		schedule.Points[m] = DebtSchedulePoint{
			Payment:   applied,
			Interest:  interest,
			Principal: applied - interest,
			Balance:   ending,
		}
		if ending.IsZero() && schedule.PayoffMonth == nil {
			idx := m
			schedule.PayoffMonth = &idx
		}
		balance = ending
	}
	return schedule
}
