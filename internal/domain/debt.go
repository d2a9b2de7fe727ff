package domain

import (
	"encoding/json"
	"errors"
)

var (
	ErrDebtNotFound    = errors.New("debt loan not found")
	ErrDebtNameEmpty   = errors.New("debt loan name is required")
	ErrDebtPlanMissing = errors.New("debt payoff plan is required")
	ErrDebtPlanInvalid = errors.New("invalid debt payoff plan")
)

// PayoffPlan is the debt's payoff mode. Exactly one variant applies;
// calculators switch exhaustively on the concrete type.
type PayoffPlan interface {
	isPayoffPlan()
}

// FixedPaymentPlan pays a constant amount every month.
type FixedPaymentPlan struct {
	Payment Cents
}

func (FixedPaymentPlan) isPayoffPlan() {}

// TargetDatePlan derives the monthly payment from a desired payoff month.
type TargetDatePlan struct {
	Date string // "YYYY-MM"
}

func (TargetDatePlan) isPayoffPlan() {}

// DebtLoan is an amortizing debt. The balance never goes below zero;
// underpayment relative to interest grows it (negative amortization).
type DebtLoan struct {
	ID         int32
	Name       string
	Balance    Cents
	AnnualRate BasisPoints
	StartDate  string // "YYYY-MM", empty = already originated
	Plan       PayoffPlan
}

func (d *DebtLoan) Validate() error {
	if d.Name == "" {
		return ErrDebtNameEmpty
	}
	if len(d.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if d.Plan == nil {
		return ErrDebtPlanMissing
	}
	return nil
}

// StartOffset returns the origination month index relative to the timeline
// anchor. Months before it do not exist for amortization purposes.
func (d *DebtLoan) StartOffset(current YearMonth) int {
	return startOffset(d.StartDate, current)
}

const (
	planKindFixedPayment = "fixed_payment"
	planKindTargetDate   = "target_date"
)

type debtLoanJSON struct {
	ID         int32       `json:"id"`
	Name       string      `json:"name"`
	Balance    Cents       `json:"balance"`
	AnnualRate BasisPoints `json:"annualRate"`
	StartDate  string      `json:"startDate,omitempty"`
	PlanKind   string      `json:"planKind"`
	Payment    Cents       `json:"payment,omitempty"`
	TargetDate string      `json:"targetDate,omitempty"`
}

// MarshalJSON flattens the payoff-plan variant into a tagged form.
func (d DebtLoan) MarshalJSON() ([]byte, error) {
	out := debtLoanJSON{
		ID:         d.ID,
		Name:       d.Name,
		Balance:    d.Balance,
		AnnualRate: d.AnnualRate,
		StartDate:  d.StartDate,
	}
	switch p := d.Plan.(type) {
	case FixedPaymentPlan:
		out.PlanKind = planKindFixedPayment
		out.Payment = p.Payment
	case TargetDatePlan:
		out.PlanKind = planKindTargetDate
		out.TargetDate = p.Date
	default:
		return nil, ErrDebtPlanMissing
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds the payoff-plan variant from its tagged form.
func (d *DebtLoan) UnmarshalJSON(data []byte) error {
	var in debtLoanJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	d.ID = in.ID
	d.Name = in.Name
	d.Balance = in.Balance
	d.AnnualRate = in.AnnualRate
	d.StartDate = in.StartDate
	switch in.PlanKind {
	case planKindFixedPayment:
		d.Plan = FixedPaymentPlan{Payment: in.Payment}
	case planKindTargetDate:
		d.Plan = TargetDatePlan{Date: in.TargetDate}
	default:
		return ErrDebtPlanInvalid
	}
	return nil
}
