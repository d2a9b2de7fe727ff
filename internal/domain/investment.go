package domain

import "errors"

var (
	ErrBucketNotFound     = errors.New("investment bucket not found")
	ErrBucketNameEmpty    = errors.New("investment bucket name is required")
	ErrBucketKindInvalid  = errors.New("invalid account kind")
	ErrBucketOwnerMissing = errors.New("restricted bucket requires an owner")
)

// AccountKind classifies an investment bucket's tax treatment.
type AccountKind string

const (
	AccountTaxFree      AccountKind = "tax_free"
	AccountTaxDeferred  AccountKind = "tax_deferred"
	AccountUnrestricted AccountKind = "unrestricted"
)

func (k AccountKind) Valid() bool {
	switch k {
	case AccountTaxFree, AccountTaxDeferred, AccountUnrestricted:
		return true
	}
	return false
}

// Restricted reports whether contributions to this kind consume
// contribution room.
func (k AccountKind) Restricted() bool {
	return k == AccountTaxFree || k == AccountTaxDeferred
}

// InvestmentBucket is one investment account. Restricted kinds carry an
// owner whose room pool caps their contributions.
type InvestmentBucket struct {
	ID                  int32       `json:"id"`
	Name                string      `json:"name"`
	Kind                AccountKind `json:"kind"`
	OwnerID             *int32      `json:"ownerId,omitempty"`
	StartingBalance     Cents       `json:"startingBalance"`
	MonthlyContribution Cents       `json:"monthlyContribution"`
	// Recurring marks the contribution as repeating monthly. Non-recurring
	// contributions are excluded from every monthly total.
	Recurring    bool        `json:"recurring"`
	StartDate    string      `json:"startDate,omitempty"` // "YYYY-MM", empty = timeline start
	AnnualReturn BasisPoints `json:"annualReturn"`
	// Backfill records contributions already made outside the plan, per
	// year. They consume room but never touch cashflow or growth.
	Backfill map[int]Cents `json:"backfill,omitempty"`
}

func (b *InvestmentBucket) Validate() error {
	if b.Name == "" {
		return ErrBucketNameEmpty
	}
	if len(b.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if !b.Kind.Valid() {
		return ErrBucketKindInvalid
	}
	if b.Kind.Restricted() && b.OwnerID == nil {
		return ErrBucketOwnerMissing
	}
	return nil
}

// StartOffset returns the month index at which the bucket begins
// contributing, relative to the timeline anchor.
func (b *InvestmentBucket) StartOffset(current YearMonth) int {
	return startOffset(b.StartDate, current)
}

// PlannedMonthly is the bucket's baseline monthly cashflow. Non-recurring
// contributions never enter the monthly plan.
func (b *InvestmentBucket) PlannedMonthly() Cents {
	if !b.Recurring {
		return 0
	}
	return b.MonthlyContribution
}
