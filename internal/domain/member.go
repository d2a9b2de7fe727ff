package domain

import "errors"

var (
	ErrMemberNotFound       = errors.New("household member not found")
	ErrMemberNameEmpty      = errors.New("member name is required")
	ErrMemberIncomeNegative = errors.New("member income must not be negative")
)

// HouseholdMember is a person in the household. Restricted investment
// buckets belong to exactly one member, and contribution room accrues per
// member and per account kind.
type HouseholdMember struct {
	ID           int32  `json:"id"`
	Name         string `json:"name"`
	AnnualIncome Cents  `json:"annualIncome"`

	// TaxFreeRoom holds the entered room amount per calendar year.
	TaxFreeRoom map[int]Cents `json:"taxFreeRoom,omitempty"`
	// TaxDeferredAnnualRoom is the single annual room figure for the
	// tax-deferred kind.
	TaxDeferredAnnualRoom Cents `json:"taxDeferredAnnualRoom"`
}

func (m *HouseholdMember) Validate() error {
	if m.Name == "" {
		return ErrMemberNameEmpty
	}
	if len(m.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if m.AnnualIncome.IsNegative() {
		return ErrMemberIncomeNegative
	}
	return nil
}
