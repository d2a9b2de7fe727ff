package domain

import "errors"

var (
	ErrRuleSourceInvalid      = errors.New("invalid redirect rule source")
	ErrRuleDestinationInvalid = errors.New("invalid redirect rule destination")
)

// RedirectSourceKind identifies which ceiling freed the money.
type RedirectSourceKind string

const (
	SourceGoalFund       RedirectSourceKind = "goal_fund"
	SourceDebtLoan       RedirectSourceKind = "debt_loan"
	SourceRegisteredRoom RedirectSourceKind = "registered_room"
)

func (k RedirectSourceKind) Valid() bool {
	switch k {
	case SourceGoalFund, SourceDebtLoan, SourceRegisteredRoom:
		return true
	}
	return false
}

// RedirectDestinationKind identifies where freed money is routed.
type RedirectDestinationKind string

const (
	DestGoalFund         RedirectDestinationKind = "goal_fund"
	DestInvestmentBucket RedirectDestinationKind = "investment_bucket"
	DestDebtLoan         RedirectDestinationKind = "debt_loan"
	DestUnallocated      RedirectDestinationKind = "unallocated"
)

func (k RedirectDestinationKind) Valid() bool {
	switch k {
	case DestGoalFund, DestInvestmentBucket, DestDebtLoan, DestUnallocated:
		return true
	}
	return false
}

// RedirectRule maps one ceiling source to one destination for its freed
// cents. The rule editor keeps at most one rule per (sourceKind, sourceId);
// the engine takes the first match and treats duplicates as an upstream
// concern, not an error.
type RedirectRule struct {
	ID              int32                   `json:"id"`
	SourceKind      RedirectSourceKind      `json:"sourceKind"`
	SourceID        int32                   `json:"sourceId"`
	DestinationKind RedirectDestinationKind `json:"destinationKind"`
	DestinationID   *int32                  `json:"destinationId,omitempty"`
}

func (r *RedirectRule) Validate() error {
	if !r.SourceKind.Valid() {
		return ErrRuleSourceInvalid
	}
	if !r.DestinationKind.Valid() {
		return ErrRuleDestinationInvalid
	}
	if r.DestinationKind != DestUnallocated && r.DestinationID == nil {
		return ErrRuleDestinationInvalid
	}
	return nil
}
