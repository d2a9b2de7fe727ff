package service

import (
	"testing"

	"github.com/dafibh/horizon/horizon-backend/internal/domain"
)

func resolverSession(rules []*domain.RedirectRule) *domain.Session {
	ownerID := int32(1)
	return &domain.Session{
		Members: []*domain.HouseholdMember{{ID: 1, Name: "Alex"}},
		Buckets: []*domain.InvestmentBucket{{ID: 10, Name: "TFSA", Kind: domain.AccountTaxFree, OwnerID: &ownerID}},
		Goals:   []*domain.GoalFund{{ID: 20, Name: "Vacation"}},
		Debts:   []*domain.DebtLoan{{ID: 30, Name: "Car", Plan: domain.FixedPaymentPlan{Payment: 10_000}}},
		Rules:   rules,
	}
}

func TestResolve_NoRuleFallsBackToUnallocated(t *testing.T) {
	resolver := NewRedirectResolver(resolverSession(nil))

	dest := resolver.Resolve(CeilingEvent{SourceKind: domain.SourceGoalFund, SourceID: 20, Freed: 5_000})
	if dest.Kind != domain.DestUnallocated {
		t.Errorf("Expected unallocated, got %s", dest.Kind)
	}
}

func TestResolve_MatchesRule(t *testing.T) {
	debtID := int32(30)
	resolver := NewRedirectResolver(resolverSession([]*domain.RedirectRule{
		{ID: 1, SourceKind: domain.SourceGoalFund, SourceID: 20, DestinationKind: domain.DestDebtLoan, DestinationID: &debtID},
	}))

	dest := resolver.Resolve(CeilingEvent{SourceKind: domain.SourceGoalFund, SourceID: 20, Freed: 5_000})
	if dest.Kind != domain.DestDebtLoan || dest.ID == nil || *dest.ID != 30 {
		t.Errorf("Expected debt 30, got %+v", dest)
	}
}

func TestResolve_DanglingDestinationFallsBack(t *testing.T) {
	goneID := int32(999)
	resolver := NewRedirectResolver(resolverSession([]*domain.RedirectRule{
		{ID: 1, SourceKind: domain.SourceGoalFund, SourceID: 20, DestinationKind: domain.DestGoalFund, DestinationID: &goneID},
	}))

	dest := resolver.Resolve(CeilingEvent{SourceKind: domain.SourceGoalFund, SourceID: 20, Freed: 5_000})
	if dest.Kind != domain.DestUnallocated {
		t.Errorf("Deleted destination must fall back, got %s", dest.Kind)
	}
}

func TestResolve_FirstMatchingRuleWins(t *testing.T) {
	goalID := int32(20)
	bucketID := int32(10)
	resolver := NewRedirectResolver(resolverSession([]*domain.RedirectRule{
		{ID: 1, SourceKind: domain.SourceDebtLoan, SourceID: 30, DestinationKind: domain.DestGoalFund, DestinationID: &goalID},
		{ID: 2, SourceKind: domain.SourceDebtLoan, SourceID: 30, DestinationKind: domain.DestInvestmentBucket, DestinationID: &bucketID},
	}))

	dest := resolver.Resolve(CeilingEvent{SourceKind: domain.SourceDebtLoan, SourceID: 30, Freed: 5_000})
	if dest.Kind != domain.DestGoalFund {
		t.Errorf("Expected the first rule to win, got %s", dest.Kind)
	}
}

func TestResolve_ExplicitUnallocated(t *testing.T) {
	resolver := NewRedirectResolver(resolverSession([]*domain.RedirectRule{
		{ID: 1, SourceKind: domain.SourceRegisteredRoom, SourceID: 10, DestinationKind: domain.DestUnallocated},
	}))

	dest := resolver.Resolve(CeilingEvent{SourceKind: domain.SourceRegisteredRoom, SourceID: 10, Freed: 5_000})
	if dest.Kind != domain.DestUnallocated || dest.ID != nil {
		t.Errorf("Expected unallocated with nil id, got %+v", dest)
	}
}
