package service

import (
	"github.com/dafibh/horizon/horizon-backend/internal/domain"
)

// CeilingEvent is one "freed cents" occurrence: a ceiling reduced a
// source's planned amount for a month and the difference needs a home.
type CeilingEvent struct {
	SourceKind domain.RedirectSourceKind
	SourceID   int32
	MonthIndex int
	Freed      domain.Cents
}

// RuleIndex looks up redirect rules by their (sourceKind, sourceId) pair.
// The indexing strategy is hidden behind this interface so storage can
// change without touching resolution logic.
type RuleIndex interface {
	Find(kind domain.RedirectSourceKind, id int32) (*domain.RedirectRule, bool)
}

type ruleKey struct {
	kind domain.RedirectSourceKind
	id   int32
}

type mapRuleIndex map[ruleKey]*domain.RedirectRule

// NewRuleIndex builds a map-backed RuleIndex. When several rules share a
// source the first one wins; deduplication is the rule editor's job, not
// the engine's.
func NewRuleIndex(rules []*domain.RedirectRule) RuleIndex {
	index := make(mapRuleIndex, len(rules))
	for _, rule := range rules {
		key := ruleKey{kind: rule.SourceKind, id: rule.SourceID}
		if _, ok := index[key]; !ok {
			index[key] = rule
		}
	}
	return index
}

func (m mapRuleIndex) Find(kind domain.RedirectSourceKind, id int32) (*domain.RedirectRule, bool) {
	rule, ok := m[ruleKey{kind: kind, id: id}]
	return rule, ok
}

// Destination is a resolved redirect target. ID is nil only for the
// unallocated kind.
type Destination struct {
	Kind domain.RedirectDestinationKind
	ID   *int32
}

// RedirectResolver decides where one ceiling event's freed cents go. A
// missing rule, an explicit unallocated destination, or a destination id
// that no longer resolves to a live entity of the expected kind all fall
// back to Unallocated. Rules and entities are edited independently, so a
// dangling reference is a silent fallback, never an error.
type RedirectResolver struct {
	rules   RuleIndex
	session *domain.Session
}

// NewRedirectResolver builds a resolver over a session's rule table.
func NewRedirectResolver(session *domain.Session) *RedirectResolver {
	return &RedirectResolver{rules: NewRuleIndex(session.Rules), session: session}
}

// Resolve maps a ceiling event to its destination. The full freed amount
// always routes to a single destination; destination-specific capping is
// the engine's job.
func (r *RedirectResolver) Resolve(event CeilingEvent) Destination {
	unallocated := Destination{Kind: domain.DestUnallocated}

	rule, ok := r.rules.Find(event.SourceKind, event.SourceID)
	if !ok || rule.DestinationKind == domain.DestUnallocated || rule.DestinationID == nil {
		return unallocated
	}

	id := *rule.DestinationID
	switch rule.DestinationKind {
	case domain.DestGoalFund:
		if r.session.Goal(id) == nil {
			return unallocated
		}
	case domain.DestInvestmentBucket:
		if r.session.Bucket(id) == nil {
			return unallocated
		}
	case domain.DestDebtLoan:
		if r.session.Debt(id) == nil {
			return unallocated
		}
	default:
		return unallocated
	}
	return Destination{Kind: rule.DestinationKind, ID: rule.DestinationID}
}
