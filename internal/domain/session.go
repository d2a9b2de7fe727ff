package domain

import (
	"errors"

	"github.com/google/uuid"
)

var ErrHorizonInvalid = errors.New("projection horizon must be between 1 and 100 years")

// Session is the immutable household snapshot the engine computes from.
// The engine never mutates it; every read recomputes the timeline in full
// and the caller discards the result on the next edit.
type Session struct {
	Members      []*HouseholdMember   `json:"members"`
	Buckets      []*InvestmentBucket  `json:"buckets"`
	Goals        []*GoalFund          `json:"goals"`
	Debts        []*DebtLoan          `json:"debts"`
	Templates    []*RecurringTemplate `json:"templates"`
	Rules        []*RedirectRule      `json:"rules"`
	HorizonYears int                  `json:"horizonYears"`
	// CurrentMonth anchors month index zero.
	CurrentMonth YearMonth `json:"currentMonth"`
}

func (s *Session) Validate() error {
	if s.HorizonYears < 1 || s.HorizonYears > 100 {
		return ErrHorizonInvalid
	}
	for _, m := range s.Members {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	for _, b := range s.Buckets {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	for _, g := range s.Goals {
		if err := g.Validate(); err != nil {
			return err
		}
	}
	for _, d := range s.Debts {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	for _, t := range s.Templates {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	for _, r := range s.Rules {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// HorizonMonths is the last month index; every timeline series has
// HorizonMonths+1 slots.
func (s *Session) HorizonMonths() int {
	return s.HorizonYears * 12
}

func (s *Session) Member(id int32) *HouseholdMember {
	for _, m := range s.Members {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (s *Session) Bucket(id int32) *InvestmentBucket {
	for _, b := range s.Buckets {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *Session) Goal(id int32) *GoalFund {
	for _, g := range s.Goals {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (s *Session) Debt(id int32) *DebtLoan {
	for _, d := range s.Debts {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// WithoutRules returns a shallow copy carrying an empty rule table, used
// for was-vs-now comparison runs.
func (s *Session) WithoutRules() *Session {
	copied := *s
	copied.Rules = nil
	return &copied
}

// SessionRepository stores one session snapshot per workspace.
type SessionRepository interface {
	Get(workspaceID uuid.UUID) (*Session, error)
	Put(workspaceID uuid.UUID, session *Session) error
}
