package service

import (
	"github.com/dafibh/horizon/horizon-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AffordabilitySegment classifies the household's month-zero plan against
// net income.
type AffordabilitySegment string

const (
	SegmentSurplus  AffordabilitySegment = "surplus"
	SegmentBalanced AffordabilitySegment = "balanced"
	SegmentDeficit  AffordabilitySegment = "deficit"
)

// balancedBand is the share of net income above which a fully-committed
// plan is "balanced" rather than "surplus".
var balancedBand = decimal.NewFromFloat(0.9)

// DebtComparison pairs a debt's payoff month with and without redirect
// rules, for the "was vs now" panels.
type DebtComparison struct {
	DebtID             int32  `json:"debtId"`
	Name               string `json:"name"`
	PayoffWithRules    *int   `json:"payoffWithRules"`
	PayoffWithoutRules *int   `json:"payoffWithoutRules"`
}

// GoalComparison pairs a goal's target-reached month with and without
// redirect rules.
type GoalComparison struct {
	GoalID              int32  `json:"goalId"`
	Name                string `json:"name"`
	ReachedWithRules    *int   `json:"reachedWithRules"`
	ReachedWithoutRules *int   `json:"reachedWithoutRules"`
}

// Dashboard is the top-level view: the timeline with rules applied, plus
// the affordability segment and the rules-vs-no-rules comparison.
type Dashboard struct {
	NetMonthlyIncome domain.Cents         `json:"netMonthlyIncome"`
	PlannedMonthly   domain.Cents         `json:"plannedMonthly"`
	Segment          AffordabilitySegment `json:"segment"`
	Timeline         *domain.Timeline     `json:"timeline"`
	Debts            []DebtComparison     `json:"debts"`
	Goals            []GoalComparison     `json:"goals"`
}

// DashboardService assembles the dashboard view for a workspace.
type DashboardService struct {
	sessionRepo domain.SessionRepository
	taxService  *TaxService
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(sessionRepo domain.SessionRepository, taxService *TaxService) *DashboardService {
	return &DashboardService{
		sessionRepo: sessionRepo,
		taxService:  taxService,
	}
}

// GetDashboard loads the workspace session and runs the engine twice: once
// with the rule table and once without, for the comparison views.
func (s *DashboardService) GetDashboard(workspaceID uuid.UUID) (*Dashboard, error) {
	session, err := s.sessionRepo.Get(workspaceID)
	if err != nil {
		return nil, err
	}
	return s.BuildDashboard(session), nil
}

// BuildDashboard computes the dashboard for an in-memory session.
func (s *DashboardService) BuildDashboard(session *domain.Session) *Dashboard {
	withRules := BuildTimeline(session)
	withoutRules := BuildTimeline(session.WithoutRules())

	var net domain.Cents
	for _, member := range session.Members {
		net += s.taxService.EstimateNetMonthlyIncome(member.AnnualIncome)
	}
	planned := monthZeroOutflow(withRules)

	dashboard := &Dashboard{
		NetMonthlyIncome: net,
		PlannedMonthly:   planned,
		Segment:          classify(net, planned),
		Timeline:         withRules,
		Debts:            make([]DebtComparison, 0, len(session.Debts)),
		Goals:            make([]GoalComparison, 0, len(session.Goals)),
	}
	for _, debt := range session.Debts {
		dashboard.Debts = append(dashboard.Debts, DebtComparison{
			DebtID:             debt.ID,
			Name:               debt.Name,
			PayoffWithRules:    withRules.PayoffMonth[debt.ID],
			PayoffWithoutRules: withoutRules.PayoffMonth[debt.ID],
		})
	}
	for _, goal := range session.Goals {
		dashboard.Goals = append(dashboard.Goals, GoalComparison{
			GoalID:              goal.ID,
			Name:                goal.Name,
			ReachedWithRules:    withRules.ReachedMonth[goal.ID],
			ReachedWithoutRules: withoutRules.ReachedMonth[goal.ID],
		})
	}
	return dashboard
}

// monthZeroOutflow sums every planned movement in the timeline's first
// month, unallocated included.
func monthZeroOutflow(timeline *domain.Timeline) domain.Cents {
	var total domain.Cents
	for _, series := range timeline.Investments {
		total += series[0]
	}
	for _, series := range timeline.Goals {
		total += series[0]
	}
	for _, series := range timeline.Debts {
		total += series[0]
	}
	for _, series := range timeline.Templates {
		total += series[0]
	}
	total += timeline.Unallocated[0]
	return total
}

func classify(net, planned domain.Cents) AffordabilitySegment {
	if planned > net {
		return SegmentDeficit
	}
	if planned.Decimal().GreaterThanOrEqual(net.Decimal().Mul(balancedBand)) {
		return SegmentBalanced
	}
	return SegmentSurplus
}
