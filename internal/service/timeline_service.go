package service

import (
	"sort"
	"time"

	"github.com/dafibh/horizon/horizon-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// maxCeilingIterations bounds the per-month fixed-point pass. Pathological
// rule chains that keep reshuffling remainders terminate here; normal
// configurations converge in two or three iterations.
const maxCeilingIterations = 10

// BuildTimeline runs the month-indexed simulation over an immutable
// session snapshot and returns a freshly allocated timeline. Months run
// strictly in order: each month's room pools and debt balances derive only
// from the prior month's committed state. Entities are walked in id order,
// so the output, audit trail included, is identical across runs.
func BuildTimeline(session *domain.Session) *domain.Timeline {
	return newTimelineRun(session).build()
}

type poolKey struct {
	memberID int32
	kind     domain.AccountKind
}

type debtState struct {
	debt    *domain.DebtLoan
	planned domain.Cents
	offset  int
	rate    decimal.Decimal

	balance    domain.Cents
	originated bool

	// per-month scratch
	interest   domain.Cents
	scheduled  domain.Cents
	redirected domain.Cents
}

type goalState struct {
	goal    *domain.GoalFund
	offset  int
	rate    decimal.Decimal
	balance domain.Cents
	reached bool

	// per-month scratch
	unlimited bool
	capacity  domain.Cents
	planned   domain.Cents
	applied   domain.Cents
	freed     domain.Cents
}

type bucketState struct {
	bucket *domain.InvestmentBucket
	offset int

	// per-month scratch
	planned domain.Cents
	applied domain.Cents
	freed   domain.Cents
}

// timelineRun is the engine's mutable draft state for one build. Inputs
// are never touched; everything here is freshly allocated per run.
type timelineRun struct {
	session  *domain.Session
	months   int
	resolver *RedirectResolver
	timeline *domain.Timeline

	debts   []*debtState
	goals   []*goalState
	buckets []*bucketState
	pools   map[poolKey]domain.Cents
}

func newTimelineRun(session *domain.Session) *timelineRun {
	months := session.HorizonMonths()
	run := &timelineRun{
		session:  session,
		months:   months,
		resolver: NewRedirectResolver(session),
		timeline: &domain.Timeline{
			Months:       months,
			Investments:  make(map[int32][]domain.Cents, len(session.Buckets)),
			Goals:        make(map[int32][]domain.Cents, len(session.Goals)),
			Debts:        make(map[int32][]domain.Cents, len(session.Debts)),
			Templates:    make(map[int32][]domain.Cents, len(session.Templates)),
			Unallocated:  make([]domain.Cents, months+1),
			GoalBalances: make(map[int32][]domain.Cents, len(session.Goals)),
			DebtBalances: make(map[int32][]domain.Cents, len(session.Debts)),
			PayoffMonth:  make(map[int32]*int, len(session.Debts)),
			ReachedMonth: make(map[int32]*int, len(session.Goals)),
			Redirects:    make([]domain.RedirectApplication, 0),
		},
		pools: make(map[poolKey]domain.Cents),
	}

	current := session.CurrentMonth
	for _, debt := range session.Debts {
		rate := debt.AnnualRate.MonthlyDecimal()
		run.debts = append(run.debts, &debtState{
			debt:    debt,
			planned: ComputeMonthlyPayment(debt, rate, current),
			offset:  debt.StartOffset(current),
			rate:    rate,
		})
		run.timeline.Debts[debt.ID] = make([]domain.Cents, months+1)
		run.timeline.DebtBalances[debt.ID] = make([]domain.Cents, months+1)
		run.timeline.PayoffMonth[debt.ID] = nil
	}
	for _, goal := range session.Goals {
		reachedAtStart := goal.Target.IsPositive() && goal.Balance >= goal.Target
		run.goals = append(run.goals, &goalState{
			goal:    goal,
			offset:  goal.StartOffset(current),
			rate:    goal.AnnualReturn.MonthlyDecimal(),
			balance: goal.Balance,
			reached: reachedAtStart,
		})
		run.timeline.Goals[goal.ID] = make([]domain.Cents, months+1)
		run.timeline.GoalBalances[goal.ID] = make([]domain.Cents, months+1)
		run.timeline.ReachedMonth[goal.ID] = nil
		if reachedAtStart {
			zero := 0
			run.timeline.ReachedMonth[goal.ID] = &zero
		}
	}
	for _, bucket := range session.Buckets {
		run.buckets = append(run.buckets, &bucketState{
			bucket: bucket,
			offset: bucket.StartOffset(current),
		})
		run.timeline.Investments[bucket.ID] = make([]domain.Cents, months+1)
	}
	for _, template := range session.Templates {
		run.timeline.Templates[template.ID] = make([]domain.Cents, months+1)
	}

	sort.Slice(run.debts, func(i, j int) bool { return run.debts[i].debt.ID < run.debts[j].debt.ID })
	sort.Slice(run.goals, func(i, j int) bool { return run.goals[i].goal.ID < run.goals[j].goal.ID })
	sort.Slice(run.buckets, func(i, j int) bool { return run.buckets[i].bucket.ID < run.buckets[j].bucket.ID })

	for _, member := range session.Members {
		for _, kind := range []domain.AccountKind{domain.AccountTaxFree, domain.AccountTaxDeferred} {
			run.pools[poolKey{memberID: member.ID, kind: kind}] = OpeningRoomPool(member, session.Buckets, kind, current)
		}
	}
	return run
}

func (r *timelineRun) build() *domain.Timeline {
	for m := 0; m <= r.months; m++ {
		ym := r.session.CurrentMonth.AddMonths(m)
		if m > 0 && ym.Month == time.January {
			r.replenishPools(ym.Year)
		}
		r.beginMonth(m)
		r.applyScheduledFreed(m)
		r.ceilingPass(m)
		r.finalizeDebts(m)
		r.commitMonth(m)
	}
	return r.timeline
}

// replenishPools opens a new tax year: each member gains that year's room.
func (r *timelineRun) replenishPools(year int) {
	for _, member := range r.session.Members {
		for _, kind := range []domain.AccountKind{domain.AccountTaxFree, domain.AccountTaxDeferred} {
			key := poolKey{memberID: member.ID, kind: kind}
			r.pools[key] += AnnualRoomAccrual(member, kind, year)
		}
	}
}

// beginMonth resets per-month scratch, runs the debt interest/due pass, and
// writes the template series. A debt originates the month its start offset
// arrives; its planned payment enters the budget only from then on.
func (r *timelineRun) beginMonth(m int) {
	for _, ds := range r.debts {
		if !ds.originated && m >= ds.offset {
			ds.originated = true
			ds.balance = domain.MaxCents(0, ds.debt.Balance)
		}
		ds.interest = 0
		ds.scheduled = 0
		ds.redirected = 0
		if ds.originated {
			ds.interest = domain.CentsFromDecimal(ds.balance.Decimal().Mul(ds.rate))
			ds.scheduled = domain.MinCents(ds.planned, ds.balance+ds.interest)
			if ds.scheduled.IsNegative() {
				ds.scheduled = 0
			}
		}
	}

	for _, gs := range r.goals {
		gs.planned = 0
		gs.applied = 0
		gs.freed = 0
		if m >= gs.offset {
			gs.planned = gs.goal.MonthlyContribution
			if !gs.reached {
				gs.balance += domain.CentsFromDecimal(gs.balance.Decimal().Mul(gs.rate))
			}
		}
		gs.unlimited = !gs.goal.Target.IsPositive()
		gs.capacity = 0
		if !gs.unlimited && !gs.reached {
			gs.capacity = domain.MaxCents(0, gs.goal.Target-gs.balance)
		}
	}

	for _, bs := range r.buckets {
		bs.planned = 0
		bs.applied = 0
		bs.freed = 0
		if m >= bs.offset {
			bs.planned = bs.bucket.PlannedMonthly()
		}
	}

	for _, template := range r.session.Templates {
		if template.ActiveAt(r.session.CurrentMonth, m) {
			r.timeline.Templates[template.ID][m] = template.MonthlyAmount
		}
	}
}

// applyScheduledFreed redirects the gap between each debt's planned and
// scheduled payment. A debt paying off this exact month can feed another
// debt in the same month.
func (r *timelineRun) applyScheduledFreed(m int) {
	for _, ds := range r.debts {
		if !ds.originated {
			continue
		}
		if freed := ds.planned - ds.scheduled; freed.IsPositive() {
			r.route(m, CeilingEvent{
				SourceKind: domain.SourceDebtLoan,
				SourceID:   ds.debt.ID,
				MonthIndex: m,
				Freed:      freed,
			})
		}
	}
}

// ceilingPass iterates goal-target and registered-room capping until no
// entity changes or the iteration bound trips. Room is recomputed each
// iteration from the month-start pool snapshot; the final consumption view
// commits as next month's pool.
func (r *timelineRun) ceilingPass(m int) {
	var consumed map[poolKey]domain.Cents
	for iter := 0; iter < maxCeilingIterations; iter++ {
		changed := false

		for _, gs := range r.goals {
			applied := gs.planned
			if !gs.unlimited {
				applied = domain.MinCents(gs.planned, gs.capacity)
			}
			if applied != gs.applied {
				gs.applied = applied
				changed = true
			}
			if delta := (gs.planned - applied) - gs.freed; delta.IsPositive() {
				gs.freed += delta
				r.route(m, CeilingEvent{
					SourceKind: domain.SourceGoalFund,
					SourceID:   gs.goal.ID,
					MonthIndex: m,
					Freed:      delta,
				})
				changed = true
			}
		}

		remaining := make(map[poolKey]domain.Cents, len(r.pools))
		for key, room := range r.pools {
			remaining[key] = room
		}
		for _, bs := range r.buckets {
			applied := bs.planned
			if bs.bucket.Kind.Restricted() {
				key := poolKey{memberID: *bs.bucket.OwnerID, kind: bs.bucket.Kind}
				applied = domain.MinCents(bs.planned, domain.MaxCents(0, remaining[key]))
				remaining[key] -= applied
			}
			if applied != bs.applied {
				bs.applied = applied
				changed = true
			}
			if delta := (bs.planned - applied) - bs.freed; delta.IsPositive() {
				bs.freed += delta
				r.route(m, CeilingEvent{
					SourceKind: domain.SourceRegisteredRoom,
					SourceID:   bs.bucket.ID,
					MonthIndex: m,
					Freed:      delta,
				})
				changed = true
			}
		}

		consumed = remaining
		if !changed {
			break
		}
	}
	r.pools = consumed

	// The iteration bound is a termination safety valve. A chain still
	// reshuffling cents when it trips leaves freed money parked as planned
	// inflow on a capped entity; sweep that residue to unallocated so every
	// cent stays accounted for.
	for _, gs := range r.goals {
		if residue := (gs.planned - gs.applied) - gs.freed; residue.IsPositive() {
			gs.freed += residue
			r.sweepResidue(m, domain.SourceGoalFund, gs.goal.ID, residue)
		}
	}
	for _, bs := range r.buckets {
		if residue := (bs.planned - bs.applied) - bs.freed; residue.IsPositive() {
			bs.freed += residue
			r.sweepResidue(m, domain.SourceRegisteredRoom, bs.bucket.ID, residue)
		}
	}
}

// sweepResidue records a bound-tripped leftover against unallocated. It
// bypasses the resolver on purpose: re-routing would restart the very chain
// the bound just cut off.
func (r *timelineRun) sweepResidue(m int, kind domain.RedirectSourceKind, id int32, amount domain.Cents) {
	r.timeline.Redirects = append(r.timeline.Redirects, domain.RedirectApplication{
		MonthIndex:      m,
		SourceKind:      kind,
		SourceID:        id,
		DestinationKind: domain.DestUnallocated,
		AppliedCents:    amount,
	})
	r.timeline.Unallocated[m] += amount
}

// route resolves one ceiling event and applies its destination. The full
// freed amount is recorded against the resolved destination; capping
// specific to that destination happens in the ceiling pass (goals,
// buckets) or debt finalization (debts).
func (r *timelineRun) route(m int, event CeilingEvent) {
	dest := r.resolver.Resolve(event)
	r.timeline.Redirects = append(r.timeline.Redirects, domain.RedirectApplication{
		MonthIndex:      m,
		SourceKind:      event.SourceKind,
		SourceID:        event.SourceID,
		DestinationKind: dest.Kind,
		DestinationID:   dest.ID,
		AppliedCents:    event.Freed,
	})

	switch dest.Kind {
	case domain.DestGoalFund:
		for _, gs := range r.goals {
			if gs.goal.ID == *dest.ID {
				gs.planned += event.Freed
				break
			}
		}
	case domain.DestInvestmentBucket:
		for _, bs := range r.buckets {
			if bs.bucket.ID == *dest.ID {
				bs.planned += event.Freed
				break
			}
		}
	case domain.DestDebtLoan:
		for _, ds := range r.debts {
			if ds.debt.ID == *dest.ID {
				ds.redirected += event.Freed
				break
			}
		}
	default:
		r.timeline.Unallocated[m] += event.Freed
	}
}

// finalizeDebts settles each debt's actual payment: scheduled plus accepted
// redirects, re-capped at the amount due. Redirect cents a debt cannot
// absorb are unallocated; a non-originated debt absorbs nothing.
func (r *timelineRun) finalizeDebts(m int) {
	for _, ds := range r.debts {
		id := ds.debt.ID
		if !ds.originated {
			if ds.redirected.IsPositive() {
				r.timeline.Unallocated[m] += ds.redirected
			}
			continue
		}

		due := ds.balance + ds.interest
		actual := ds.scheduled
		if ds.redirected.IsPositive() {
			extra := domain.MinCents(ds.redirected, domain.MaxCents(0, due-actual))
			actual += extra
			if excess := ds.redirected - extra; excess.IsPositive() {
				r.timeline.Unallocated[m] += excess
			}
		}

		ending := domain.MaxCents(0, ds.balance+ds.interest-actual)
		r.timeline.Debts[id][m] = actual
		r.timeline.DebtBalances[id][m] = ending
		if ending.IsZero() && r.timeline.PayoffMonth[id] == nil {
			idx := m
			r.timeline.PayoffMonth[id] = &idx
		}
		ds.balance = ending
	}
}

// commitMonth folds the converged contributions into goal balances and
// writes the monthly series.
func (r *timelineRun) commitMonth(m int) {
	for _, gs := range r.goals {
		id := gs.goal.ID
		gs.balance += gs.applied
		r.timeline.Goals[id][m] = gs.applied
		r.timeline.GoalBalances[id][m] = gs.balance
		if !gs.reached && gs.goal.Target.IsPositive() && gs.balance >= gs.goal.Target {
			gs.reached = true
			idx := m
			r.timeline.ReachedMonth[id] = &idx
		}
	}
	for _, bs := range r.buckets {
		r.timeline.Investments[bs.bucket.ID][m] = bs.applied
	}
}
