package service

import (
	"time"

	"github.com/dafibh/horizon/horizon-backend/internal/domain"
)

// RoomUsage summarizes one member's contribution room for one restricted
// account kind, as a planner's year-end view: Remaining is what stays
// after the current year's planned recurring contributions and all
// backfill land.
type RoomUsage struct {
	Accrued   domain.Cents `json:"accrued"`
	Used      domain.Cents `json:"used"`
	Remaining domain.Cents `json:"remaining"`
}

// ComputeRoomUsage computes accrued, used, and remaining room for a member
// and account kind. Backfill entries consume room forever, across all
// years. Recurring contributions consume room for the current tax year
// only, counted from the later of the tax-year start and the bucket's
// start date up to the next tax-year boundary.
func ComputeRoomUsage(member *domain.HouseholdMember, buckets []*domain.InvestmentBucket, kind domain.AccountKind, current domain.YearMonth) RoomUsage {
	usage := RoomUsage{Accrued: accruedRoom(member, kind, current.Year)}

	taxYearStart := domain.NewYearMonth(current.Year, time.January)
	nextTaxYearStart := domain.NewYearMonth(current.Year+1, time.January)
	for _, bucket := range buckets {
		if !bucketOwnedBy(bucket, member.ID, kind) {
			continue
		}
		for _, amount := range bucket.Backfill {
			usage.Used += amount
		}
		if bucket.Recurring && bucket.MonthlyContribution.IsPositive() {
			from := taxYearStart
			if bucket.StartDate != "" {
				if ym, err := domain.ParseYearMonth(bucket.StartDate); err == nil && ym.After(from) {
					from = ym
				}
			}
			months := domain.MonthsBetween(from, nextTaxYearStart)
			if months < 0 {
				months = 0
			}
			usage.Used += bucket.MonthlyContribution * domain.Cents(months)
		}
	}

	usage.Remaining = domain.MaxCents(0, usage.Accrued-usage.Used)
	return usage
}

// OpeningRoomPool is the room balance the timeline engine starts from:
// accrued room minus backfill already spent. Recurring contributions are
// deliberately not subtracted here; the engine charges them against the
// pool month by month, and subtracting them up front as well would count
// the first year twice.
func OpeningRoomPool(member *domain.HouseholdMember, buckets []*domain.InvestmentBucket, kind domain.AccountKind, current domain.YearMonth) domain.Cents {
	pool := accruedRoom(member, kind, current.Year)
	for _, bucket := range buckets {
		if !bucketOwnedBy(bucket, member.ID, kind) {
			continue
		}
		for _, amount := range bucket.Backfill {
			pool -= amount
		}
	}
	return domain.MaxCents(0, pool)
}

// AnnualRoomAccrual is the room a member gains when a new tax year opens:
// the entered amount for that year for the tax-free kind, or the flat
// annual figure for the tax-deferred kind.
func AnnualRoomAccrual(member *domain.HouseholdMember, kind domain.AccountKind, year int) domain.Cents {
	switch kind {
	case domain.AccountTaxFree:
		return member.TaxFreeRoom[year]
	case domain.AccountTaxDeferred:
		return member.TaxDeferredAnnualRoom
	}
	return 0
}

// accruedRoom totals room earned through the given year. Entries for
// future years are ignored; January replenishment adds them when their
// year opens.
func accruedRoom(member *domain.HouseholdMember, kind domain.AccountKind, throughYear int) domain.Cents {
	switch kind {
	case domain.AccountTaxFree:
		var total domain.Cents
		for year, amount := range member.TaxFreeRoom {
			if year <= throughYear {
				total += amount
			}
		}
		return total
	case domain.AccountTaxDeferred:
		return member.TaxDeferredAnnualRoom
	}
	return 0
}

func bucketOwnedBy(bucket *domain.InvestmentBucket, memberID int32, kind domain.AccountKind) bool {
	return bucket.Kind == kind && bucket.OwnerID != nil && *bucket.OwnerID == memberID
}
