package domain

// Timeline is the derived month-indexed projection for one session. Every
// series has Months+1 slots, slot zero anchored at the session's current
// month. Timelines are ephemeral: recomputed in full on every read, never
// patched or persisted.
type Timeline struct {
	// Months is the last month index.
	Months int `json:"months"`

	// Monthly cashflow series, by entity id.
	Investments map[int32][]Cents `json:"investments"`
	Goals       map[int32][]Cents `json:"goals"`
	Debts       map[int32][]Cents `json:"debts"`
	Templates   map[int32][]Cents `json:"templates"`

	// Unallocated collects cents no destination could absorb.
	Unallocated []Cents `json:"unallocated"`

	// Balance series for charting.
	GoalBalances map[int32][]Cents `json:"goalBalances"`
	DebtBalances map[int32][]Cents `json:"debtBalances"`

	// PayoffMonth and ReachedMonth are nil when not reached within the
	// horizon.
	PayoffMonth  map[int32]*int `json:"payoffMonth"`
	ReachedMonth map[int32]*int `json:"reachedMonth"`

	// Redirects is the append-only audit trail, in application order.
	Redirects []RedirectApplication `json:"redirects"`
}

// RedirectApplication is one audit-trail record: freed cents routed from a
// ceiling source to a destination in a given month. Rendered directly as a
// human trace; never replayed or mutated.
type RedirectApplication struct {
	MonthIndex      int                     `json:"monthIndex"`
	SourceKind      RedirectSourceKind      `json:"sourceKind"`
	SourceID        int32                   `json:"sourceId"`
	DestinationKind RedirectDestinationKind `json:"destinationKind"`
	DestinationID   *int32                  `json:"destinationId,omitempty"`
	AppliedCents    Cents                   `json:"appliedCents"`
}
