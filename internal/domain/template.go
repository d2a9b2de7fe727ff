package domain

import "errors"

var (
	ErrTemplateNotFound       = errors.New("recurring template not found")
	ErrTemplateNameEmpty      = errors.New("recurring template name is required")
	ErrTemplateAmountNegative = errors.New("recurring template amount must not be negative")
)

// RecurringTemplate is a flat planned monthly amount (rent, insurance,
// fixed set-asides). Templates appear in the timeline as-is; no ceiling
// ever applies to them.
type RecurringTemplate struct {
	ID            int32  `json:"id"`
	Name          string `json:"name"`
	MonthlyAmount Cents  `json:"monthlyAmount"`
	StartDate     string `json:"startDate,omitempty"` // "YYYY-MM"
	EndDate       string `json:"endDate,omitempty"`   // "YYYY-MM", inclusive
}

func (t *RecurringTemplate) Validate() error {
	if t.Name == "" {
		return ErrTemplateNameEmpty
	}
	if len(t.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if t.MonthlyAmount.IsNegative() {
		return ErrTemplateAmountNegative
	}
	return nil
}

// ActiveAt reports whether the template contributes at month index m.
func (t *RecurringTemplate) ActiveAt(current YearMonth, m int) bool {
	if m < startOffset(t.StartDate, current) {
		return false
	}
	if t.EndDate != "" {
		if end, err := ParseYearMonth(t.EndDate); err == nil {
			if MonthsBetween(current, end) < m {
				return false
			}
		}
	}
	return true
}
