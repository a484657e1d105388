package shift

import (
	"time"

	"backoffice/internal/core/apperror"
)

// SearchParams is the raw, unvalidated search input as it arrives from transport.
type SearchParams struct {
	ShopNumber *int
	CashNumber *int
	Date       *time.Time
	StartDate  *time.Time
	EndDate    *time.Time
	Deep       bool
}

// DateRange is a calendar-day range with an inclusive end day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Criteria is a validated shift search request.
// Exactly one of Date and Range is set.
type Criteria struct {
	ShopNumber *int
	CashNumber *int
	Date       *time.Time
	Range      *DateRange
	Deep       bool
}

// NewCriteria validates raw parameters and normalizes dates to the start of
// their calendar day.
func NewCriteria(p SearchParams) (Criteria, error) {
	if (p.StartDate == nil) != (p.EndDate == nil) {
		return Criteria{}, apperror.NewValidation("date range requires both startDate and endDate").
			WithDetail("field", "startDate")
	}

	c := Criteria{
		ShopNumber: p.ShopNumber,
		CashNumber: p.CashNumber,
		Deep:       p.Deep,
	}
	if p.Date != nil {
		d := startOfDay(*p.Date)
		c.Date = &d
	}
	if p.StartDate != nil {
		c.Range = &DateRange{
			Start: startOfDay(*p.StartDate),
			End:   startOfDay(*p.EndDate),
		}
	}

	if err := c.Validate(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

// Validate checks the date invariant. It never touches storage.
func (c Criteria) Validate() error {
	switch {
	case c.Date == nil && c.Range == nil:
		return apperror.NewValidation("either date or startDate/endDate must be specified").
			WithDetail("field", "date")
	case c.Date != nil && c.Range != nil:
		return apperror.NewValidation("date and startDate/endDate are mutually exclusive").
			WithDetail("field", "date")
	case c.Range != nil && c.Range.Start.After(c.Range.End):
		return apperror.NewValidation("startDate must not be after endDate").
			WithDetail("field", "startDate").
			WithDetail("startDate", c.Range.Start.Format(time.DateOnly)).
			WithDetail("endDate", c.Range.End.Format(time.DateOnly))
	}
	return nil
}

// Strategy returns the fetch strategy requested by the deep flag.
func (c Criteria) Strategy() FetchStrategy {
	return SelectStrategy(c.Deep)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
