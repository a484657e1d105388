package shift

import (
	"time"

	"backoffice/internal/core/id"
	"backoffice/internal/domain/filter"
)

// Filterable shift fields. Storage layers map these to their own columns.
const (
	FieldID         = "id"
	FieldShopNumber = "shop_number"
	FieldCashNumber = "cash_number"
	FieldCloseTime  = "close_time"
)

// ShopNumberEquals matches shifts of one shop.
func ShopNumberEquals(shop int) filter.Predicate {
	return filter.Where(FieldShopNumber, filter.Equal, shop)
}

// CashNumberEquals matches shifts of one cash register number.
func CashNumberEquals(cash int) filter.Predicate {
	return filter.Where(FieldCashNumber, filter.Equal, cash)
}

// CloseDateInDay matches close_time in [day 00:00, day+1 00:00).
func CloseDateInDay(day time.Time) filter.Predicate {
	from := startOfDay(day)
	return closedBetween(from, from.AddDate(0, 0, 1))
}

// CloseDateInRange matches close_time in [start 00:00, end+1 00:00).
// The end day is inclusive.
func CloseDateInRange(start, end time.Time) filter.Predicate {
	return closedBetween(startOfDay(start), startOfDay(end).AddDate(0, 0, 1))
}

// IDEquals matches a single shift.
func IDEquals(v id.ID) filter.Predicate {
	return filter.Where(FieldID, filter.Equal, v)
}

// Compose builds the conjunction of every predicate the criteria carries.
func Compose(c Criteria) filter.Predicate {
	parts := make([]filter.Predicate, 0, 3)
	if c.ShopNumber != nil {
		parts = append(parts, ShopNumberEquals(*c.ShopNumber))
	}
	if c.CashNumber != nil {
		parts = append(parts, CashNumberEquals(*c.CashNumber))
	}
	if c.Date != nil {
		parts = append(parts, CloseDateInDay(*c.Date))
	}
	if c.Range != nil {
		parts = append(parts, CloseDateInRange(c.Range.Start, c.Range.End))
	}
	return filter.And(parts...)
}

func closedBetween(from, to time.Time) filter.Predicate {
	return filter.Predicate{
		{Field: FieldCloseTime, Operator: filter.GreaterOrEqual, Value: from},
		{Field: FieldCloseTime, Operator: filter.Less, Value: to},
	}
}
