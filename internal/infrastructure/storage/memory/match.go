// Package memory keeps shifts in process memory. It backs STORAGE=memory
// and end-to-end tests of the search engine.
package memory

import (
	"fmt"
	"strings"
	"time"

	"backoffice/internal/core/id"
	"backoffice/internal/domain/filter"
	"backoffice/internal/domain/shift"
)

// fieldValue resolves a filter field against a shift. A nil value is SQL NULL.
func fieldValue(s *shift.Shift, field string) (any, error) {
	switch field {
	case shift.FieldID:
		return s.ID, nil
	case shift.FieldShopNumber:
		return s.ShopNumber, nil
	case shift.FieldCashNumber:
		return s.CashNumber, nil
	case shift.FieldCloseTime:
		if s.CloseTime == nil {
			return nil, nil
		}
		return *s.CloseTime, nil
	default:
		return nil, fmt.Errorf("invalid filter column: %s", field)
	}
}

// checkPredicate rejects unknown columns and operators before any shift is
// visited, so an empty store fails the same way postgres does.
func checkPredicate(pred filter.Predicate) error {
	var zero shift.Shift
	for _, item := range pred {
		if _, err := fieldValue(&zero, item.Field); err != nil {
			return err
		}
		if !item.Operator.Valid() {
			return fmt.Errorf("invalid filter operator: %s", item.Operator)
		}
	}
	return nil
}

// matches reports whether s satisfies every item of pred.
func matches(s *shift.Shift, pred filter.Predicate) (bool, error) {
	for _, item := range pred {
		v, err := fieldValue(s, item.Field)
		if err != nil {
			return false, err
		}
		ok, err := compare(v, item)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func compare(v any, item filter.Item) (bool, error) {
	switch item.Operator {
	case filter.IsNull:
		return v == nil, nil
	case filter.IsNotNull:
		return v != nil, nil
	}
	// NULL never matches a comparison, as in SQL.
	if v == nil {
		return false, nil
	}

	switch item.Operator {
	case filter.Equal, filter.NotEqual:
		c, err := order(v, item.Value)
		if err != nil {
			return false, err
		}
		return (c == 0) == (item.Operator == filter.Equal), nil
	case filter.Less, filter.LessOrEqual, filter.Greater, filter.GreaterOrEqual:
		c, err := order(v, item.Value)
		if err != nil {
			return false, err
		}
		switch item.Operator {
		case filter.Less:
			return c < 0, nil
		case filter.LessOrEqual:
			return c <= 0, nil
		case filter.Greater:
			return c > 0, nil
		default:
			return c >= 0, nil
		}
	case filter.InList, filter.NotInList:
		in, err := contains(v, item.Value)
		if err != nil {
			return false, err
		}
		return in == (item.Operator == filter.InList), nil
	case filter.Contains, filter.NotContains:
		found := strings.Contains(
			strings.ToLower(fmt.Sprint(v)),
			strings.ToLower(fmt.Sprint(item.Value)))
		return found == (item.Operator == filter.Contains), nil
	default:
		return false, fmt.Errorf("unsupported filter operator: %s", item.Operator)
	}
}

// order compares a stored value with a filter value of the same kind.
func order(v, want any) (int, error) {
	switch a := v.(type) {
	case int:
		b, ok := want.(int)
		if !ok {
			return 0, fmt.Errorf("expected int filter value, got %T", want)
		}
		switch {
		case a < b:
			return -1, nil
		case a > b:
			return 1, nil
		}
		return 0, nil
	case time.Time:
		b, ok := want.(time.Time)
		if !ok {
			return 0, fmt.Errorf("expected time filter value, got %T", want)
		}
		return a.Compare(b), nil
	case id.ID:
		b, ok := want.(id.ID)
		if !ok {
			return 0, fmt.Errorf("expected id filter value, got %T", want)
		}
		return id.Compare(a, b), nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}

func contains(v, list any) (bool, error) {
	switch l := list.(type) {
	case []int:
		return inList(v, l)
	case []id.ID:
		return inList(v, l)
	case []any:
		return inList(v, l)
	default:
		return false, fmt.Errorf("expected list filter value, got %T", list)
	}
}

func inList[T any](v any, xs []T) (bool, error) {
	for _, x := range xs {
		c, err := order(v, x)
		if err != nil {
			return false, err
		}
		if c == 0 {
			return true, nil
		}
	}
	return false, nil
}
