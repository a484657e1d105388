package postgres

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"backoffice/internal/domain/filter"
)

// Columns maps filterable field names to SQL column expressions.
// Only mapped fields may be filtered on, which keeps user input out of SQL.
type Columns map[string]string

// ColumnsOf maps every column to itself, optionally qualified by alias.
func ColumnsOf(cols []string, alias string) Columns {
	out := make(Columns, len(cols))
	for _, c := range cols {
		if alias == "" {
			out[c] = c
		} else {
			out[c] = alias + "." + c
		}
	}
	return out
}

// ApplyFilters adds every item to q as an AND-ed WHERE condition.
func ApplyFilters(q squirrel.SelectBuilder, items []filter.Item, cols Columns) (squirrel.SelectBuilder, error) {
	for _, item := range items {
		cond, err := Condition(item, cols)
		if err != nil {
			return q, err
		}
		q = q.Where(cond)
	}
	return q, nil
}

// Condition compiles one item into a squirrel condition.
func Condition(item filter.Item, cols Columns) (squirrel.Sqlizer, error) {
	col, ok := cols[item.Field]
	if !ok {
		return nil, fmt.Errorf("invalid filter column: %s", item.Field)
	}

	switch item.Operator {
	case filter.Equal, filter.InList:
		return squirrel.Eq{col: item.Value}, nil
	case filter.NotEqual, filter.NotInList:
		return squirrel.NotEq{col: item.Value}, nil
	case filter.Less:
		return squirrel.Lt{col: item.Value}, nil
	case filter.LessOrEqual:
		return squirrel.LtOrEq{col: item.Value}, nil
	case filter.Greater:
		return squirrel.Gt{col: item.Value}, nil
	case filter.GreaterOrEqual:
		return squirrel.GtOrEq{col: item.Value}, nil
	case filter.IsNull:
		return squirrel.Eq{col: nil}, nil
	case filter.IsNotNull:
		return squirrel.NotEq{col: nil}, nil
	case filter.Contains:
		return squirrel.ILike{col: fmt.Sprintf("%%%v%%", item.Value)}, nil
	case filter.NotContains:
		return squirrel.NotILike{col: fmt.Sprintf("%%%v%%", item.Value)}, nil
	default:
		return nil, fmt.Errorf("unsupported filter operator: %s", item.Operator)
	}
}
