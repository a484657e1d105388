// Package filter describes storage-agnostic query conditions.
// A condition is a (field, operator, value) triple; storage layers compile
// them into their own query language (SQL via squirrel, in-memory matching).
package filter

// ComparisonType defines the comparison operators.
type ComparisonType string

const (
	Equal          ComparisonType = "eq"        // Равно
	NotEqual       ComparisonType = "neq"       // Не равно
	Less           ComparisonType = "lt"        // Меньше
	LessOrEqual    ComparisonType = "lte"       // Меньше или равно
	Greater        ComparisonType = "gt"        // Больше
	GreaterOrEqual ComparisonType = "gte"       // Больше или равно
	InList         ComparisonType = "in"        // В списке
	NotInList      ComparisonType = "nin"       // Не в списке
	Contains       ComparisonType = "contains"  // Содержит (ILIKE %val%)
	NotContains    ComparisonType = "ncontains" // Не содержит (NOT ILIKE %val%)

	IsNull    ComparisonType = "null"     // Не заполнено
	IsNotNull ComparisonType = "not_null" // Заполнено
)

// Item represents one filter condition.
type Item struct {
	Field    string         `json:"field"`    // Field name (snake_case)
	Operator ComparisonType `json:"operator"` // Comparison
	Value    any            `json:"value"`    // Scalar, time or slice
}

// Valid reports whether the operator is known.
func (op ComparisonType) Valid() bool {
	switch op {
	case Equal, NotEqual, Less, LessOrEqual, Greater, GreaterOrEqual,
		InList, NotInList, Contains, NotContains, IsNull, IsNotNull:
		return true
	}
	return false
}
