package filter

// Predicate is a conjunction of independent conditions.
// The empty predicate matches everything. Item order carries no meaning.
type Predicate []Item

// Where builds a single-condition predicate.
func Where(field string, op ComparisonType, value any) Predicate {
	return Predicate{{Field: field, Operator: op, Value: value}}
}

// And returns the conjunction of the given predicates.
// Inputs are not modified.
func And(parts ...Predicate) Predicate {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make(Predicate, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Fields lists distinct field names in first-seen order.
func (p Predicate) Fields() []string {
	seen := make(map[string]struct{}, len(p))
	fields := make([]string, 0, len(p))
	for _, item := range p {
		if _, ok := seen[item.Field]; ok {
			continue
		}
		seen[item.Field] = struct{}{}
		fields = append(fields, item.Field)
	}
	return fields
}
