package shift

// FetchStrategy selects the query shape used to load shifts.
type FetchStrategy int

const (
	// Shallow loads shift rows only.
	Shallow FetchStrategy = iota
	// Deep loads shifts with purchases and positions through a left join.
	// The join fans out to one row per position, so results must be
	// collapsed by identity after materialization.
	Deep
)

// SelectStrategy maps the deep-fetch flag to a strategy.
func SelectStrategy(deep bool) FetchStrategy {
	if deep {
		return Deep
	}
	return Shallow
}

// String implements fmt.Stringer. Used as a log field and metric label.
func (s FetchStrategy) String() string {
	switch s {
	case Shallow:
		return "shallow"
	case Deep:
		return "deep"
	default:
		return "unknown"
	}
}
