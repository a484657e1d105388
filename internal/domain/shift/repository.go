package shift

import (
	"context"

	"backoffice/internal/core/id"
	"backoffice/internal/domain/filter"
)

// GraphRow is one row of the deep left join: a shift with at most one
// purchase and at most one position of that purchase.
// Purchase is nil for a shift without purchases; Position is nil for a
// purchase without positions.
type GraphRow struct {
	Shift    Shift
	Purchase *Purchase
	Position *Position
}

// Reader is the storage query port used by the search engine.
// Rows come back ordered by close_time, shift_number, id; deep rows are
// additionally ordered by purchase_time and line_no within a shift.
type Reader interface {
	// QueryShallow returns shift rows without purchases.
	QueryShallow(ctx context.Context, pred filter.Predicate) ([]Shift, error)

	// QueryDeep returns the flattened shift → purchase → position graph.
	QueryDeep(ctx context.Context, pred filter.Predicate) ([]GraphRow, error)
}

// Repository adds the write side used by the shift service.
type Repository interface {
	Reader

	// Create persists a shift together with its purchases and positions.
	Create(ctx context.Context, s *Shift) error

	// DeletePositions removes all positions of the shift's purchases.
	DeletePositions(ctx context.Context, shiftID id.ID) (int64, error)

	// DeletePurchases removes all purchases of the shift.
	DeletePurchases(ctx context.Context, shiftID id.ID) (int64, error)

	// DeleteShift removes the shift row itself.
	DeleteShift(ctx context.Context, shiftID id.ID) error
}
