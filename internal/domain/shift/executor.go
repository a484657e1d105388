package shift

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/filter"
)

var tracer = otel.Tracer("backoffice/shift")

// Executor runs a composed predicate against the store with a fetch strategy.
// It holds no mutable state and is safe for concurrent use.
type Executor struct {
	reader Reader
}

// NewExecutor creates an executor over the given reader.
func NewExecutor(reader Reader) *Executor {
	return &Executor{reader: reader}
}

// Execute returns matching shifts, each identity exactly once, in storage order.
// No match yields an empty slice. Reader failures surface as StorageError.
func (e *Executor) Execute(ctx context.Context, pred filter.Predicate, strategy FetchStrategy) ([]*Shift, error) {
	ctx, span := tracer.Start(ctx, "shift.execute",
		trace.WithAttributes(
			attribute.String("shift.strategy", strategy.String()),
			attribute.Int("shift.conditions", len(pred)),
			attribute.StringSlice("shift.fields", pred.Fields()),
		))
	defer span.End()

	var (
		shifts []*Shift
		err    error
	)
	switch strategy {
	case Deep:
		shifts, err = e.executeDeep(ctx, pred)
	default:
		shifts, err = e.executeShallow(ctx, pred)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("shift.count", len(shifts)))
	return shifts, nil
}

func (e *Executor) executeShallow(ctx context.Context, pred filter.Predicate) ([]*Shift, error) {
	rows, err := e.reader.QueryShallow(ctx, pred)
	if err != nil {
		return nil, storageError(err)
	}

	seen := make(map[id.ID]struct{}, len(rows))
	out := make([]*Shift, 0, len(rows))
	for i := range rows {
		if _, ok := seen[rows[i].ID]; ok {
			continue
		}
		seen[rows[i].ID] = struct{}{}

		s := rows[i]
		s.Purchases = []Purchase{}
		out = append(out, &s)
	}
	return out, nil
}

// executeDeep collapses join fan-out on every level of the graph.
// A plain row-level distinct is not enough: with two join levels the same
// shift and purchase repeat once per position.
func (e *Executor) executeDeep(ctx context.Context, pred filter.Predicate) ([]*Shift, error) {
	rows, err := e.reader.QueryDeep(ctx, pred)
	if err != nil {
		return nil, storageError(err)
	}

	type purchaseSlot struct {
		shift     *Shift
		index     int
		positions map[id.ID]struct{}
	}

	shiftByID := make(map[id.ID]*Shift)
	purchaseByID := make(map[id.ID]*purchaseSlot)
	out := make([]*Shift, 0)

	for _, row := range rows {
		s, ok := shiftByID[row.Shift.ID]
		if !ok {
			copied := row.Shift
			copied.Purchases = []Purchase{}
			s = &copied
			shiftByID[s.ID] = s
			out = append(out, s)
		}

		if row.Purchase == nil {
			continue
		}

		slot, ok := purchaseByID[row.Purchase.ID]
		if !ok {
			p := *row.Purchase
			p.Positions = []Position{}
			s.Purchases = append(s.Purchases, p)
			slot = &purchaseSlot{
				shift:     s,
				index:     len(s.Purchases) - 1,
				positions: make(map[id.ID]struct{}),
			}
			purchaseByID[p.ID] = slot
		}

		if row.Position == nil {
			continue
		}
		if _, dup := slot.positions[row.Position.ID]; dup {
			continue
		}
		slot.positions[row.Position.ID] = struct{}{}

		p := &slot.shift.Purchases[slot.index]
		p.Positions = append(p.Positions, *row.Position)
	}

	return out, nil
}

func storageError(err error) error {
	if apperror.IsStorage(err) {
		return err
	}
	return apperror.NewStorage(err)
}
