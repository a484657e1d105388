package memory

import (
	"context"
	"slices"
	"sync"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/filter"
	"backoffice/internal/domain/shift"
)

var _ shift.Repository = (*ShiftStore)(nil)

// ShiftStore is a shift.Repository over a map. Stored graphs are deep
// copies, so callers never share memory with the store.
type ShiftStore struct {
	mu     sync.RWMutex
	shifts map[id.ID]*shift.Shift
}

// NewShiftStore creates an empty store.
func NewShiftStore() *ShiftStore {
	return &ShiftStore{shifts: make(map[id.ID]*shift.Shift)}
}

// Len returns the number of stored shifts.
func (s *ShiftStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.shifts)
}

// QueryShallow implements shift.Reader.
func (s *ShiftStore) QueryShallow(ctx context.Context, pred filter.Predicate) ([]shift.Shift, error) {
	matched, err := s.match(ctx, pred)
	if err != nil {
		return nil, err
	}
	out := make([]shift.Shift, 0, len(matched))
	for _, sh := range matched {
		row := *sh
		row.Purchases = nil
		out = append(out, row)
	}
	return out, nil
}

// QueryDeep implements shift.Reader. It emits the same fan-out a SQL left
// join would: one row per position, per empty purchase, per bare shift.
func (s *ShiftStore) QueryDeep(ctx context.Context, pred filter.Predicate) ([]shift.GraphRow, error) {
	matched, err := s.match(ctx, pred)
	if err != nil {
		return nil, err
	}

	var rows []shift.GraphRow
	for _, sh := range matched {
		head := *sh
		head.Purchases = nil
		if len(sh.Purchases) == 0 {
			rows = append(rows, shift.GraphRow{Shift: head})
			continue
		}

		purchases := slices.Clone(sh.Purchases)
		slices.SortStableFunc(purchases, func(a, b shift.Purchase) int {
			if c := a.PurchaseTime.Compare(b.PurchaseTime); c != 0 {
				return c
			}
			return id.Compare(a.ID, b.ID)
		})

		for _, p := range purchases {
			if len(p.Positions) == 0 {
				pc := p
				pc.Positions = nil
				rows = append(rows, shift.GraphRow{Shift: head, Purchase: &pc})
				continue
			}
			positions := slices.Clone(p.Positions)
			slices.SortStableFunc(positions, func(a, b shift.Position) int {
				return a.LineNo - b.LineNo
			})
			for _, pos := range positions {
				pc := p
				pc.Positions = nil
				line := pos
				rows = append(rows, shift.GraphRow{Shift: head, Purchase: &pc, Position: &line})
			}
		}
	}
	return rows, nil
}

// match returns matching shifts ordered by close_time (open shifts last),
// shift number and id.
func (s *ShiftStore) match(ctx context.Context, pred filter.Predicate) ([]*shift.Shift, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkPredicate(pred); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*shift.Shift
	for _, sh := range s.shifts {
		ok, err := matches(sh, pred)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, cloneShift(sh))
		}
	}

	slices.SortFunc(out, func(a, b *shift.Shift) int {
		switch {
		case !a.IsClosed() && b.IsClosed():
			return 1
		case a.IsClosed() && !b.IsClosed():
			return -1
		case a.IsClosed() && b.IsClosed():
			if c := a.CloseTime.Compare(*b.CloseTime); c != 0 {
				return c
			}
		}
		if a.Number != b.Number {
			return a.Number - b.Number
		}
		return id.Compare(a.ID, b.ID)
	})
	return out, nil
}

// Create implements shift.Repository.
func (s *ShiftStore) Create(ctx context.Context, sh *shift.Shift) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.shifts[sh.ID]; exists {
		return apperror.NewDuplicate("Shift", "id", sh.ID.String())
	}
	s.shifts[sh.ID] = cloneShift(sh)
	return nil
}

// DeletePositions implements shift.Repository.
func (s *ShiftStore) DeletePositions(ctx context.Context, shiftID id.ID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sh, ok := s.shifts[shiftID]
	if !ok {
		return 0, nil
	}
	var n int64
	for i := range sh.Purchases {
		n += int64(len(sh.Purchases[i].Positions))
		sh.Purchases[i].Positions = nil
	}
	return n, nil
}

// DeletePurchases implements shift.Repository.
func (s *ShiftStore) DeletePurchases(ctx context.Context, shiftID id.ID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sh, ok := s.shifts[shiftID]
	if !ok {
		return 0, nil
	}
	n := int64(len(sh.Purchases))
	sh.Purchases = nil
	return n, nil
}

// DeleteShift implements shift.Repository.
func (s *ShiftStore) DeleteShift(ctx context.Context, shiftID id.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sh, ok := s.shifts[shiftID]
	if !ok {
		return apperror.NewNotFound("Shift", shiftID.String())
	}
	if len(sh.Purchases) > 0 {
		return apperror.NewConflict("shift still owns purchases").
			WithDetail("id", shiftID.String())
	}
	delete(s.shifts, shiftID)
	return nil
}

func (s *ShiftStore) snapshot() map[id.ID]*shift.Shift {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[id.ID]*shift.Shift, len(s.shifts))
	for k, v := range s.shifts {
		out[k] = cloneShift(v)
	}
	return out
}

func (s *ShiftStore) restore(snap map[id.ID]*shift.Shift) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shifts = snap
}

func cloneShift(sh *shift.Shift) *shift.Shift {
	out := *sh
	if sh.CloseTime != nil {
		ct := *sh.CloseTime
		out.CloseTime = &ct
	}
	if sh.Purchases != nil {
		out.Purchases = make([]shift.Purchase, len(sh.Purchases))
		for i, p := range sh.Purchases {
			p.Positions = slices.Clone(p.Positions)
			out.Purchases[i] = p
		}
	}
	return &out
}

// Ping implements readiness checks; the store is always reachable.
func (s *ShiftStore) Ping(context.Context) error {
	return nil
}
