package shift

import (
	"context"
	"sync"
	"time"

	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/filter"
	"backoffice/pkg/logger"
)

// fakeReader answers queries through pluggable functions and counts calls.
type fakeReader struct {
	mu           sync.Mutex
	shallowCalls int
	deepCalls    int
	preds        []filter.Predicate

	shallow func(pred filter.Predicate) ([]Shift, error)
	deep    func(pred filter.Predicate) ([]GraphRow, error)
}

func (f *fakeReader) QueryShallow(_ context.Context, pred filter.Predicate) ([]Shift, error) {
	f.mu.Lock()
	f.shallowCalls++
	f.preds = append(f.preds, pred)
	f.mu.Unlock()
	if f.shallow == nil {
		return nil, nil
	}
	return f.shallow(pred)
}

func (f *fakeReader) QueryDeep(_ context.Context, pred filter.Predicate) ([]GraphRow, error) {
	f.mu.Lock()
	f.deepCalls++
	f.preds = append(f.preds, pred)
	f.mu.Unlock()
	if f.deep == nil {
		return nil, nil
	}
	return f.deep(pred)
}

func (f *fakeReader) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shallowCalls + f.deepCalls
}

// fakeRepo records write calls in order.
type fakeRepo struct {
	fakeReader

	created []*Shift
	ops     []string
	failOn  string
	err     error
}

func (f *fakeRepo) Create(_ context.Context, s *Shift) error {
	f.ops = append(f.ops, "create")
	if f.failOn == "create" {
		return f.err
	}
	f.created = append(f.created, s)
	return nil
}

func (f *fakeRepo) DeletePositions(_ context.Context, _ id.ID) (int64, error) {
	f.ops = append(f.ops, "positions")
	if f.failOn == "positions" {
		return 0, f.err
	}
	return 4, nil
}

func (f *fakeRepo) DeletePurchases(_ context.Context, _ id.ID) (int64, error) {
	f.ops = append(f.ops, "purchases")
	if f.failOn == "purchases" {
		return 0, f.err
	}
	return 2, nil
}

func (f *fakeRepo) DeleteShift(_ context.Context, _ id.ID) error {
	f.ops = append(f.ops, "shift")
	if f.failOn == "shift" {
		return f.err
	}
	return nil
}

type passTx struct{ runs int }

func (p *passTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	p.runs++
	return fn(ctx)
}

func intPtr(v int) *int { return &v }

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func at(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func shiftFixture(number, shop int) Shift {
	return Shift{
		ID:         id.New(),
		Number:     number,
		ShopNumber: shop,
		CashNumber: 1,
		OpenTime:   *at("2024-01-01T08:00:00Z"),
		CloseTime:  at("2024-01-01T20:00:00Z"),
		Total:      types.MustMoney("10.00"),
	}
}

// fanOut builds the deep-join rows of a shift: one row per position.
func fanOut(s Shift, purchases, positions int) []GraphRow {
	var rows []GraphRow
	for i := 0; i < purchases; i++ {
		p := Purchase{ID: id.New(), ShiftID: s.ID, PurchaseTime: s.OpenTime.Add(time.Duration(i) * time.Minute)}
		for j := 0; j < positions; j++ {
			pp := p
			pos := Position{ID: id.New(), PurchaseID: p.ID, LineNo: j + 1, Barcode: "460", Price: types.MustMoney("1.50")}
			rows = append(rows, GraphRow{Shift: s, Purchase: &pp, Position: &pos})
		}
	}
	return rows
}

// conditionsOn returns the conditions of pred that target field.
func conditionsOn(pred filter.Predicate, field string) filter.Predicate {
	var out filter.Predicate
	for _, item := range pred {
		if item.Field == field {
			out = append(out, item)
		}
	}
	return out
}

func shopOf(pred filter.Predicate) int {
	items := conditionsOn(pred, FieldShopNumber)
	if len(items) == 0 {
		return 0
	}
	return items[0].Value.(int)
}

// testContext carries a discarding logger so services stay quiet under go test.
func testContext() context.Context {
	return logger.WithLogger(context.Background(), logger.Nop())
}
