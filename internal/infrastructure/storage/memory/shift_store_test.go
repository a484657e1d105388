package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/filter"
	"backoffice/internal/domain/shift"
	"backoffice/internal/infrastructure/storage/memory"
	"backoffice/pkg/logger"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func date(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func intPtr(v int) *int { return &v }

type fixture struct {
	store *memory.ShiftStore
	svc   *shift.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewShiftStore()
	return &fixture{
		store: store,
		svc: shift.NewService(shift.ServiceConfig{
			Repo:      store,
			TxManager: memory.NewTxManager(store),
			Batch:     shift.DefaultBatchOptions(),
		}),
	}
}

// add stores a closed shift with purchases×positions lines.
func (f *fixture) add(t *testing.T, number, shop int, closeTime *time.Time, purchases, positions int) id.ID {
	t.Helper()
	open := closeTime.Add(-8 * time.Hour)
	s := &shift.Shift{Number: number, ShopNumber: shop, CashNumber: 1, OpenTime: open, CloseTime: closeTime}
	for i := 0; i < purchases; i++ {
		p := shift.Purchase{PurchaseTime: open.Add(time.Duration(i+1) * time.Minute)}
		for j := 0; j < positions; j++ {
			p.Positions = append(p.Positions, shift.Position{Barcode: "4600000000001", Name: "Item", Price: types.MustMoney("2.50")})
		}
		s.Purchases = append(s.Purchases, p)
	}
	v, err := f.svc.Create(testContext(), s)
	require.NoError(t, err)
	return v.ID
}

func search(t *testing.T, f *fixture, p shift.SearchParams) []shift.ShiftView {
	t.Helper()
	c, err := shift.NewCriteria(p)
	require.NoError(t, err)
	views, err := f.svc.Engine().Search(testContext(), c)
	require.NoError(t, err)
	return views
}

func numbers(views []shift.ShiftView) []int {
	out := make([]int, 0, len(views))
	for _, v := range views {
		out = append(out, v.Number)
	}
	return out
}

func TestSearch_SingleDayIsHalfOpen(t *testing.T) {
	f := newFixture(t)
	f.add(t, 1, 1, ts("2023-12-31T23:59:59Z"), 0, 0)
	f.add(t, 2, 1, ts("2024-01-01T00:00:00Z"), 0, 0)
	f.add(t, 3, 1, ts("2024-01-01T23:59:59.999Z"), 0, 0)
	f.add(t, 4, 1, ts("2024-01-02T00:00:00Z"), 0, 0)

	got := search(t, f, shift.SearchParams{Date: date("2024-01-01")})
	assert.Equal(t, []int{2, 3}, numbers(got))
}

func TestSearch_RangeEndDayInclusive(t *testing.T) {
	f := newFixture(t)
	f.add(t, 1, 1, ts("2023-12-31T23:00:00Z"), 0, 0)
	f.add(t, 2, 1, ts("2024-01-01T10:00:00Z"), 0, 0)
	f.add(t, 3, 1, ts("2024-01-03T23:59:00Z"), 0, 0)
	f.add(t, 4, 1, ts("2024-01-04T00:00:00Z"), 0, 0)

	got := search(t, f, shift.SearchParams{StartDate: date("2024-01-01"), EndDate: date("2024-01-03")})
	assert.Equal(t, []int{2, 3}, numbers(got))
}

func TestSearch_Example(t *testing.T) {
	f := newFixture(t)
	f.add(t, 1, 1, ts("2024-01-01T20:00:00Z"), 1, 1)
	f.add(t, 2, 2, ts("2024-01-01T21:00:00Z"), 1, 1)

	got := search(t, f, shift.SearchParams{ShopNumber: intPtr(1), Date: date("2024-01-01")})

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Number)
	assert.NotNil(t, got[0].Purchases)
	assert.Empty(t, got[0].Purchases)
}

func TestSearch_DeepDistinct(t *testing.T) {
	f := newFixture(t)
	f.add(t, 1, 1, ts("2024-01-01T20:00:00Z"), 2, 2)

	got := search(t, f, shift.SearchParams{Date: date("2024-01-01"), Deep: true})

	require.Len(t, got, 1)
	require.Len(t, got[0].Purchases, 2)
	for _, p := range got[0].Purchases {
		assert.Len(t, p.Positions, 2)
	}
	assert.True(t, got[0].Total.Equal(types.MustMoney("10.00")))
}

func TestSearch_OpenShiftNeverMatchesDate(t *testing.T) {
	f := newFixture(t)
	open := &shift.Shift{Number: 9, ShopNumber: 1, CashNumber: 1, OpenTime: *ts("2024-01-01T08:00:00Z")}
	_, err := f.svc.Create(testContext(), open)
	require.NoError(t, err)

	got := search(t, f, shift.SearchParams{Date: date("2024-01-01")})
	assert.Empty(t, got)
}

func TestQueryShallow_OpenShiftsLast(t *testing.T) {
	f := newFixture(t)
	open := &shift.Shift{Number: 1, ShopNumber: 1, CashNumber: 1, OpenTime: *ts("2024-01-01T08:00:00Z")}
	_, err := f.svc.Create(testContext(), open)
	require.NoError(t, err)
	f.add(t, 2, 1, ts("2024-01-02T10:00:00Z"), 0, 0)

	got, err := f.store.QueryShallow(testContext(), nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Number)
	assert.False(t, got[1].IsClosed())
}

func TestSearchBatch_OverlappingCriteria(t *testing.T) {
	f := newFixture(t)
	f.add(t, 1, 1, ts("2024-01-01T10:00:00Z"), 0, 0)
	f.add(t, 2, 1, ts("2024-01-02T10:00:00Z"), 0, 0)
	f.add(t, 3, 1, ts("2024-01-03T10:00:00Z"), 0, 0)

	a, err := shift.NewCriteria(shift.SearchParams{StartDate: date("2024-01-01"), EndDate: date("2024-01-02")})
	require.NoError(t, err)
	b, err := shift.NewCriteria(shift.SearchParams{StartDate: date("2024-01-02"), EndDate: date("2024-01-03")})
	require.NoError(t, err)

	got, err := f.svc.FindBatch(testContext(), []shift.Criteria{a, b})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, numbers(got))
}

func TestQuery_UnknownFieldFails(t *testing.T) {
	store := memory.NewShiftStore()

	_, err := store.QueryShallow(testContext(), filter.Where("total", filter.Equal, 1))
	assert.ErrorContains(t, err, "invalid filter column")

	_, err = store.QueryDeep(testContext(), filter.Where("total", filter.Equal, 1))
	assert.ErrorContains(t, err, "invalid filter column")
}

func TestQuery_UnknownOperatorFails(t *testing.T) {
	f := newFixture(t)
	f.add(t, 1, 1, ts("2024-01-01T10:00:00Z"), 1, 1)

	tests := []struct {
		name  string
		query func(filter.Predicate) error
	}{
		{"shallow", func(p filter.Predicate) error { _, err := f.store.QueryShallow(testContext(), p); return err }},
		{"deep", func(p filter.Predicate) error { _, err := f.store.QueryDeep(testContext(), p); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query(filter.Where(shift.FieldShopNumber, filter.ComparisonType("between"), 1))
			assert.ErrorContains(t, err, "invalid filter operator")
		})
	}
}

func TestDelete_Cascade(t *testing.T) {
	f := newFixture(t)
	shiftID := f.add(t, 1, 1, ts("2024-01-01T20:00:00Z"), 2, 3)

	require.NoError(t, f.svc.Delete(testContext(), shiftID))
	assert.Zero(t, f.store.Len())

	_, err := f.svc.GetByID(testContext(), shiftID)
	assert.True(t, apperror.IsNotFound(err))

	err = f.svc.Delete(testContext(), shiftID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	store := memory.NewShiftStore()
	txm := memory.NewTxManager(store)
	boom := errors.New("boom")

	err := txm.RunInTransaction(testContext(), func(ctx context.Context) error {
		s := &shift.Shift{ID: id.New(), ShopNumber: 1, CashNumber: 1, OpenTime: time.Now()}
		require.NoError(t, store.Create(ctx, s))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Zero(t, store.Len())
}

func TestQueryDeep_FanOut(t *testing.T) {
	f := newFixture(t)
	f.add(t, 1, 1, ts("2024-01-01T20:00:00Z"), 2, 2)
	f.add(t, 2, 1, ts("2024-01-01T21:00:00Z"), 0, 0)

	rows, err := f.store.QueryDeep(testContext(), nil)
	require.NoError(t, err)

	// 2×2 positions plus one bare shift
	require.Len(t, rows, 5)
	assert.Nil(t, rows[4].Purchase)
	assert.Equal(t, 1, rows[0].Position.LineNo)
	assert.Equal(t, 2, rows[1].Position.LineNo)
}

// testContext carries a discarding logger so services stay quiet under go test.
func testContext() context.Context {
	return logger.WithLogger(context.Background(), logger.Nop())
}
