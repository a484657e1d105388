package shift

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/domain/filter"
)

func TestExecute_ShallowDistinctWithEmptyPurchases(t *testing.T) {
	s1 := shiftFixture(1, 1)
	s2 := shiftFixture(2, 1)
	reader := &fakeReader{
		shallow: func(filter.Predicate) ([]Shift, error) {
			return []Shift{s1, s2, s1}, nil
		},
	}

	got, err := NewExecutor(reader).Execute(testContext(), ShopNumberEquals(1), Shallow)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, s1.ID, got[0].ID)
	assert.Equal(t, s2.ID, got[1].ID)
	for _, s := range got {
		assert.NotNil(t, s.Purchases)
		assert.Empty(t, s.Purchases)
	}
	assert.Equal(t, 1, reader.shallowCalls)
	assert.Zero(t, reader.deepCalls)
}

func TestExecute_DeepCollapsesFanOut(t *testing.T) {
	s := shiftFixture(1, 1)
	reader := &fakeReader{
		deep: func(filter.Predicate) ([]GraphRow, error) {
			return fanOut(s, 2, 2), nil
		},
	}

	got, err := NewExecutor(reader).Execute(testContext(), nil, Deep)
	require.NoError(t, err)

	require.Len(t, got, 1)
	require.Len(t, got[0].Purchases, 2)
	for _, p := range got[0].Purchases {
		assert.Len(t, p.Positions, 2)
		assert.Equal(t, s.ID, p.ShiftID)
	}
	assert.Equal(t, 1, reader.deepCalls)
}

func TestExecute_DeepKeepsRowOrderAndDropsRepeatedRows(t *testing.T) {
	a := shiftFixture(1, 1)
	b := shiftFixture(2, 1)
	rowsA := fanOut(a, 1, 2)
	rowsB := fanOut(b, 1, 1)
	rows := append(append(append([]GraphRow{}, rowsA...), rowsB...), rowsA[1])

	reader := &fakeReader{deep: func(filter.Predicate) ([]GraphRow, error) { return rows, nil }}

	got, err := NewExecutor(reader).Execute(testContext(), nil, Deep)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, b.ID, got[1].ID)
	assert.Len(t, got[0].Purchases[0].Positions, 2)
}

func TestExecute_DeepShiftWithoutPurchases(t *testing.T) {
	s := shiftFixture(1, 1)
	reader := &fakeReader{
		deep: func(filter.Predicate) ([]GraphRow, error) {
			return []GraphRow{{Shift: s}}, nil
		},
	}

	got, err := NewExecutor(reader).Execute(testContext(), nil, Deep)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Purchases)
	assert.Empty(t, got[0].Purchases)
}

func TestExecute_EmptyIsNotError(t *testing.T) {
	reader := &fakeReader{}

	got, err := NewExecutor(reader).Execute(testContext(), nil, Shallow)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExecute_ReaderFailureIsStorageError(t *testing.T) {
	cause := errors.New("connection reset")
	reader := &fakeReader{
		deep: func(filter.Predicate) ([]GraphRow, error) { return nil, cause },
	}

	_, err := NewExecutor(reader).Execute(testContext(), nil, Deep)
	require.Error(t, err)
	assert.True(t, apperror.IsStorage(err))
	assert.ErrorIs(t, err, cause)
}
