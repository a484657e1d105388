package shift

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/filter"
)

type observation struct {
	mode, strategy string
	shifts         int
	err            error
}

type recordingMetrics struct {
	mu  sync.Mutex
	obs []observation
}

func (m *recordingMetrics) ObserveSearch(mode, strategy string, shifts int, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obs = append(m.obs, observation{mode: mode, strategy: strategy, shifts: shifts, err: err})
}

func TestEngine_Search_ValidationBeforeStorage(t *testing.T) {
	reader := &fakeReader{}
	metrics := &recordingMetrics{}
	e := NewEngine(reader, DefaultBatchOptions(), metrics)
	d := day("2024-01-01")

	for _, c := range []Criteria{
		{},
		{Date: &d, Range: &DateRange{Start: d, End: d}},
		{Range: &DateRange{Start: d.AddDate(0, 0, 1), End: d}},
	} {
		_, err := e.Search(testContext(), c)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	}

	assert.Zero(t, reader.calls())
	require.Len(t, metrics.obs, 3)
	assert.Equal(t, ModeSingle, metrics.obs[0].mode)
	assert.Error(t, metrics.obs[0].err)
}

func TestEngine_Search_Idempotent(t *testing.T) {
	s1, s2 := shiftFixture(1, 1), shiftFixture(2, 1)
	reader := &fakeReader{
		shallow: func(filter.Predicate) ([]Shift, error) { return []Shift{s1, s2}, nil },
	}
	e := NewEngine(reader, DefaultBatchOptions(), nil)
	d := day("2024-01-01")
	c := Criteria{ShopNumber: intPtr(1), Date: &d}

	first, err := e.Search(testContext(), c)
	require.NoError(t, err)
	second, err := e.Search(testContext(), c)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngine_Search_MappingDefectSurfaced(t *testing.T) {
	s := shiftFixture(1, 1)
	reader := &fakeReader{
		deep: func(filter.Predicate) ([]GraphRow, error) {
			// purchase row without any position row
			return []GraphRow{{Shift: s, Purchase: &Purchase{ID: id.New(), ShiftID: s.ID}}}, nil
		},
	}
	metrics := &recordingMetrics{}
	e := NewEngine(reader, DefaultBatchOptions(), metrics)
	d := day("2024-01-01")

	_, err := e.Search(testContext(), Criteria{Date: &d, Deep: true})
	require.Error(t, err)
	assert.True(t, apperror.IsMapping(err))
	assert.Equal(t, Deep.String(), metrics.obs[0].strategy)
}

func TestEngine_SearchBatch_Metrics(t *testing.T) {
	reader := &fakeReader{
		deep: func(filter.Predicate) ([]GraphRow, error) { return nil, errors.New("down") },
	}
	metrics := &recordingMetrics{}
	e := NewEngine(reader, BatchOptions{Parallelism: 2}, metrics)
	d := day("2024-01-01")

	_, err := e.SearchBatch(testContext(), []Criteria{{Date: &d}, {Date: &d, Deep: true}})
	require.Error(t, err)
	assert.True(t, apperror.IsStorage(err))

	require.Len(t, metrics.obs, 1)
	assert.Equal(t, ModeBatch, metrics.obs[0].mode)
	assert.Equal(t, "deep", metrics.obs[0].strategy)
}
