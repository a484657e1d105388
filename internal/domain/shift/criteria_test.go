package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
)

func TestNewCriteria(t *testing.T) {
	d := day("2024-01-01")
	s := day("2024-01-01")
	e := day("2024-01-03")

	tests := []struct {
		name    string
		params  SearchParams
		wantErr bool
	}{
		{name: "single date", params: SearchParams{Date: &d}},
		{name: "range", params: SearchParams{StartDate: &s, EndDate: &e}},
		{name: "same-day range", params: SearchParams{StartDate: &s, EndDate: &s}},
		{name: "cash without shop", params: SearchParams{CashNumber: intPtr(3), Date: &d}},
		{name: "neither", params: SearchParams{ShopNumber: intPtr(1)}, wantErr: true},
		{name: "both", params: SearchParams{Date: &d, StartDate: &s, EndDate: &e}, wantErr: true},
		{name: "inverted range", params: SearchParams{StartDate: &e, EndDate: &s}, wantErr: true},
		{name: "start only", params: SearchParams{StartDate: &s}, wantErr: true},
		{name: "end only", params: SearchParams{EndDate: &e}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCriteria(tt.params)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsValidation(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, c.Validate())
		})
	}
}

func TestNewCriteria_NormalizesToStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	raw := time.Date(2024, 1, 1, 17, 45, 12, 500, loc)

	c, err := NewCriteria(SearchParams{Date: &raw, Deep: true})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, loc), *c.Date)
	assert.Equal(t, Deep, c.Strategy())
}

func TestCriteria_Validate_IndependentOfConstructor(t *testing.T) {
	d := day("2024-01-01")
	c := Criteria{Date: &d, Range: &DateRange{Start: d, End: d}}

	err := c.Validate()
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
